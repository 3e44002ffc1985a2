package notification

import "fmt"

func postURL(postID int64) string {
	return fmt.Sprintf("/news/%d", postID)
}

func commentURL(postID, commentID int64) string {
	return fmt.Sprintf("/news/%d#comment-%d", postID, commentID)
}

func userURL(userID int64) string {
	return fmt.Sprintf("/users/%d", userID)
}

// truncate cuts s to max runes and appends "..." when anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func strPtr(s string) *string {
	return &s
}
