package domain

// ToggleResult is the outcome of flipping a per-(user, entity) Active/Inactive state.
type ToggleResult struct {
	Active bool   `json:"active"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ToggleKind int

const (
	ToggleLike ToggleKind = iota
	ToggleSave
	ToggleRepost
	ToggleFollow
)

var toggleLabels = map[ToggleKind][2]string{
	ToggleLike:   {"liked", "unliked"},
	ToggleSave:   {"saved", "unsaved"},
	ToggleRepost: {"reposted", "removed"},
	ToggleFollow: {"followed", "unfollowed"},
}

func NewToggleResult(kind ToggleKind, active bool, count int64) *ToggleResult {
	labels := toggleLabels[kind]
	status := labels[1]
	if active {
		status = labels[0]
	}
	return &ToggleResult{Active: active, Status: status, Count: count}
}
