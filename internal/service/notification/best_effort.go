package notification

import (
	"log"
)

// BestEffort runs a notification call whose failure must not affect the
// action that triggered it. Errors and panics are logged and the zero value
// is returned.
func BestEffort[T any](event string, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[NotificationService] %s panicked: %v", event, r)
			var zero T
			result = zero
		}
	}()

	v, err := fn()
	if err != nil {
		log.Printf("[NotificationService] %s failed: %v", event, err)
		var zero T
		return zero
	}
	return v
}
