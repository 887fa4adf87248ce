package retry

import "time"

// ErrorClassifier decides whether an error is worth another attempt.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy controls how long to wait before each retry.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (0-based).
	NextDelay(attempt int) time.Duration

	// MaxAttempts is the number of retries after the first try; negative means unlimited.
	MaxAttempts() int
}
