package pi

import "time"

// ErrorClassifier decides whether a failed API call is worth repeating.
// The retry driver consults it after every attempt; see package retry for
// the classifier that matches on Kind.
type ErrorClassifier interface {
	// IsTransient reports whether err may succeed on a later attempt,
	// such as a dropped connection or an expired request timeout.
	IsTransient(err error) bool
}

// BackoffStrategy turns a RetryConfig into the driver's wait schedule.
type BackoffStrategy interface {
	// NextDelay is the wait before retry number attempt, counted from 0.
	// Without jitter this equals RetryConfig.DelayFor(attempt).
	NextDelay(attempt int) time.Duration

	// MaxAttempts is RetryConfig.MaxRetries: retries after the initial call.
	// Zero means the call is made once.
	MaxAttempts() int
}
