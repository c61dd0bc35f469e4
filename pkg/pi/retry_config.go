package pi

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryConfig is a capped exponential backoff policy.
// Fields are exported so custom policies can be built directly; run Validate
// on anything that did not come from DefaultRetryConfig.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt (0 = single attempt).
	MaxRetries int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps every delay. Must be >= InitialDelay.
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay per additional attempt. Must be >= 1.0.
	BackoffFactor float64
}

// DefaultRetryConfig returns 3 retries starting at 100ms, doubling, capped at 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    DefaultRetryMaxRetries,
		InitialDelay:  DefaultRetryInitialDelay,
		MaxDelay:      DefaultRetryMaxDelay,
		BackoffFactor: DefaultRetryBackoffFactor,
	}
}

// DelayFor returns min(InitialDelay * BackoffFactor^attempt, MaxDelay).
// attempt is zero-indexed: 0 is the first retry. Negative attempts are treated as 0.
func (r RetryConfig) DelayFor(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if r.InitialDelay <= 0 {
		return min(r.InitialDelay, r.MaxDelay)
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt))

	// NaN and overflow both land on the cap.
	if math.IsNaN(delay) || delay >= float64(r.MaxDelay) {
		return r.MaxDelay
	}
	return time.Duration(delay)
}

// Validate reports every field that is out of range.
func (r RetryConfig) Validate() error {
	var errs []error

	if r.MaxRetries < 0 {
		errs = append(errs, NewConfigurationError(fmt.Sprintf("max retries cannot be negative (got %d)", r.MaxRetries)))
	}
	if r.InitialDelay < 0 {
		errs = append(errs, NewConfigurationError(fmt.Sprintf("initial delay cannot be negative (got %v)", r.InitialDelay)))
	}
	if r.MaxDelay < r.InitialDelay {
		errs = append(errs, NewConfigurationError(fmt.Sprintf("max delay %v is shorter than initial delay %v", r.MaxDelay, r.InitialDelay)))
	}
	if math.IsNaN(r.BackoffFactor) || r.BackoffFactor < 1.0 {
		errs = append(errs, NewConfigurationError(fmt.Sprintf("backoff factor must be >= 1.0 (got %v)", r.BackoffFactor)))
	}

	return errors.Join(errs...)
}
