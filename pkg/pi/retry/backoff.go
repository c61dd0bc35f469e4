package retry

import (
	"math/rand"
	"time"

	"github.com/vvka-141/pi-go/pkg/pi"
)

// ExponentialBackoff implements pi.BackoffStrategy on top of a pi.RetryConfig.
type ExponentialBackoff struct {
	policy pi.RetryConfig

	// jitter adds randomness to prevent thundering herd (0.0-1.0).
	// Jitter of 0.1 means +/- 10% randomness
	jitter float64

	// jitterFunc provides random values [0, 1) for jitter calculation
	jitterFunc func() float64
}

// BackoffOption is a functional option for configuring ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithJitter sets the jitter factor (0.0-1.0) to add randomness to delays.
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.jitter = j
	}
}

// WithJitterFunc sets a custom function for generating random jitter values.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.jitterFunc = f
	}
}

// NewExponentialBackoff creates a backoff strategy for the given policy.
// Jitter is disabled unless WithJitter is passed.
//
// Example:
//
//	backoff := retry.NewExponentialBackoff(pi.DefaultRetryConfig(),
//	    retry.WithJitter(0.2),
//	)
func NewExponentialBackoff(policy pi.RetryConfig, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		policy: policy,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NextDelay returns the policy delay for attempt, with jitter applied if configured.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := b.policy.DelayFor(attempt)

	if b.jitter <= 0 {
		return delay
	}

	jitterFunc := b.jitterFunc
	if jitterFunc == nil {
		jitterFunc = rand.Float64
	}

	// delay * (1 +/- jitter * random), e.g. jitter=0.1, random=0.7 => delay * 1.04
	randomOffset := (jitterFunc() - 0.5) * 2.0
	jittered := time.Duration(float64(delay) * (1.0 + b.jitter*randomOffset))

	if jittered > b.policy.MaxDelay {
		return b.policy.MaxDelay
	}
	if jittered < 0 {
		return 0
	}
	return jittered
}

// MaxAttempts returns the maximum number of retry attempts.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.policy.MaxRetries
}

// Policy returns the underlying retry policy.
func (b *ExponentialBackoff) Policy() pi.RetryConfig {
	return b.policy
}

// Jitter returns the jitter factor for tests and debugging.
func (b *ExponentialBackoff) Jitter() float64 {
	return b.jitter
}
