package retry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/pi-go/pkg/pi"
)

// Executor orchestrates retry attempts with backoff and error classification.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute().
// The With* methods return a NEW instance, so each goroutine can have its
// own configuration without shared state.
type Executor struct {
	classifier pi.ErrorClassifier
	strategy   pi.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
	logger     pi.Logger
	metrics    *Metrics
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier pi.ErrorClassifier,
	strategy pi.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// ForConfig creates an executor using the retry policy of cfg and the taxonomy classifier.
func ForConfig(cfg *pi.Config, opts ...BackoffOption) *Executor {
	return NewExecutor(NewClassifier(), NewExponentialBackoff(cfg.Retry(), opts...))
}

// WithOnRetry returns a new Executor with the specified retry callback.
//
// Example:
//
//	executor := retry.NewExecutor(classifier, strategy)
//	executor1 := executor.WithOnRetry(callback1) // New instance
//	executor2 := executor.WithOnRetry(callback2) // Another new instance
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithLogger returns a new Executor that logs retries and give-ups to logger.
func (e *Executor) WithLogger(logger pi.Logger) *Executor {
	clone := *e
	clone.logger = logger
	return &clone
}

// WithMetrics returns a new Executor that records retries in m.
func (e *Executor) WithMetrics(m *Metrics) *Executor {
	clone := *e
	clone.metrics = m
	return &clone
}

// Execute runs the operation with retry logic.
// Returns the result of the last attempt (success or fatal error). If ctx
// ends between attempts, the last attempt's error is joined with the reason:
// a pi.TimeoutError when the deadline passed, ctx.Err() when it was cancelled.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	opID := uuid.NewString()
	start := time.Now()
	maxAttempts := e.strategy.MaxAttempts()

	// Initial attempt (not a retry)
	lastErr := operation(ctx)
	if lastErr == nil {
		return nil
	}

	if !e.classifier.IsTransient(lastErr) {
		e.verbose("[%s] fatal error, not retrying: %v", opID, lastErr)
		return lastErr
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return e.interrupted(ctx, opID, start, lastErr)
		}

		delay := e.strategy.NextDelay(attempt)

		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}
		e.metrics.observeRetry(kindLabel(lastErr), delay)
		e.verbose("[%s] retry %d/%d in %v after: %v", opID, attempt+1, maxAttempts, delay, lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return e.interrupted(ctx, opID, start, lastErr)
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			if e.logger != nil {
				e.logger.Info("[%s] succeeded after %d retries", opID, attempt+1)
			}
			return nil
		}

		if !e.classifier.IsTransient(lastErr) {
			e.verbose("[%s] fatal error on retry %d, stopping: %v", opID, attempt+1, lastErr)
			return lastErr
		}
	}

	e.metrics.observeExhausted()
	if e.logger != nil {
		e.logger.Error("[%s] giving up after %d attempts: %v", opID, maxAttempts+1, lastErr)
	}
	return lastErr
}

func (e *Executor) interrupted(ctx context.Context, opID string, start time.Time, lastErr error) error {
	ctxErr := ctx.Err()
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		elapsed := time.Since(start).Round(time.Millisecond)
		e.verbose("[%s] deadline exceeded after %v: %v", opID, elapsed, lastErr)
		return errors.Join(pi.NewTimeoutError(elapsed), ctxErr, lastErr)
	}
	e.verbose("[%s] cancelled: %v", opID, lastErr)
	return errors.Join(ctxErr, lastErr)
}

func (e *Executor) verbose(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Verbose(format, args...)
	}
}

func kindLabel(err error) string {
	if kind, ok := pi.KindOf(err); ok {
		return kind.String()
	}
	return "unclassified"
}
