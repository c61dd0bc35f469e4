// Package pi holds the configuration and error taxonomy shared by every part of
// the Pi Network API client.
//
// # Configuration
//
// A Config is built once at client start-up and never mutated afterwards:
//
//	cfg, err := pi.NewBuilder(apiKey).
//	    Timeout(10 * time.Second).
//	    Build()
//
// New(apiKey) is the shortcut when all defaults are acceptable.
//
// # Retry policy
//
// RetryConfig describes capped exponential backoff. DelayFor(n) returns the wait
// before retry n (zero-indexed); it never exceeds MaxDelay.
//
// # Errors
//
// Every failure produced by the client is one of the concrete types implementing
// Error. Callers match with errors.As or switch on KindOf(err):
//
//	switch kind, _ := pi.KindOf(err); kind {
//	case pi.KindHTTP, pi.KindTimeout:
//	    // candidate for retry
//	case pi.KindAPI:
//	    var apiErr *pi.APIError
//	    errors.As(err, &apiErr)
//	}
//
// The taxonomy does not decide what is retryable. That policy belongs to the
// retry driver in package retry.
//
// # Subpackages
//
//   - retry: Executor that drives attempts using a Config's RetryConfig
//   - logging: Logger implementations (slog console output, no-op)
//   - piconfig: loads pi.yaml, .env and PI_* variables into a Config
package pi
