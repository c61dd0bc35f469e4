// Package retry drives repeated attempts of Pi Network API operations.
//
// It is the consumer of the policy and taxonomy defined in package pi:
// the backoff strategy reads pi.RetryConfig, and the classifier decides
// retryability by matching on the pi error kind.
//
// # Example Usage
//
//	cfg := pi.NewBuilder(apiKey).MustBuild()
//	executor := retry.ForConfig(cfg).WithLogger(logger)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pi.Wrap(callAPI(ctx))
//	})
//
// # Error Classification
//
// Only transport failures (pi.KindHTTP) and timeouts (pi.KindTimeout) are
// transient. API, authentication, configuration, Stellar and balance errors
// end the loop immediately. A transport failure caused by the caller
// cancelling its context is never retried.
//
// # Backoff Strategies
//
// ExponentialBackoff returns pi.RetryConfig.DelayFor(attempt), optionally
// spread with jitter. Jittered delays are still capped at MaxDelay.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. The With* methods return
// new instances and never modify the receiver.
package retry
