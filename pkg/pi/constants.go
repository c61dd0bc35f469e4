package pi

import "time"

const (
	// LibraryName is the first half of the client identifier sent with every request.
	LibraryName = "pi-go"

	// DefaultBaseURL is the production Pi Network API endpoint.
	DefaultBaseURL = "https://api.minepi.com/v2"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second
)

const (
	// DefaultRetryMaxRetries is the default number of retries after the first attempt.
	DefaultRetryMaxRetries = 3

	// DefaultRetryInitialDelay is the default delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryBackoffFactor is the default growth factor between attempts.
	DefaultRetryBackoffFactor = 2.0
)
