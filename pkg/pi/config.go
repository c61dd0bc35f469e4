package pi

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds the validated connection parameters of a client.
// A Config is never modified after it is built and may be shared freely
// between goroutines.
type Config struct {
	apiKey    string
	baseURL   url.URL
	timeout   time.Duration
	retry     RetryConfig
	userAgent string
}

// New creates a Config with default endpoint, timeout and retry policy.
// It fails with a ConfigurationError when apiKey is empty.
func New(apiKey string) (*Config, error) {
	if apiKey == "" {
		return nil, NewConfigurationError("API key cannot be empty")
	}

	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, NewConfigurationError(fmt.Sprintf("default base URL: %v", err))
	}

	return &Config{
		apiKey:    apiKey,
		baseURL:   *base,
		timeout:   DefaultTimeout,
		retry:     DefaultRetryConfig(),
		userAgent: UserAgent(),
	}, nil
}

// APIKey returns the credential sent to the API.
func (c *Config) APIKey() string { return c.apiKey }

// BaseURL returns a copy of the API endpoint.
func (c *Config) BaseURL() *url.URL {
	u := c.baseURL
	if c.baseURL.User != nil {
		user := *c.baseURL.User
		u.User = &user
	}
	return &u
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// Retry returns the retry policy.
func (c *Config) Retry() RetryConfig { return c.retry }

// UserAgent returns the client identifier, "pi-go/<version>".
func (c *Config) UserAgent() string { return c.userAgent }

// String renders the config with the API key masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{base_url=%s timeout=%v retry=%+v user_agent=%s api_key=%s}",
		c.baseURL.String(), c.timeout, c.retry, c.userAgent, maskKey(c.apiKey))
}

// Keys shorter than this are masked completely.
const minRevealedKeyLen = 12

func maskKey(key string) string {
	runes := []rune(key)
	if len(runes) < minRevealedKeyLen {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}

// Builder assembles a Config step by step. Any error found along the way is
// kept and returned from Build, so chains never need intermediate checks:
//
//	cfg, err := pi.NewBuilder(apiKey).
//	    BaseURL(sandboxURL).
//	    Timeout(5 * time.Second).
//	    Build()
type Builder struct {
	config *Config
	errs   []error
}

// NewBuilder starts a builder from New(apiKey). An empty key is reported by Build.
func NewBuilder(apiKey string) *Builder {
	b := &Builder{}
	cfg, err := New(apiKey)
	if err != nil {
		b.errs = append(b.errs, err)
		cfg = &Config{}
	}
	b.config = cfg
	return b
}

// BaseURL overrides the API endpoint.
func (b *Builder) BaseURL(u *url.URL) *Builder {
	if b.consumed() {
		return b
	}
	if u == nil {
		b.errs = append(b.errs, NewConfigurationError("base URL cannot be nil"))
		return b
	}
	b.config.baseURL = *u
	return b
}

// Timeout overrides the per-request timeout. The value is used as given.
func (b *Builder) Timeout(d time.Duration) *Builder {
	if b.consumed() {
		return b
	}
	b.config.timeout = d
	return b
}

// RetryConfig installs a custom retry policy. Out-of-range fields are reported by Build.
func (b *Builder) RetryConfig(rc RetryConfig) *Builder {
	if b.consumed() {
		return b
	}
	if err := rc.Validate(); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.config.retry = rc
	return b
}

// Build returns the finished Config, or every error recorded while building.
// A builder yields at most one Config: once Build succeeds, setters are
// ignored and further Build calls fail with a ConfigurationError.
func (b *Builder) Build() (*Config, error) {
	if b.consumed() {
		return nil, NewConfigurationError("builder already used")
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	cfg := b.config
	b.config = nil
	return cfg, nil
}

func (b *Builder) consumed() bool { return b.config == nil }

// MustBuild is like Build but panics on error. Use it where an invalid
// configuration is a programming error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("pi: invalid configuration: %v", err))
	}
	return cfg
}
