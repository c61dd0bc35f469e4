// Package piconfig loads client settings from a pi.yaml project file, an
// optional .env file and the process environment, and resolves them into a
// validated *pi.Config.
package piconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pi-go/pkg/pi"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, piconfig.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "pi.yaml"
	EnvFileName    = ".env"
)

// Environment variables that override the file values.
const (
	EnvAPIKey  = "PI_API_KEY"
	EnvBaseURL = "PI_BASE_URL"
	EnvTimeout = "PI_TIMEOUT"
)

type RetrySection struct {
	MaxRetries    *int     `yaml:"max_retries,omitempty" validate:"omitempty,gte=0"`
	InitialDelay  string   `yaml:"initial_delay,omitempty"`
	MaxDelay      string   `yaml:"max_delay,omitempty"`
	BackoffFactor *float64 `yaml:"backoff_factor,omitempty" validate:"omitempty,gte=1"`
}

func (r RetrySection) isZero() bool {
	return r.MaxRetries == nil && r.InitialDelay == "" && r.MaxDelay == "" && r.BackoffFactor == nil
}

type ClientConfig struct {
	APIKey  string       `yaml:"api_key,omitempty" validate:"required"`
	BaseURL string       `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout string       `yaml:"timeout,omitempty"`
	Retry   RetrySection `yaml:"retry,omitempty"`
}

var validate = newValidator()

// newValidator reports fields by their yaml names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads pi.yaml from dir.
func Load(dir string) (*ClientConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}

// LoadProject reads pi.yaml (optional) and .env (optional) from dir and applies
// environment overrides. Precedence: process environment, then .env, then pi.yaml.
// Empty environment values are treated as unset.
func LoadProject(dir string) (*ClientConfig, error) {
	cfg, err := Load(dir)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		cfg = &ClientConfig{}
	}

	dotenv, err := readEnvFile(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, err
	}

	cfg.applyEnv(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})
	return cfg, nil
}

// readEnvFile parses a .env file without touching the process environment.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", EnvFileName, err)
	}
	return env, nil
}

func (c *ClientConfig) applyEnv(lookup func(string) string) {
	if v := lookup(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := lookup(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := lookup(EnvTimeout); v != "" {
		c.Timeout = v
	}
}

// Validate checks field formats and reports every problem as a pi.ConfigurationError.
func (c *ClientConfig) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return pi.NewConfigurationError(err.Error())
		}
		for _, fe := range fieldErrs {
			errs = append(errs, pi.NewConfigurationError(describeFieldError(fe)))
		}
	}

	for _, d := range []struct {
		field string
		value string
	}{
		{"timeout", c.Timeout},
		{"retry.initial_delay", c.Retry.InitialDelay},
		{"retry.max_delay", c.Retry.MaxDelay},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			errs = append(errs, pi.NewConfigurationError(fmt.Sprintf("%s: %v", d.field, err)))
		}
	}

	return errors.Join(errs...)
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "ClientConfig.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required (set api_key in %s or %s)", field, ConfigFileName, EnvAPIKey)
	case "url":
		return fmt.Sprintf("%s must be an absolute URL (got %q)", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
}

// Resolve validates the settings and builds the client configuration.
// Unset fields keep the pi defaults.
func (c *ClientConfig) Resolve() (*pi.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := pi.NewBuilder(c.APIKey)

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return nil, pi.NewConfigurationError(fmt.Sprintf("base_url: %v", err))
		}
		b.BaseURL(u)
	}

	if c.Timeout != "" {
		b.Timeout(mustParseDuration(c.Timeout))
	}

	if !c.Retry.isZero() {
		b.RetryConfig(c.Retry.apply(pi.DefaultRetryConfig()))
	}

	return b.Build()
}

func (r RetrySection) apply(rc pi.RetryConfig) pi.RetryConfig {
	if r.MaxRetries != nil {
		rc.MaxRetries = *r.MaxRetries
	}
	if r.InitialDelay != "" {
		rc.InitialDelay = mustParseDuration(r.InitialDelay)
	}
	if r.MaxDelay != "" {
		rc.MaxDelay = mustParseDuration(r.MaxDelay)
	}
	if r.BackoffFactor != nil {
		rc.BackoffFactor = *r.BackoffFactor
	}
	return rc
}

// mustParseDuration is only called on values Validate has already accepted.
func mustParseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("unvalidated duration %q: %v", s, err))
	}
	return d
}
