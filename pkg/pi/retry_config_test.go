package pi_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pi-go/pkg/pi"
)

func TestDefaultRetryConfig_Values(t *testing.T) {
	rc := pi.DefaultRetryConfig()

	assert.Equal(t, 3, rc.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, 10*time.Second, rc.MaxDelay)
	assert.Equal(t, 2.0, rc.BackoffFactor)
	assert.NoError(t, rc.Validate())
}

func TestRetryConfig_DelayFor_Default(t *testing.T) {
	rc := pi.DefaultRetryConfig()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{6, 6400 * time.Millisecond},
		{7, 10 * time.Second}, // 12.8s capped
		{10, 10 * time.Second},
		{1000, 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rc.DelayFor(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryConfig_DelayFor_BoundedAndMonotonic(t *testing.T) {
	policies := []pi.RetryConfig{
		pi.DefaultRetryConfig(),
		{MaxRetries: 10, InitialDelay: time.Millisecond, MaxDelay: time.Minute, BackoffFactor: 1.0},
		{MaxRetries: 10, InitialDelay: 250 * time.Millisecond, MaxDelay: 30 * time.Second, BackoffFactor: 1.5},
		{MaxRetries: 10, InitialDelay: time.Second, MaxDelay: time.Hour, BackoffFactor: 10},
		{MaxRetries: 10, InitialDelay: 0, MaxDelay: time.Second, BackoffFactor: 2},
		{MaxRetries: 10, InitialDelay: time.Second, MaxDelay: time.Second, BackoffFactor: 3},
	}

	for _, rc := range policies {
		prev := time.Duration(0)
		for n := 0; n <= 200; n++ {
			d := rc.DelayFor(n)
			require.LessOrEqual(t, d, rc.MaxDelay, "policy %+v attempt %d", rc, n)
			require.GreaterOrEqual(t, d, prev, "policy %+v attempt %d", rc, n)
			prev = d
		}
	}
}

func TestRetryConfig_DelayFor_FactorOneIsConstant(t *testing.T) {
	rc := pi.RetryConfig{InitialDelay: 300 * time.Millisecond, MaxDelay: time.Second, BackoffFactor: 1.0}

	for n := 0; n < 10; n++ {
		assert.Equal(t, 300*time.Millisecond, rc.DelayFor(n))
	}
}

func TestRetryConfig_DelayFor_NegativeAttempt(t *testing.T) {
	rc := pi.DefaultRetryConfig()
	assert.Equal(t, rc.DelayFor(0), rc.DelayFor(-5))
}

func TestRetryConfig_DelayFor_HugeFactorClamps(t *testing.T) {
	rc := pi.RetryConfig{InitialDelay: time.Second, MaxDelay: 5 * time.Second, BackoffFactor: math.MaxFloat64}

	assert.Equal(t, time.Second, rc.DelayFor(0))
	assert.Equal(t, 5*time.Second, rc.DelayFor(1))
	assert.Equal(t, 5*time.Second, rc.DelayFor(1<<20))
}

func TestRetryConfig_DelayFor_PermissiveOnInvalidPolicy(t *testing.T) {
	// DelayFor computes the formula even for policies Validate would reject.
	rc := pi.RetryConfig{InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 0.5}

	assert.Equal(t, time.Second, rc.DelayFor(0))
	assert.Equal(t, 500*time.Millisecond, rc.DelayFor(1))
}

func TestRetryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rc      pi.RetryConfig
		wantErr string
	}{
		{
			name: "zero retries is valid",
			rc:   pi.RetryConfig{MaxRetries: 0, InitialDelay: 0, MaxDelay: 0, BackoffFactor: 1},
		},
		{
			name:    "negative retries",
			rc:      pi.RetryConfig{MaxRetries: -1, InitialDelay: 0, MaxDelay: time.Second, BackoffFactor: 2},
			wantErr: "max retries cannot be negative",
		},
		{
			name:    "negative initial delay",
			rc:      pi.RetryConfig{MaxRetries: 1, InitialDelay: -time.Second, MaxDelay: time.Second, BackoffFactor: 2},
			wantErr: "initial delay cannot be negative",
		},
		{
			name:    "max below initial",
			rc:      pi.RetryConfig{MaxRetries: 1, InitialDelay: time.Second, MaxDelay: time.Millisecond, BackoffFactor: 2},
			wantErr: "shorter than initial delay",
		},
		{
			name:    "factor below one",
			rc:      pi.RetryConfig{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Second, BackoffFactor: 0.9},
			wantErr: "backoff factor must be >= 1.0",
		},
		{
			name:    "factor NaN",
			rc:      pi.RetryConfig{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Second, BackoffFactor: math.NaN()},
			wantErr: "backoff factor must be >= 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *pi.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
