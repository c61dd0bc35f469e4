package pi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stellar/go/clients/horizonclient"
)

// Kind identifies which variant of the error taxonomy a value belongs to.
type Kind int

const (
	KindHTTP Kind = iota + 1
	KindJSON
	KindAPI
	KindAuthentication
	KindConfiguration
	KindStellar
	KindInsufficientBalance
	KindTimeout
)

var kindNames = map[Kind]string{
	KindHTTP:                "http",
	KindJSON:                "json",
	KindAPI:                 "api",
	KindAuthentication:      "authentication",
	KindConfiguration:       "configuration",
	KindStellar:             "stellar",
	KindInsufficientBalance: "insufficient_balance",
	KindTimeout:             "timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is implemented only by the error types in this package, so a switch
// over Kind covers every failure the client can produce.
type Error interface {
	error
	Kind() Kind
	sealed()
}

// KindOf returns the taxonomy kind of err, looking through wrapped errors.
// ok is false when err is nil or not part of the taxonomy.
func KindOf(err error) (kind Kind, ok bool) {
	var piErr Error
	if errors.As(err, &piErr) {
		return piErr.Kind(), true
	}
	return 0, false
}

// HTTPError wraps a failure from the HTTP transport.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string { return fmt.Sprintf("HTTP request failed: %v", e.Err) }
func (e *HTTPError) Unwrap() error { return e.Err }
func (e *HTTPError) Kind() Kind    { return KindHTTP }
func (e *HTTPError) sealed()       {}

// JSONError wraps an encoding or decoding failure.
type JSONError struct {
	Err error
}

func (e *JSONError) Error() string { return fmt.Sprintf("JSON serialization failed: %v", e.Err) }
func (e *JSONError) Unwrap() error { return e.Err }
func (e *JSONError) Kind() Kind    { return KindJSON }
func (e *JSONError) sealed()       {}

// APIError is a structured error returned by the Pi Network API itself.
// Payment is set when the failure happened while a payment was being processed,
// so the caller can see how far it got.
type APIError struct {
	Name    string
	Message string
	Payment *PaymentDTO
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Pi Network API error: %s - %s", e.Name, e.Message)
}
func (e *APIError) Kind() Kind { return KindAPI }
func (e *APIError) sealed()    {}

// AuthenticationError reports rejected credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return "Authentication failed: " + e.Message }
func (e *AuthenticationError) Kind() Kind    { return KindAuthentication }
func (e *AuthenticationError) sealed()       {}

// ConfigurationError is only produced while building a Config.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return "Invalid configuration: " + e.Message }
func (e *ConfigurationError) Kind() Kind    { return KindConfiguration }
func (e *ConfigurationError) sealed()       {}

// StellarError reports a failure in the ledger-signing collaborator.
// Err is the underlying cause, if any.
type StellarError struct {
	Message string
	Err     error
}

func (e *StellarError) Error() string { return "Stellar operation failed: " + e.Message }
func (e *StellarError) Unwrap() error { return e.Err }
func (e *StellarError) Kind() Kind    { return KindStellar }
func (e *StellarError) sealed()       {}

// InsufficientBalanceError carries both amounts for precise user messaging.
type InsufficientBalanceError struct {
	Available float64
	Required  float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance: available %s, required %s",
		formatAmount(e.Available), formatAmount(e.Required))
}
func (e *InsufficientBalanceError) Kind() Kind { return KindInsufficientBalance }
func (e *InsufficientBalanceError) sealed()    {}

// TimeoutError reports the deadline that was exceeded.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string { return "Timeout occurred after " + formatDuration(e.Duration) }
func (e *TimeoutError) Kind() Kind    { return KindTimeout }
func (e *TimeoutError) sealed()       {}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDuration renders d in the largest unit that keeps the integer part
// non-zero, with no trailing fractional zeros: 90s, 1.5s, 100ms, 250µs, 0ns.
func formatDuration(d time.Duration) string {
	if d < 0 {
		// Avoids overflow on math.MinInt64.
		return "-" + formatNanos(uint64(-(d + 1))+1)
	}
	return formatNanos(uint64(d))
}

func formatNanos(n uint64) string {
	switch {
	case n >= uint64(time.Second):
		return decimal(n, uint64(time.Second), 9) + "s"
	case n >= uint64(time.Millisecond):
		return decimal(n, uint64(time.Millisecond), 6) + "ms"
	case n >= uint64(time.Microsecond):
		return decimal(n, uint64(time.Microsecond), 3) + "µs"
	}
	return strconv.FormatUint(n, 10) + "ns"
}

func decimal(n, unit uint64, digits int) string {
	whole := strconv.FormatUint(n/unit, 10)
	frac := n % unit
	if frac == 0 {
		return whole
	}
	fs := strconv.FormatUint(frac, 10)
	fs = strings.Repeat("0", digits-len(fs)) + fs
	return whole + "." + strings.TrimRight(fs, "0")
}

// NewAPIError creates an API error. payment may be nil.
func NewAPIError(name, message string, payment *PaymentDTO) *APIError {
	return &APIError{Name: name, Message: message, Payment: payment}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

// NewStellarError creates a Stellar error without an underlying cause.
func NewStellarError(message string) *StellarError {
	return &StellarError{Message: message}
}

// NewInsufficientBalanceError creates an insufficient balance error.
func NewInsufficientBalanceError(available, required float64) *InsufficientBalanceError {
	return &InsufficientBalanceError{Available: available, Required: required}
}

// NewTimeoutError creates a timeout error for the given duration.
func NewTimeoutError(d time.Duration) *TimeoutError {
	return &TimeoutError{Duration: d}
}

// WrapHTTP wraps a transport failure. Nil stays nil and taxonomy errors pass through.
func WrapHTTP(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := KindOf(err); ok {
		return err
	}
	return &HTTPError{Err: err}
}

// WrapJSON wraps a codec failure. Nil stays nil and taxonomy errors pass through.
func WrapJSON(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := KindOf(err); ok {
		return err
	}
	return &JSONError{Err: err}
}

// Wrap converts a collaborator error into the taxonomy: encoding/json errors
// become JSONError and everything else is treated as a transport failure.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := KindOf(err); ok {
		return err
	}
	if isCodecError(err) {
		return &JSONError{Err: err}
	}
	return &HTTPError{Err: err}
}

func isCodecError(err error) bool {
	var (
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		marshalerErr   *json.MarshalerError
		unsupportedTyp *json.UnsupportedTypeError
		unsupportedVal *json.UnsupportedValueError
		invalidErr     *json.InvalidUnmarshalError
	)
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &marshalerErr) ||
		errors.As(err, &unsupportedTyp) ||
		errors.As(err, &unsupportedVal) ||
		errors.As(err, &invalidErr)
}

// apiErrorBody is the error envelope returned by the Pi Network API.
type apiErrorBody struct {
	Error        string      `json:"error"`
	ErrorMessage string      `json:"error_message"`
	Payment      *PaymentDTO `json:"payment,omitempty"`
}

// DecodeAPIError decodes an error response body into an APIError.
// A body that is not a valid error envelope yields a JSONError.
func DecodeAPIError(body []byte) error {
	var env apiErrorBody
	if err := json.Unmarshal(body, &env); err != nil {
		return &JSONError{Err: err}
	}
	if env.Error == "" {
		return &JSONError{Err: fmt.Errorf("error response has no %q field", "error")}
	}
	return NewAPIError(env.Error, env.ErrorMessage, env.Payment)
}

// WrapStellar converts a Stellar collaborator failure into a StellarError.
// Horizon problems contribute their title and detail to the message.
func WrapStellar(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := KindOf(err); ok {
		return err
	}
	if hErr := horizonclient.GetError(err); hErr != nil {
		msg := hErr.Problem.Title
		if hErr.Problem.Detail != "" {
			msg += ": " + hErr.Problem.Detail
		}
		if msg == "" {
			msg = "horizon request failed"
		}
		return &StellarError{Message: msg, Err: err}
	}
	return &StellarError{Message: err.Error(), Err: err}
}
