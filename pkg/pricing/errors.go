package pricing

import (
	"fmt"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// ProviderError represents a general provider failure (non-2xx status,
// transport error). It is absorbed by the Source's fallback path and
// logged, never returned from Quote.
type ProviderError struct {
	// Provider is the provider that failed.
	Provider string

	// StatusCode is the HTTP status (0 if not applicable).
	StatusCode int

	// Message describes the failure.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("pricing provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pricing provider %q error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents a provider lookup exceeding its deadline.
type TimeoutError struct {
	// Provider is the provider that timed out.
	Provider string

	// Timeout is the configured per-provider deadline.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("pricing provider %q timed out after %s", e.Provider, e.Timeout)
}

// RateLimitError represents a provider rejecting the lookup with 429 or
// the local token bucket refusing the request.
type RateLimitError struct {
	// Provider is the rate-limiting provider.
	Provider string

	// RetryAfter is the wait suggested by the provider, if any.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("pricing provider %q rate limited (retry after %s)", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("pricing provider %q rate limited", e.Provider)
}

// ParseError represents a malformed provider response.
type ParseError struct {
	// Provider is the provider that returned the malformed response.
	Provider string

	// Cause is the underlying decode error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("pricing provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// UnsupportedHardwareError indicates a provider does not offer the
// requested hardware class at all. This is expected and silently skips
// the provider.
type UnsupportedHardwareError struct {
	Provider string
	Class    hardware.Class
}

// Error implements the error interface.
func (e *UnsupportedHardwareError) Error() string {
	return fmt.Sprintf("pricing provider %q does not offer hardware class %q", e.Provider, e.Class)
}
