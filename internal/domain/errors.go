// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to HTTP responses
// by the adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidDate indicates the requested date key is not a
	// well-formed calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUpstream indicates the quote provider returned a non-200
	// status, an unparsable body, or an empty/malformed payload.
	ErrUpstream = errors.New("upstream provider failure")

	// ErrCacheUnavailable indicates a cache read or write failed at
	// the transport level. The resolver recovers from it locally; it
	// never surfaces as a failure of the overall request.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// InvalidDateError provides context for malformed date input.
type InvalidDateError struct {
	Input string
}

// Error implements the error interface.
func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, use YYYY-MM-DD", e.Input)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// NewInvalidDateError creates an invalid date error for the given input.
func NewInvalidDateError(input string) error {
	return &InvalidDateError{Input: input}
}

// UpstreamError provides context for quote provider failures.
type UpstreamError struct {
	// Status is the HTTP status returned by the provider, or 0 when
	// the failure happened before a status was received.
	Status int

	// Snippet is a truncated diagnostic of the raw failure body,
	// safe to forward to callers.
	Snippet string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("zenquotes %d: %s", e.Status, e.Snippet)
	}

	return "zenquotes: " + e.Snippet
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewUpstreamError creates an upstream error with a status and diagnostic.
func NewUpstreamError(status int, snippet string) error {
	return &UpstreamError{Status: status, Snippet: snippet}
}

// CacheUnavailableError provides context for cache transport failures.
type CacheUnavailableError struct {
	// Op is the failed store operation ("get" or "set").
	Op string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *CacheUnavailableError) Error() string {
	return fmt.Sprintf("cache %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *CacheUnavailableError) Unwrap() error {
	return ErrCacheUnavailable
}

// NewCacheUnavailableError wraps a store transport failure.
func NewCacheUnavailableError(op string, err error) error {
	return &CacheUnavailableError{Op: op, Err: err}
}

// IsInvalidDate checks if an error is an invalid date error.
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

// IsUpstream checks if an error is an upstream provider error.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsCacheUnavailable checks if an error is a cache transport error.
func IsCacheUnavailable(err error) bool {
	return errors.Is(err, ErrCacheUnavailable)
}
