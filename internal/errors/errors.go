// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these (or domain errors that
// wrap them) and the boundary layer turns them into failure payloads.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a required password or credential has not been provided.
	ErrUnauthorized = errors.New("authentication required")

	// ErrTimeout indicates a remote call did not complete within its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrMalformed indicates a remote service answered with a body that breaks its contract.
	ErrMalformed = errors.New("malformed response")

	// ErrIntegrity indicates authenticated data failed verification.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrUpstream indicates a remote service answered with a non-success status.
	ErrUpstream = errors.New("upstream error")
)

// APIError carries the status code and body of a failed remote call.
// It unwraps to ErrUpstream so callers can match it with Is.
type APIError struct {
	Status int
	Body   string
}

// NewAPIError creates an APIError for the given status and body.
func NewAPIError(status int, body string) *APIError {
	return &APIError{Status: status, Body: body}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// Unwrap returns ErrUpstream.
func (e *APIError) Unwrap() error {
	return ErrUpstream
}

// ServerSide reports whether the status is in the 5xx range.
func (e *APIError) ServerSide() bool {
	return e.Status >= 500 && e.Status <= 599
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
