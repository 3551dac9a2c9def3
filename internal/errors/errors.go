// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrMissingAuthToken indicates the token exchange response carried no token.
	ErrMissingAuthToken = errors.New("upstream response missing auth token")

	// ErrNoPlaybackURLs indicates the playback response carried no playback URL entries.
	ErrNoPlaybackURLs = errors.New("upstream returned no playback urls")

	// ErrInvalidPage indicates a page number outside the valid range.
	ErrInvalidPage = errors.New("invalid page number")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")
)

// UpstreamError represents a failed call to the catalog backend:
// network failures, non-2xx statuses, and malformed or incomplete
// response bodies all surface as this type.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (endpoint=%s, status=%d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream error (endpoint=%s): %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new upstream error.
func NewUpstreamError(endpoint string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
