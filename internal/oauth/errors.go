package oauth

import (
	"bytes"
	"errors"
	"fmt"
)

// Error classes returned by the upstream client and its callers
var (
	// ErrUnreachable indicates a transport failure or an open circuit breaker
	ErrUnreachable = errors.New("upstream unreachable")

	// ErrUpstreamCallFailed indicates a non-success status on a call expected to succeed
	ErrUpstreamCallFailed = errors.New("upstream call failed")

	// ErrInvalidResponse indicates a 200 response with a missing or mistyped field
	ErrInvalidResponse = errors.New("invalid upstream response")

	// ErrProviderUnavailable is returned by CheckHealth
	ErrProviderUnavailable = errors.New("oauth provider unavailable")
)

// UpstreamError carries the status and body of a failed upstream call
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

// NewUpstreamError builds an UpstreamError from a raw response
func NewUpstreamError(operation string, resp *Response) *UpstreamError {
	return &UpstreamError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: upstream returned %d: %s", e.Operation, e.StatusCode, bytes.TrimSpace(e.Body))
}

// Is matches ErrUpstreamCallFailed
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamCallFailed
}

// TransportError wraps a failure to reach the upstream at all
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Operation, ErrUnreachable, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnreachable
func (e *TransportError) Is(target error) bool {
	return target == ErrUnreachable
}

// InvalidResponse reports a 200 response that could not be used
func InvalidResponse(operation, reason string, body []byte) error {
	return fmt.Errorf("%w: %s: %s. Response: %s", ErrInvalidResponse, operation, reason, bytes.TrimSpace(body))
}
