// Package errors provides custom error types for the helpdesk API client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrBackendUnavailable = errors.New("helpdesk backend unavailable")
	ErrInvalidResponse    = errors.New("invalid response format")
	ErrEmptyReply         = errors.New("no reply in response")
	ErrStreamClosed       = errors.New("stream closed")
)

// NetworkError represents a transport-level failure reaching the backend
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with the backend-unavailable sentinel
func (e *NetworkError) Is(target error) bool {
	if target == ErrBackendUnavailable {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// APIError represents a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorWithBody creates an APIError carrying the raw response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message, Body: body}
}

// ParseError represents a malformed payload: non-JSON where JSON was
// required, or a payload missing every expected field
type ParseError struct {
	Message string
	Payload string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the invalid-response sentinel
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, payload string) *ParseError {
	return &ParseError{Message: message, Payload: payload}
}

// StreamError represents a failure on an open chat stream or event
// connection after it was established
type StreamError struct {
	Endpoint string
	Err      error
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stream error at %s", e.Endpoint)
	}
	return fmt.Sprintf("stream error at %s: %v", e.Endpoint, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewStreamError creates a new StreamError
func NewStreamError(endpoint string, err error) *StreamError {
	return &StreamError{Endpoint: endpoint, Err: err}
}

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is a non-2xx backend response
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsParseError reports whether err is a malformed-payload failure
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsStreamError reports whether err occurred on an established stream
func IsStreamError(err error) bool {
	var se *StreamError
	return errors.As(err, &se)
}

// GetHTTPStatus extracts the HTTP status code from an APIError chain,
// returning 0 when none is present
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from a structured error chain,
// returning "" when none is present
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	var se *StreamError
	if errors.As(err, &se) {
		return se.Endpoint
	}
	return ""
}

// GetResponseBody extracts the raw response body from an APIError chain,
// returning "" when none is present
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}
