package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned when no upstream credential is configured
	ErrMissingAPIKey = errors.New("no upstream API key configured")
	// ErrInvalidResponse is returned when the upstream body is not JSON
	ErrInvalidResponse = errors.New("invalid upstream response")
)

// Error is a failed exchange with the completion endpoint: the request never
// completed, or the reply could not be read as JSON.
type Error struct {
	// StatusCode is zero when no response was received
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream request failed [%d]: %v", e.StatusCode, e.Err)
}

// Unwrap allows errors.Is/As to work with wrapped errors
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyStatus names the error category of an upstream status code
func ClassifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ""
	case statusCode == http.StatusTooManyRequests:
		return "rate_limit_exceeded"
	case statusCode == http.StatusPaymentRequired:
		return "insufficient_quota"
	case statusCode == http.StatusUnauthorized:
		return "authentication_error"
	case statusCode == http.StatusForbidden:
		return "permission_error"
	case statusCode == http.StatusNotFound:
		return "model_not_found"
	case statusCode == http.StatusBadRequest:
		return "invalid_request"
	case statusCode >= 500:
		return "server_error"
	default:
		return "unknown_error"
	}
}
