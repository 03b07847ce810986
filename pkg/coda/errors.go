package coda

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error payload returned by the Coda API for any non-2xx response.
type APIError struct {
	StatusCode    int    `json:"statusCode"    yaml:"statusCode"`
	StatusMessage string `json:"statusMessage" yaml:"statusMessage"`
	Message       string `json:"message"       yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := e.StatusMessage
	if status == "" {
		status = http.StatusText(e.StatusCode)
	}

	if e.Message == "" {
		return fmt.Sprintf("coda: %d %s", e.StatusCode, status)
	}

	return fmt.Sprintf("coda: %d %s: %s", e.StatusCode, status, e.Message)
}

// ParseAPIError builds an APIError from a response body. The HTTP status code
// always wins over whatever the body claims, and an unreadable body still
// yields a usable error.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{}

	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Message = string(body)
		}
	}

	apiErr.StatusCode = statusCode
	if apiErr.StatusMessage == "" {
		apiErr.StatusMessage = http.StatusText(statusCode)
	}

	return apiErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPITokenRequired    = errors.New("API token is required")
	ErrIdentifierRequired  = errors.New("identifier is required")
	ErrInvalidRowQuery     = errors.New("invalid row query")
	ErrStaticTokenRefresh  = errors.New("static token cannot be refreshed")
	ErrNotImplemented      = errors.New("not implemented")
	ErrEmptyMutationID     = errors.New("mutation request id is empty")
	ErrUnsupportedCellType = errors.New("unsupported cell value type")
)

func statusOf(err error) (int, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}

	return 0, false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an API error.
func StatusCode(err error) int {
	code, _ := statusOf(err)

	return code
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusForbidden
}

// IsBadRequest checks if the error is a bad request error.
func IsBadRequest(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusBadRequest
}

// IsGone checks if the error reports a deleted resource.
func IsGone(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusGone
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	code, ok := statusOf(err)

	return ok && code == http.StatusTooManyRequests
}
