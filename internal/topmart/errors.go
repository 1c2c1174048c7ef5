package topmart

import (
	"errors"
	"fmt"
	"net/http"

	"topmart-admin/internal/normalize"
)

// Error taxonomy for calls against the Top Mart API.
var (
	ErrTransport         = errors.New("topmart api unreachable")
	ErrHTTPStatus        = errors.New("topmart api returned non-success status")
	ErrMalformedResponse = normalize.ErrMalformedResponse
)

// APIError carries a non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("topmart api status %d", e.StatusCode)
	}
	return fmt.Sprintf("topmart api status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrHTTPStatus) hold for every *APIError
func (e *APIError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// IsUnauthorized reports whether err is a 401 or 403 from the API
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// UserMessage reduces any client error to one displayable line prefixed
// with the failed operation, e.g. "Failed to load deposit requests: ...".
func UserMessage(op string, err error) string {
	if err == nil {
		return ""
	}

	var detail string
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		switch {
		case IsUnauthorized(err):
			detail = "your session has expired, please sign in again"
		case apiErr.Message != "":
			detail = apiErr.Message
		default:
			detail = fmt.Sprintf("server responded with status %d", apiErr.StatusCode)
		}
	case errors.Is(err, ErrTransport):
		detail = "unable to reach the server, check your connection and try again"
	case errors.Is(err, ErrMalformedResponse):
		detail = "received an unexpected response from the server"
	default:
		detail = err.Error()
	}
	return fmt.Sprintf("Failed to %s: %s", op, detail)
}
