package apisvc

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// Human-readable messages surfaced for globally intercepted failures.
const (
	msgSessionExpired   = "Session expired. Please login again."
	msgPermissionDenied = "You do not have permission to perform this action."
	msgNotFound         = "The requested resource was not found."
	msgServerError      = "Server error. Please try again later."
	msgTimeout          = "Request timeout. Please check your connection."
	msgNetworkError     = "Network error. Please check your internet connection."
	msgUnexpected       = "An unexpected error occurred"
)

// Error is a normalized API failure: a status code (0 for transport
// failures) and a human-readable message extracted from, in order, the
// server's message field, the transport error, or a generic fallback.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
