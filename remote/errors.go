package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxAttempts is returned when the retry attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrNoUser is returned when a request is made without a user id.
	ErrNoUser = errors.New("user id required")

	// ErrBaseURLRequired is returned when a client is created without a server URL.
	ErrBaseURLRequired = errors.New("base URL required")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote: HTTP %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
