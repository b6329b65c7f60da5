package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when the API answers 401. The call
// is not retried; the gateway navigates to the login page instead.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError is an HTTP-level rejection (non-2xx, non-401) carrying the
// server-supplied message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API request failed (status %d)", e.StatusCode)
}

// transportError marks a network-level failure, the class eligible
// for the development mock fallback.
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("api request error: %v", e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}
