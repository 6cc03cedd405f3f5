package client

import (
	"errors"
	"fmt"
)

// NetworkError is a transport-level failure: the request never produced a
// response. The operation is retryable.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response, or a 200 whose envelope reports failure.
// Message carries the backend's text when one was provided.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// AsServerError reports whether err is (or wraps) a *ServerError.
func AsServerError(err error, target **ServerError) bool {
	return errors.As(err, target)
}

// UserMessage renders an error the way the presentation layer should show it:
// the backend's own message when there is one, a generic fallback otherwise.
func UserMessage(err error) string {
	var srvErr *ServerError
	if errors.As(err, &srvErr) && srvErr.Message != "" {
		return srvErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the canteen. Check your connection and try again."
	}
	return "Something went wrong. Please try again."
}
