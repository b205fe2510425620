package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRefreshFailed = errors.New("credential refresh failed")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Payload    ErrorPayload
}

func (e *APIError) Error() string {
	if msg := Flatten(e.Payload); msg != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes 401 and 403 responses match ErrUnauthorized, and 5xx responses
// match ErrUnavailable.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// UserMessage returns the backend's own explanation for err when it sent
// one, and fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := Flatten(apiErr.Payload); msg != "" {
			return msg
		}
	}
	return fallback
}
