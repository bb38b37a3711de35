package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched (via errors.Is) by any API error carrying a
// 401 status. A 401 means the stored credential is no longer valid and the
// caller must tear down the session rather than report an ordinary failure.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a failure reported by the backend. Message holds the
// server-provided description from the {"error": "..."} body when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ServerMessage extracts the backend's error message from err, or returns
// the empty string when err carries none (network failures, etc.).
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
