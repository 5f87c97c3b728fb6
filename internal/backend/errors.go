package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned for every 401 after the session has been cleared.
var ErrSessionExpired = errors.New("session expired")

// StatusError is a non-2xx reply, or a 2xx reply whose envelope says success=false.
type StatusError struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: non-OK status: %d", e.Method, e.Endpoint, e.Status)
}

func (e *StatusError) StatusCode() int { return e.Status }

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	return nil
}

// DecodeError means the reply did not match the expected schema. Nothing
// decoded from such a reply ever reaches a store.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServerMessage extracts the message worth showing to an operator, or "" when
// err carries none.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
