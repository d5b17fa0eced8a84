package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps connection-level failures.
	ErrTransport = errors.New("remote: transport failure")
	// ErrMalformed wraps responses that do not match the expected schema.
	ErrMalformed = errors.New("remote: malformed response")
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s %s returned status %d", e.Method, e.URL, e.Code)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
