package gateway

import "fmt"

// TransportError is any unexpected HTTP status from the backend, including
// not-found responses. Connection-level failures are returned as wrapped
// errors, not TransportErrors.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}
