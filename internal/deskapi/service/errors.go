package service

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrEmailTaken       = errors.New("email is already taken")
	ErrOrderNumberTaken = errors.New("order number is already taken")
)

// ValidationError rejects a request with a reason the caller can show.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalidField(name string) error {
	return &ValidationError{Reason: "Invalid " + name}
}
