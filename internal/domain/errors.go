package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a query or record that cannot be processed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound signals a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPropertyNotFound signals a missing property.
	ErrPropertyNotFound = errors.New("property not found")
)

// InvalidInputError wraps ErrInvalidInput with the offending reason.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an invalid input error.
func NewInvalidInput(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
