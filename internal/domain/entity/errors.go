package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidArgument indicates bad or missing input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates that no matching story exists
	ErrNotFound = errors.New("not found")

	// ErrWriteFailed indicates that a mutation affected zero rows
	ErrWriteFailed = errors.New("write failed")

	// ErrNetwork indicates a fetch or connectivity failure
	ErrNetwork = errors.New("network error")
)

// ValidationError represents a validation error with detailed field information.
// It matches ErrInvalidArgument under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers test validation failures with errors.Is(err, ErrInvalidArgument).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// UserError pairs a taxonomy sentinel with the message shown to API clients.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// NewUserError returns an error that matches kind and carries msg for clients.
func NewUserError(kind error, msg string) error {
	return &UserError{Kind: kind, Message: msg}
}
