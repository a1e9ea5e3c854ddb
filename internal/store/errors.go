package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a row is absent or not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError names the required field that was missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field}
	}
	return nil
}
