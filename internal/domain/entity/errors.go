package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed matches every *ValidationError via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict is a unique constraint violation (slug, url, name).
	ErrConflict = errors.New("already exists")

	// ErrInvalidReference is a foreign key pointing at a missing row.
	ErrInvalidReference = errors.New("invalid reference")

	ErrTooLarge = errors.New("file too large")
)

// ValidationError names the offending field. Message is safe to show to
// API clients as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
