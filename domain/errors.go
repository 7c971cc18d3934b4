package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrDuplicateID     = errors.New("duplicate vehicle id")
	ErrInvalidVehicle  = errors.New("invalid vehicle record")
)

// ValidationError reports an input that was rejected rather than corrected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
