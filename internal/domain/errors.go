package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// ValidationErrors matches it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument is returned when caller-supplied input cannot be interpreted,
	// e.g. an identifier that does not parse or an unknown status name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidID is returned when a task ID is malformed.
	ErrInvalidID = fmt.Errorf("%w: invalid task ID", ErrInvalidArgument)

	// ErrInvalidTaskStatus is returned when a status string has no mapping.
	ErrInvalidTaskStatus = fmt.Errorf("%w: invalid task status", ErrInvalidArgument)

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrInvalidArgument)
)

// FieldError describes a single failed constraint on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the error as "field: message".
func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field that failed validation.
type ValidationErrors []FieldError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.String()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ValidationErrors as ErrValidation.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Details returns the itemized "field: message" strings.
func (v ValidationErrors) Details() []string {
	out := make([]string, len(v))
	for i, fe := range v {
		out[i] = fe.String()
	}
	return out
}

// NewValidationError creates a ValidationErrors holding one field error.
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}
