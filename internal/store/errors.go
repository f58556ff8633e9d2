package store

import (
	"errors"
	"fmt"

	"github.com/camelcase/task-api/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when the backing store rejects an entity,
	// for example because it violates a NOT NULL or CHECK constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrInvalidPage is returned when a page number or size is below 1.
	ErrInvalidPage = fmt.Errorf("%w: page number and size must be at least 1", domain.ErrInvalidArgument)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
