package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/camelcase/task-api/internal/api/shared"
	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/service"
	"github.com/camelcase/task-api/internal/service/auth"
	"github.com/camelcase/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrUnknownIdentity):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the error title shown to clients for err.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Task not found"
	case http.StatusBadRequest:
		return "Validation error"
	default:
		return "Internal server error"
	}
}

// ErrorDetails returns the client-safe itemized explanation for err.
// Errors that are not caused by the client get none.
func ErrorDetails(err error) []string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return shared.ValidationDetails(err)
	case errors.Is(err, domain.ErrInvalidID):
		return []string{"id: must be a positive integer"}
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return []string{"status: must be one of " + domain.StatusChoices()}
	case errors.Is(err, domain.ErrInvalidDate):
		return []string{"dueDate: must be a date in YYYY-MM-DD format"}
	case errors.Is(err, store.ErrInvalidPage):
		return []string{"page and size must be at least 1"}
	case errors.Is(err, store.ErrInvalidEntity):
		return []string{"task violates a storage constraint"}
	case errors.Is(err, domain.ErrInvalidArgument):
		return []string{"invalid argument"}
	default:
		return nil
	}
}

// HandleAPIError writes the standard error response for err and logs it.
// Internal failures are reported generically; the cause only reaches the log.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, shared.ErrorResponse{
		Error:   GetSafeErrorMessage(err),
		Details: ErrorDetails(err),
	}, err, opts...)
}

// handleTaskError is HandleAPIError with the task identifier named in not-found details.
func handleTaskError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if MapErrorToStatusCode(err) == http.StatusNotFound {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, shared.ErrorResponse{
			Error:   GetSafeErrorMessage(err),
			Details: []string{fmt.Sprintf("Task with ID %s not found", id)},
		}, err)
		return
	}
	HandleAPIError(w, r, err)
}

// respondValidationError reports request-level validation failures.
func respondValidationError(w http.ResponseWriter, r *http.Request, err error, details ...string) {
	if len(details) == 0 {
		details = shared.ValidationDetails(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, shared.ErrorResponse{
		Error:   "Validation error",
		Details: details,
	}, err)
}
