// Package service contains the application use cases. It sits between the
// transport adapters (REST and GraphQL) and the task store: it parses
// transport-level identifiers and status names, applies defaults, runs
// domain validation, and translates store errors into service errors.
//
// Error handling:
//   - Expected conditions are returned as sentinel errors (ErrTaskNotFound,
//     domain.ErrInvalidArgument and domain.ErrValidation values) so adapters
//     can match them with errors.Is.
//   - Unexpected errors are wrapped in *TaskServiceError.
package service
