package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/camelcase/task-api/internal/api"
	"github.com/camelcase/task-api/internal/api/shared"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/redact"
)

// Error codes carried in the "extensions" of a GraphQL error.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL"
)

// ResolverError is a client-safe error. graphql-go copies Extensions into the response.
type ResolverError struct {
	Message string
	Code    string
	Details []string
	cause   error
}

func (e *ResolverError) Error() string { return e.Message }

// Unwrap exposes the original cause to errors.Is.
func (e *ResolverError) Unwrap() error { return e.cause }

// Extensions implements graphql-go's ResolverError interface.
func (e *ResolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Details) > 0 {
		ext["details"] = e.Details
	}
	return ext
}

// resolverError converts a service error into a ResolverError and logs it.
// id names the task in not-found messages when known.
func (r *Resolver) resolverError(ctx context.Context, id string, err error) error {
	status := api.MapErrorToStatusCode(err)
	details := api.ErrorDetails(err)

	out := &ResolverError{Code: codeFor(status), Details: details, cause: err}
	switch {
	case status == http.StatusNotFound && id != "":
		out.Message = fmt.Sprintf("Task with ID %s not found", id)
	case status == http.StatusBadRequest && len(details) > 0:
		out.Message = api.GetSafeErrorMessage(err) + ": " + strings.Join(details, "; ")
	default:
		out.Message = api.GetSafeErrorMessage(err)
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContextOrDefault(ctx, r.logger).LogAttrs(ctx, level, "GraphQL resolver error",
		slog.String("trace_id", shared.GetTraceID(ctx)),
		slog.String("code", out.Code),
		slog.String("error", redact.Error(err)))

	return out
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	default:
		return CodeInternal
	}
}

// panicLogger routes graphql-go's panic reports to slog.
type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.FromContextOrDefault(ctx, l.logger).Error("panic during GraphQL execution",
		slog.String("trace_id", shared.GetTraceID(ctx)),
		slog.String("panic", redact.String(fmt.Sprint(value))))
}
