package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/camelcase/task-api/internal/domain"
)

// ContextKey is the type of request-context keys set by this package.
type ContextKey string

// Context keys for values attached to a request
const (
	// IdentityContextKey holds the authenticated *domain.Identity
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
// It correlates log lines and error responses for a single request.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithIdentity attaches the authenticated identity to the context.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*domain.Identity)
	return identity, ok && identity != nil
}
