package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/camelcase/task-api/internal/api/shared"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/service/auth"
)

// Messages returned by the gate. Clients match on them, keep them stable.
const (
	MsgMissingToken = "No authentication token provided."
	MsgExpiredToken = "Your session has expired. Please log in again."
	MsgInvalidToken = "Invalid authentication token."
	MsgAccessDenied = "Access denied."
)

const bearerPrefix = "Bearer "

var (
	publicExact = map[string]struct{}{
		"/":               {},
		"/api/auth/login": {},
		"/favicon.ico":    {},
		"/graphql/schema": {},
		"/health":         {},
		"/metrics":        {},
	}
	publicPrefixes = []string{
		"/static/",
		"/public/",
		"/vendor/",
		"/swagger-ui",
		"/v3/api-docs",
		"/graphiql",
	}
)

// IsPublicPath reports whether path may be served without a token.
func IsPublicPath(path string) bool {
	if _, ok := publicExact[path]; ok {
		return true
	}
	if strings.HasSuffix(path, ".html") {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthMiddleware is the authentication gate in front of every route.
type AuthMiddleware struct {
	tokens     auth.TokenService
	identities auth.IdentityResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService, identities auth.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		identities: identities,
	}
}

// Authenticate lets public paths through untouched. Every other request
// needs a valid bearer token whose subject resolves to a known identity,
// which is then attached to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			unauthorized(w, r, MsgMissingToken, nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

		claims, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				unauthorized(w, r, MsgMissingToken, err)
			case errors.Is(err, auth.ErrExpiredToken):
				unauthorized(w, r, MsgExpiredToken, err)
			case errors.Is(err, auth.ErrInvalidToken):
				unauthorized(w, r, MsgInvalidToken, err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					shared.ErrorResponse{Error: "Internal server error"}, err)
			}
			return
		}

		identity, err := m.identities.Lookup(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, auth.ErrUnknownIdentity) {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, shared.ErrorResponse{
					Error:   "Forbidden",
					Message: MsgAccessDenied,
				}, err, shared.WithElevatedLogLevel())
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				shared.ErrorResponse{Error: "Internal server error"}, err)
			return
		}

		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("request authenticated", slog.String("subject", identity.Username))

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), identity)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
	}, err)
}
