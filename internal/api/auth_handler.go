package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/camelcase/task-api/internal/api/shared"
	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/service/auth"
)

// MsgBadCredentials is the only detail returned for a failed login.
const MsgBadCredentials = "Incorrect username or password."

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts auth.Authenticator
	tokens   auth.TokenService
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts auth.Authenticator, tokens auth.TokenService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "auth_handler")),
		timeFunc: time.Now,
	}
}

// Login handles POST /api/auth/login. Credentials arrive as JSON or as a
// urlencoded form and are exchanged for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			respondValidationError(w, r, err, "malformed form body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := shared.DecodeJSON(r, &req); err != nil {
		respondValidationError(w, r, err, "malformed JSON request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondValidationError(w, r, err)
		return
	}

	identity, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, shared.ErrorResponse{
				Error:   "Unauthorized",
				Details: []string{MsgBadCredentials},
			}, err, shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(r.Context(), identity.Username)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	expiresIn := int64(expiresAt.Sub(h.timeFunc()).Round(time.Second) / time.Second)
	if expiresIn < 0 {
		expiresIn = 0
	}

	log.Info("login succeeded", slog.String("username", identity.Username))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}
