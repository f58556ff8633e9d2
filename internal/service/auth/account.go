package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/camelcase/task-api/internal/config"
	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/platform/logger"
)

// Authenticator checks a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Identity, error)
}

// IdentityResolver resolves a verified token subject to an identity.
type IdentityResolver interface {
	Lookup(ctx context.Context, username string) (*domain.Identity, error)
}

// AdminAccount is the single configured identity. Only the bcrypt hash of
// its password is kept.
type AdminAccount struct {
	username     string
	passwordHash string
	verifier     PasswordVerifier
}

var (
	_ Authenticator    = (*AdminAccount)(nil)
	_ IdentityResolver = (*AdminAccount)(nil)
)

// NewAdminAccount hashes cfg.AdminPassword and returns the account.
func NewAdminAccount(cfg config.AuthConfig, verifier PasswordVerifier) (*AdminAccount, error) {
	return newAdminAccount(cfg.AdminUsername, cfg.AdminPassword, BcryptCost, verifier)
}

func newAdminAccount(username, password string, cost int, verifier PasswordVerifier) (*AdminAccount, error) {
	if username == "" {
		return nil, errors.New("admin username cannot be empty")
	}
	if password == "" {
		return nil, errors.New("admin password cannot be empty")
	}
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}

	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare admin account: %w", err)
	}

	return &AdminAccount{
		username:     username,
		passwordHash: hash,
		verifier:     verifier,
	}, nil
}

// Username returns the configured account name.
func (a *AdminAccount) Username() string {
	return a.username
}

// Authenticate returns the identity when both username and password match,
// and ErrInvalidCredentials otherwise. The password hash is always compared
// so a wrong username costs the same as a wrong password.
func (a *AdminAccount) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	log := logger.FromContext(ctx)

	passwordErr := a.verifier.Compare(a.passwordHash, password)
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	if !usernameOK || passwordErr != nil {
		log.Debug("authentication rejected", "username_match", usernameOK)
		return nil, ErrInvalidCredentials
	}

	return &domain.Identity{Username: a.username}, nil
}

// Lookup returns the identity for username or ErrUnknownIdentity.
func (a *AdminAccount) Lookup(ctx context.Context, username string) (*domain.Identity, error) {
	if username != a.username {
		return nil, ErrUnknownIdentity
	}
	return &domain.Identity{Username: a.username}, nil
}
