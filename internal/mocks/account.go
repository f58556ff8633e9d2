package mocks

import (
	"context"

	"github.com/camelcase/task-api/internal/domain"
	"github.com/camelcase/task-api/internal/service/auth"
)

// MockAccount implements auth.Authenticator and auth.IdentityResolver for testing.
// With no functions set it knows a single user, Username, whose password is Password.
type MockAccount struct {
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.Identity, error)
	LookupFn       func(ctx context.Context, username string) (*domain.Identity, error)

	Username string
	Password string
}

var (
	_ auth.Authenticator    = (*MockAccount)(nil)
	_ auth.IdentityResolver = (*MockAccount)(nil)
)

// Authenticate implements the auth.Authenticator interface
func (m *MockAccount) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	if username != m.Username || password != m.Password {
		return nil, auth.ErrInvalidCredentials
	}
	return &domain.Identity{Username: username}, nil
}

// Lookup implements the auth.IdentityResolver interface
func (m *MockAccount) Lookup(ctx context.Context, username string) (*domain.Identity, error) {
	if m.LookupFn != nil {
		return m.LookupFn(ctx, username)
	}
	if username != m.Username {
		return nil, auth.ErrUnknownIdentity
	}
	return &domain.Identity{Username: username}, nil
}
