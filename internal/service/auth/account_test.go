package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/camelcase/task-api/internal/config"
)

func newTestAccount(t *testing.T) *AdminAccount {
	t.Helper()
	account, err := newAdminAccount("admin", "s3cret-pass", bcrypt.MinCost, nil)
	require.NoError(t, err)
	return account
}

func TestNewAdminAccount(t *testing.T) {
	t.Parallel()

	_, err := newAdminAccount("", "pw", bcrypt.MinCost, nil)
	assert.Error(t, err)

	_, err = newAdminAccount("admin", "", bcrypt.MinCost, nil)
	assert.Error(t, err)

	account, err := NewAdminAccount(config.AuthConfig{AdminUsername: "root", AdminPassword: "hunter22"}, NewBcryptVerifier())
	require.NoError(t, err)
	assert.Equal(t, "root", account.Username())
	assert.NotEqual(t, "hunter22", account.passwordHash, "plaintext is never stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.passwordHash), []byte("hunter22")))
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	account := newTestAccount(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "correct", username: "admin", password: "s3cret-pass"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: true},
		{name: "wrong username", username: "root", password: "s3cret-pass", wantErr: true},
		{name: "empty", username: "", password: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := account.Authenticate(context.Background(), tc.username, tc.password)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", identity.Username)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()
	account := newTestAccount(t)

	identity, err := account.Lookup(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)

	_, err = account.Lookup(context.Background(), "someone-else")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, NewBcryptVerifier().Compare(hash, "password123"))
	assert.Error(t, NewBcryptVerifier().Compare(hash, "password124"))

	_, err = HashPassword(string(make([]byte, 80)), bcrypt.MinCost)
	assert.Error(t, err, "bcrypt rejects passwords longer than 72 bytes")
}
