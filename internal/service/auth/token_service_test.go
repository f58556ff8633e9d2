package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camelcase/task-api/internal/config"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestTokenService(t *testing.T, secret string, now func() time.Time) *hmacTokenService {
	t.Helper()
	svc, err := newHMACTokenService(secret, TokenLifetime, now)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)

	svc, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, testSecret, func() time.Time { return fixedTime })

	token, expiresAt, err := svc.GenerateToken(context.Background(), "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(TokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, _, err := svc.GenerateToken(context.Background(), "admin")
	require.NoError(t, err)
	otherClaims, err := svc.ValidateToken(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID, "each token gets its own id")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestTokenService(t, testSecret, func() time.Time { return issuedAt })
	token, _, err := issuer.GenerateToken(context.Background(), "admin")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		secret  string
		token   string
		wantErr error
	}{
		{name: "valid", now: issuedAt.Add(30 * time.Minute), secret: testSecret, token: token},
		{name: "one second before expiry", now: issuedAt.Add(TokenLifetime - time.Second), secret: testSecret, token: token},
		{name: "just past expiry", now: issuedAt.Add(TokenLifetime + time.Second), secret: testSecret, token: token, wantErr: ErrExpiredToken},
		{name: "wrong secret", now: issuedAt, secret: "wrong-secret-that-is-long-enough-for-testing", token: token, wantErr: ErrInvalidToken},
		{name: "malformed", now: issuedAt, secret: testSecret, token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "tampered", now: issuedAt, secret: testSecret, token: token[:len(token)-2] + "xx", wantErr: ErrInvalidToken},
		{name: "alg none", now: issuedAt, secret: testSecret, token: noneToken, wantErr: ErrInvalidToken},
		{name: "missing subject", now: issuedAt, secret: testSecret, token: noSubject, wantErr: ErrInvalidToken},
		{name: "missing expiry", now: issuedAt, secret: testSecret, token: noExpiry, wantErr: ErrInvalidToken},
		{name: "empty", now: issuedAt, secret: testSecret, token: "", wantErr: ErrMissingToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now := tc.now
			verifier := newTestTokenService(t, tc.secret, func() time.Time { return now })

			claims, err := verifier.ValidateToken(context.Background(), tc.token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Subject)
		})
	}
}

func TestGeneratedTokenIsHS256(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, testSecret, time.Now)
	token, _, err := svc.GenerateToken(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Method.Alg())
}
