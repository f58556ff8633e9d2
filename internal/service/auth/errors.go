package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, uses an unexpected
	// signing method, or its signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a username/password pair was rejected
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnknownIdentity indicates a verified token names an identity that no longer exists
	ErrUnknownIdentity = errors.New("unknown identity")
)
