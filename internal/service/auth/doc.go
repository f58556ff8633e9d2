// Package auth issues and verifies bearer tokens and authenticates the
// configured administrator account.
package auth
