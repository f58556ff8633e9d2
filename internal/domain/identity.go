package domain

// Identity is the authenticated principal attached to a request.
// The service has exactly one configured account.
type Identity struct {
	Username string
}
