// Package session implements the bearer-token registry.  A session maps an
// opaque, cryptographically random token to a username.  The registry is
// injected into the API layer as a Store so deployments can choose between
// the in-process map and Redis without touching the handlers.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrInvalidToken is returned by Resolve when a token is unknown, expired
// or revoked.  Handlers translate it into an HTTP 401 response.
var ErrInvalidToken = errors.New("invalid or expired token")

// Store issues, resolves and revokes bearer tokens.
type Store interface {
	// Issue creates a new token for the given username and returns it.
	Issue(ctx context.Context, username string) (string, error)
	// Resolve returns the username a token was issued to, or ErrInvalidToken.
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke invalidates a token.  Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}

// newToken returns a 64-character hex token from 32 bytes of secure random
// data.  Collisions are not a practical concern at this size.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
