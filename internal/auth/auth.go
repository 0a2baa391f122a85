// Package auth verifies bearer credentials against the identity provider.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any credential that cannot be verified:
// malformed, expired, or signed by the wrong key.
var ErrInvalidToken = errors.New("invalid authentication credentials")

// Identity is the verified subject behind a bearer token.
type Identity struct {
	UID   string
	Email string
}

// Verifier turns an opaque bearer token into a verified identity.
// Verification is delegated entirely to the identity provider; this
// service stores nothing about users beyond the returned UID.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
