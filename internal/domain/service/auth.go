package service

import (
	"context"
)

// Claims is the identity extracted from a verified session token.
type Claims struct {
	UserID string
	Role   string
}

// TokenVerifier abstracts the external auth provider. Implementations
// verify the opaque token taken from request headers.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
