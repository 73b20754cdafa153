package ports

import (
	"context"
	"time"
)

// TokenRevoker is the denylist consulted on every authenticated request.
// Revocations expire together with the token they invalidate.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
