package ports

import (
	"context"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// KeyValueStore is durable string storage with single-key atomicity.
// Get reports found=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenStore persists the access token together with the derived user.
type TokenStore interface {
	Save(ctx context.Context, token string, user domain.User) error
	// Load returns an empty token and nil user when nothing usable is stored.
	Load(ctx context.Context) (token string, user *domain.User, err error)
	Clear(ctx context.Context) error
}
