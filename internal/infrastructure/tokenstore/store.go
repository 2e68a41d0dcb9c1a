// Package tokenstore keeps the access token and user identity in a
// key/value store under two entries: the raw token and the JSON user.
package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

const (
	KeyToken = "authToken"
	KeyUser  = "user"
)

// Store implements ports.TokenStore on top of any ports.KeyValueStore.
type Store struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

func New(kv ports.KeyValueStore, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Save writes the user entry first and the token last. Load requires both,
// so a crash between the two writes leaves no usable half-session.
func (s *Store) Save(ctx context.Context, token string, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		_ = s.kv.Delete(ctx, KeyUser)
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the saved pair. A corrupt user entry is removed together with
// its token and reported as absent rather than as an error.
func (s *Store) Load(ctx context.Context) (string, *domain.User, error) {
	token, hasToken, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return "", nil, fmt.Errorf("load token: %w", err)
	}
	raw, hasUser, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if !hasToken || !hasUser || token == "" || raw == "" {
		return "", nil, nil
	}

	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == nil {
		s.log.Warn().Err(err).Msg("discarding corrupt persisted session")
		if clearErr := s.Clear(ctx); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear corrupt session")
		}
		return "", nil, nil
	}
	return token, user, nil
}

// Clear removes both entries.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
