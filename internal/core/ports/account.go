package ports

import (
	"context"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

// AccountRepository persists sandbox credentials.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// AccountService issues tokens for the sandbox backend.
type AccountService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (string, *domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
