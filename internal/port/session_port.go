package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, identifier, secret string) (domain.User, error)
}

// SessionStore keeps the logged-in user between runs.
// Load returns a nil user when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user domain.User) error
	Delete(ctx context.Context) error
}
