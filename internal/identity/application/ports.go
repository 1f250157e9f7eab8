package application

import (
	"context"

	"github.com/dmehra2102/smart-inventory/internal/identity/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) error
}

// SessionStore holds live bearer tokens. Entries may expire server-side.
type SessionStore interface {
	Put(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}
