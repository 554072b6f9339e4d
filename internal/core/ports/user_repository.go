package ports

import (
	"context"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// UserRepository persists identities.
type UserRepository interface {
	// Create inserts a new identity. Returns domain.ErrDuplicateIdentity when
	// the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateAvatar replaces the avatar reference and returns the previous one.
	UpdateAvatar(ctx context.Context, username, avatar string) (previous string, err error)
	List(ctx context.Context) ([]*domain.User, error)
}
