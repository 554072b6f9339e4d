package ports

import (
	"context"
	"time"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// SessionIssuer mints and verifies signed session tokens.
type SessionIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	Verify(ctx context.Context, token string) (domain.Actor, error)
	Revoke(ctx context.Context, actor domain.Actor) error
}

// RevocationList remembers token ids that must no longer be accepted.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
