package ports

import (
	"context"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// UserHistory is an identity's profile summary together with all its logs.
type UserHistory struct {
	Avatar string
	Role   domain.Role
	Logs   []*domain.LogEntry
}

// MasterFeed is the admin view over every log and identity.
type MasterFeed struct {
	Logs  []*domain.LogEntry
	Users []*domain.User
}

// LogService is the visibility ledger: it owns log creation, sharing,
// deletion and every read path, enforcing the authorization policy.
type LogService interface {
	CreateLog(ctx context.Context, actor domain.Actor, owner, message string) (*domain.LogEntry, error)
	SetPublic(ctx context.Context, actor domain.Actor, id string) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
	ListPublic(ctx context.Context, limit int) ([]*domain.LogEntry, error)
	History(ctx context.Context, actor domain.Actor, username string) (*UserHistory, error)
	MasterFeed(ctx context.Context, actor domain.Actor) (*MasterFeed, error)
}
