package ports

import (
	"context"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// LogRepository persists log entries. All list methods return entries
// ordered most-recent-first.
type LogRepository interface {
	Create(ctx context.Context, entry *domain.LogEntry) (string, error)
	FindByID(ctx context.Context, id string) (*domain.LogEntry, error)
	// MarkPublic sets is_public=true. Calling it on an already public entry
	// is not an error.
	MarkPublic(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListPublic(ctx context.Context, limit int) ([]*domain.LogEntry, error)
	ListByOwner(ctx context.Context, username string) ([]*domain.LogEntry, error)
	ListAll(ctx context.Context) ([]*domain.LogEntry, error)
}
