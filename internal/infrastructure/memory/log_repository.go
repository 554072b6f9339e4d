package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// LogRepository keeps log entries in memory. Identifiers are ULIDs, so
// entries created in the same millisecond still sort by insertion.
type LogRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LogEntry
}

func NewLogRepository() *LogRepository {
	return &LogRepository{entries: make(map[string]*domain.LogEntry)}
}

func (r *LogRepository) Create(_ context.Context, e *domain.LogEntry) (string, error) {
	id := ulid.Make().String()
	stored := *e
	stored.ID = id

	r.mu.Lock()
	r.entries[id] = &stored
	r.mu.Unlock()
	return id, nil
}

func (r *LogRepository) FindByID(_ context.Context, id string) (*domain.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (r *LogRepository) MarkPublic(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.IsPublic = true
	return nil
}

func (r *LogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// collect returns copies of the entries accepted by keep, newest first.
func (r *LogRepository) collect(keep func(*domain.LogEntry) bool) []*domain.LogEntry {
	r.mu.RLock()
	out := make([]*domain.LogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			c := *e
			out = append(out, &c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (r *LogRepository) ListPublic(_ context.Context, limit int) ([]*domain.LogEntry, error) {
	out := r.collect(func(e *domain.LogEntry) bool { return e.IsPublic })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *LogRepository) ListByOwner(_ context.Context, username string) ([]*domain.LogEntry, error) {
	return r.collect(func(e *domain.LogEntry) bool { return e.Username == username }), nil
}

func (r *LogRepository) ListAll(_ context.Context) ([]*domain.LogEntry, error) {
	return r.collect(func(*domain.LogEntry) bool { return true }), nil
}
