package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
	listErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	c := cloneUser(user)
	c.ID = "id-" + user.Username
	r.users[c.Username] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, username, avatar string) (string, error) {
	u, ok := r.users[username]
	if !ok {
		return "", domain.ErrNotFound
	}
	prev := u.Avatar
	u.Avatar = avatar
	return prev, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory log repository
// ---------------------------------------------------------------------------

type stubLogRepo struct {
	entries     map[string]*domain.LogEntry
	seq         int
	createErr   error
	markCalls   int
	leakPrivate bool // ListPublic ignores the public filter when set
	leakOwners  bool // ListByOwner ignores the owner filter when set
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{entries: make(map[string]*domain.LogEntry)}
}

func (r *stubLogRepo) Create(_ context.Context, e *domain.LogEntry) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	id := fmt.Sprintf("log-%03d", r.seq)
	c := *e
	c.ID = id
	r.entries[id] = &c
	return id, nil
}

func (r *stubLogRepo) FindByID(_ context.Context, id string) (*domain.LogEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (r *stubLogRepo) MarkPublic(_ context.Context, id string) error {
	r.markCalls++
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.IsPublic = true
	return nil
}

func (r *stubLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *stubLogRepo) filter(keep func(*domain.LogEntry) bool) []*domain.LogEntry {
	out := []*domain.LogEntry{}
	for _, e := range r.entries {
		if keep(e) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *stubLogRepo) ListPublic(_ context.Context, limit int) ([]*domain.LogEntry, error) {
	out := r.filter(func(e *domain.LogEntry) bool { return r.leakPrivate || e.IsPublic })
	if !r.leakPrivate && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubLogRepo) ListByOwner(_ context.Context, username string) ([]*domain.LogEntry, error) {
	return r.filter(func(e *domain.LogEntry) bool { return r.leakOwners || e.Username == username }), nil
}

func (r *stubLogRepo) ListAll(_ context.Context) ([]*domain.LogEntry, error) {
	return r.filter(func(*domain.LogEntry) bool { return true }), nil
}

// seed stores an entry with an explicit date and visibility.
func (r *stubLogRepo) seed(owner, message string, public bool, date time.Time) string {
	id, _ := r.Create(context.Background(), &domain.LogEntry{Username: owner, Message: message, IsPublic: public, Date: date})
	return id
}

// ---------------------------------------------------------------------------
// Broadcast store, revocation list, avatar storage, janitor
// ---------------------------------------------------------------------------

type stubBroadcastStore struct {
	value  string
	setErr error
	sets   int
}

func (s *stubBroadcastStore) Get(context.Context) (string, error) { return s.value, nil }

func (s *stubBroadcastStore) Set(_ context.Context, message string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.value = message
	return nil
}

type stubRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = until
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok, nil
}

type stubAvatarStorage struct {
	objects map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newStubAvatarStorage() *stubAvatarStorage {
	return &stubAvatarStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *stubAvatarStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	ref := "/uploads/" + key
	s.objects[ref] = buf.Bytes()
	s.types[ref] = contentType
	return ref, nil
}

func (s *stubAvatarStorage) Delete(_ context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	delete(s.objects, ref)
	return nil
}

func (s *stubAvatarStorage) Owns(ref string) bool { return strings.HasPrefix(ref, "/uploads/") }

type stubJanitor struct {
	jobs []string
}

func (j *stubJanitor) Enqueue(username, ref string) { j.jobs = append(j.jobs, username+"="+ref) }

var errStorageDown = errors.New("storage down")

var _ ports.LogRepository = (*stubLogRepo)(nil)
var _ ports.UserRepository = (*stubUserRepo)(nil)
