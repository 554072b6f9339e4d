package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cholospace/mission-control/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	created, err := repo.Create(ctx, &domain.User{Username: "Nova", PasswordHash: "h1", Avatar: domain.DefaultAvatar, Role: domain.RolePilot})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := repo.Create(ctx, &domain.User{Username: "Nova", PasswordHash: "h2"}); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
	u, _ := repo.FindByUsername(ctx, "Nova")
	if u.PasswordHash != "h1" {
		t.Fatalf("duplicate registration overwrote stored hash")
	}

	prev, err := repo.UpdateAvatar(ctx, "Nova", "/uploads/a.png")
	if err != nil || prev != domain.DefaultAvatar {
		t.Fatalf("update avatar: prev=%q err=%v", prev, err)
	}
	if _, err := repo.UpdateAvatar(ctx, "Ghost", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 || users[0].PasswordHash != "" {
		t.Fatalf("list must omit hashes: %+v", users)
	}
}

func TestLogRepository_OrderingAndVisibility(t *testing.T) {
	ctx := context.Background()
	repo := NewLogRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := repo.Create(ctx, &domain.LogEntry{Username: "Nova", Message: "m", Date: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, id)
	}
	for _, id := range ids[1:4] {
		if err := repo.MarkPublic(ctx, id); err != nil {
			t.Fatalf("mark public: %v", err)
		}
	}

	public, _ := repo.ListPublic(ctx, 2)
	if len(public) != 2 || public[0].ID != ids[3] || public[1].ID != ids[2] {
		t.Fatalf("unexpected public feed: %+v", public)
	}

	all, _ := repo.ListAll(ctx)
	for i := 1; i < len(all); i++ {
		if all[i].Date.After(all[i-1].Date) {
			t.Fatalf("entries not newest first")
		}
	}

	if err := repo.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, ids[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, ids[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLogRepository_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewLogRepository()
	id, _ := repo.Create(ctx, &domain.LogEntry{Username: "Nova", Message: "orig"})

	e, _ := repo.FindByID(ctx, id)
	e.Message = "mutated"
	e.IsPublic = true

	again, _ := repo.FindByID(ctx, id)
	if again.Message != "orig" || again.IsPublic {
		t.Fatalf("stored entry was mutated through a returned copy")
	}
}

func TestRevocationList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRevocationList()
	l.now = func() time.Time { return now }

	_ = l.Revoke(ctx, "live", now.Add(time.Hour))
	_ = l.Revoke(ctx, "stale", now.Add(-time.Minute))

	if ok, _ := l.IsRevoked(ctx, "live"); !ok {
		t.Fatalf("expected live token revoked")
	}
	if ok, _ := l.IsRevoked(ctx, "stale"); ok {
		t.Fatalf("already expired token need not be tracked")
	}

	now = now.Add(2 * time.Hour)
	if ok, _ := l.IsRevoked(ctx, "live"); ok {
		t.Fatalf("revocation should lapse with token expiry")
	}
}
