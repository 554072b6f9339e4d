package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cholospace/mission-control/internal/core/domain"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("expected %s, got %s (%v)", oid.Hex(), got.Hex(), err)
	}

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "../etc/passwd"} {
		if _, err := parseID(bad); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("parseID(%q): expected ErrNotFound, got %v", bad, err)
		}
	}
}

func TestMongoLog_RoundTripThroughBSON(t *testing.T) {
	in := mongoLog{
		ID:       primitive.NewObjectID(),
		Username: "Nova",
		Message:  "orbit stable",
		IsPublic: true,
		Date:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"_id", "username", "message", "is_public", "date"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing field %q in %v", key, fields)
		}
	}

	var out mongoLog
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := out.toDomain()
	if e.ID != in.ID.Hex() || !e.IsPublic || !e.Date.Equal(in.Date) {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestMongoUser_ToDomainKeepsRoleAndAvatar(t *testing.T) {
	mu := mongoUser{
		ID:       primitive.NewObjectID(),
		Username: "JunaidRafi",
		Avatar:   "/uploads/a.png",
		Role:     "admin",
	}
	u := mu.toDomain()
	if u.Role != domain.RoleAdmin || u.Avatar != "/uploads/a.png" || u.ID != mu.ID.Hex() {
		t.Fatalf("unexpected user: %+v", u)
	}
}
