package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" || cfg.StoreBackend != BackendMongo {
		t.Fatalf("unexpected defaults: port=%s store=%s", cfg.Port, cfg.StoreBackend)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.BcryptCost != 10 || cfg.Auth.AdminUsername != "JunaidRafi" {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Broadcast.Backend != BackendMemory || cfg.Avatar.Backend != BackendLocal {
		t.Fatalf("unexpected backend defaults: %+v %+v", cfg.Broadcast, cfg.Avatar)
	}
	if cfg.Avatar.MaxBytes != 2<<20 {
		t.Fatalf("unexpected avatar limit %d", cfg.Avatar.MaxBytes)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"TOKEN_TTL":          "90m",
		"ADMIN_USERNAME":     "Commander",
		"BROADCAST_BACKEND":  "redis",
		"AVATAR_BACKEND":     "s3",
		"S3_BUCKET":          "avatars",
		"S3_ENDPOINT":        "http://minio:9000",
		"S3_PUBLIC_BASE_URL": "https://cdn.cholo.space/avatars",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute || cfg.Auth.AdminUsername != "Commander" {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
	if cfg.S3.Bucket != "avatars" || cfg.S3.Endpoint != "http://minio:9000" {
		t.Fatalf("s3 overrides not applied: %+v", cfg.S3)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":          {"STORE_BACKEND": "postgres"},
		"unknown broadcast":      {"BROADCAST_BACKEND": "etcd"},
		"redis without mongo":    {"STORE_BACKEND": "memory", "BROADCAST_BACKEND": "redis"},
		"s3 without bucket":      {"AVATAR_BACKEND": "s3", "S3_PUBLIC_BASE_URL": "https://cdn.cholo.space"},
		"s3 without public url":  {"AVATAR_BACKEND": "s3", "S3_BUCKET": "avatars"},
		"unknown avatar backend": {"AVATAR_BACKEND": "ftp"},
		"non-positive ttl":       {"TOKEN_TTL": "0s"},
	}
	for name, env := range cases {
		env["JWT_SECRET"] = "s3cret"
		if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestAvatarConfig_RequestBodyLimit(t *testing.T) {
	cases := map[string]struct {
		maxBytes int64
		want     string
	}{
		"small avatars keep the floor": {maxBytes: 2 << 20, want: "4194304"},
		"large avatars raise the cap":  {maxBytes: 10 << 20, want: "10551296"},
	}
	for name, tc := range cases {
		if got := (AvatarConfig{MaxBytes: tc.maxBytes}).RequestBodyLimit(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", name, tc.want, got)
		}
	}
}
