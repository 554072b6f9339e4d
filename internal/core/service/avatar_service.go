package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/policy"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// DefaultAvatarMaxBytes caps an avatar upload when no limit is configured.
const DefaultAvatarMaxBytes int64 = 2 << 20

var allowedAvatarTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// AvatarRegistry records the current avatar reference of an identity.
type AvatarRegistry interface {
	UpdateAvatar(ctx context.Context, username, avatarRef string) (previous string, err error)
}

type AvatarService struct {
	storage  ports.AvatarStorage
	registry AvatarRegistry
	janitor  ports.AvatarJanitor
	maxBytes int64
	logger   zerolog.Logger
}

func NewAvatarService(storage ports.AvatarStorage, registry AvatarRegistry, janitor ports.AvatarJanitor, maxBytes int64, logger zerolog.Logger) *AvatarService {
	if maxBytes <= 0 {
		maxBytes = DefaultAvatarMaxBytes
	}
	return &AvatarService{
		storage:  storage,
		registry: registry,
		janitor:  janitor,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Upload stores a new avatar for in.Target and points the identity at it.
// The superseded blob, if it was one of ours, is handed to the janitor.
func (s *AvatarService) Upload(ctx context.Context, actor domain.Actor, in ports.AvatarUpload) (string, error) {
	if in.Target == "" {
		in.Target = actor.Username
	}
	if err := policy.Authorize(policy.UploadAvatar, actor, policy.Resource{Owner: in.Target}); err != nil {
		return "", err
	}
	if in.Content == nil {
		return "", fmt.Errorf("%w: avatar file is required", domain.ErrInvalidInput)
	}
	if in.Size > s.maxBytes {
		return "", fmt.Errorf("%w: avatar exceeds %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(in.Content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: avatar exceeds %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: avatar file is empty", domain.ErrInvalidInput)
	}

	mtype := mimetype.Detect(data)
	if _, ok := allowedAvatarTypes[mtype.String()]; !ok {
		return "", fmt.Errorf("%w: unsupported avatar type %s", domain.ErrInvalidInput, mtype.String())
	}

	key := uuid.NewString() + mtype.Extension()
	ref, err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String())
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	previous, err := s.registry.UpdateAvatar(ctx, in.Target, ref)
	if err != nil {
		if delErr := s.storage.Delete(ctx, ref); delErr != nil {
			s.logger.Warn().Err(delErr).Str("ref", ref).Msg("failed to discard orphaned avatar")
		}
		return "", err
	}

	if previous != "" && previous != ref && s.storage.Owns(previous) && s.janitor != nil {
		s.janitor.Enqueue(in.Target, previous)
	}

	s.logger.Info().Str("username", in.Target).Str("ref", ref).Str("filename", in.Filename).Msg("avatar updated")
	return ref, nil
}
