package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/policy"
	"github.com/cholospace/mission-control/internal/core/ports"
)

const maxBroadcastLength = 500

// BroadcastService gates writes to the sitewide announcement.
type BroadcastService struct {
	store  ports.BroadcastStore
	logger zerolog.Logger
}

func NewBroadcastService(store ports.BroadcastStore, logger zerolog.Logger) *BroadcastService {
	return &BroadcastService{store: store, logger: logger}
}

func (s *BroadcastService) Get(ctx context.Context) (string, error) {
	return s.store.Get(ctx)
}

// Set replaces the announcement. Denied writes leave the current value untouched.
func (s *BroadcastService) Set(ctx context.Context, message string, actor domain.Actor) error {
	if err := policy.Authorize(policy.WriteBroadcast, actor, policy.Resource{}); err != nil {
		s.logger.Warn().Str("username", actor.Username).Msg("broadcast write denied")
		return err
	}

	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > maxBroadcastLength {
		return fmt.Errorf("%w: message must be 1-%d characters", domain.ErrInvalidInput, maxBroadcastLength)
	}

	if err := s.store.Set(ctx, message); err != nil {
		return err
	}
	s.logger.Info().Str("username", actor.Username).Str("message", message).Msg("broadcast updated")
	return nil
}
