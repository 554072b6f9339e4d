package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/policy"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// LogService is the visibility ledger. Every mutation loads the entry first so
// the ownership rule is evaluated against the stored owner, not against
// anything the client sent.
type LogService struct {
	logs   ports.LogRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewLogService(logs ports.LogRepository, users ports.UserRepository, logger zerolog.Logger) *LogService {
	return &LogService{logs: logs, users: users, logger: logger, now: time.Now}
}

// CreateLog stores a new private entry owned by owner. An empty owner
// defaults to the actor.
func (s *LogService) CreateLog(ctx context.Context, actor domain.Actor, owner, message string) (*domain.LogEntry, error) {
	if owner == "" {
		owner = actor.Username
	}
	if err := policy.Authorize(policy.CreateLog, actor, policy.Resource{Owner: owner}); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: message must be 1-%d characters", domain.ErrInvalidInput, domain.MaxMessageLength)
	}

	entry := &domain.LogEntry{
		Username: owner,
		Message:  message,
		IsPublic: false,
		Date:     s.now().UTC(),
	}
	id, err := s.logs.Create(ctx, entry)
	if err != nil {
		s.logger.Error().Err(err).Str("username", owner).Msg("failed to save log")
		return nil, err
	}
	entry.ID = id

	s.logger.Info().Str("username", owner).Str("log_id", id).Msg("log recorded")
	return entry, nil
}

// SetPublic shares an entry. Sharing an already public entry succeeds
// without changes.
func (s *LogService) SetPublic(ctx context.Context, actor domain.Actor, id string) error {
	entry, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.ShareLog, actor, policy.Resource{Owner: entry.Username}); err != nil {
		return err
	}
	if entry.IsPublic {
		return nil
	}
	if err := s.logs.MarkPublic(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("log_id", id).Str("by", actor.Username).Msg("log shared")
	return nil
}

func (s *LogService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	entry, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.DeleteLog, actor, policy.Resource{Owner: entry.Username}); err != nil {
		return err
	}
	if err := s.logs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("log_id", id).Str("by", actor.Username).Msg("log deleted")
	return nil
}

// ListPublic returns up to limit public entries, newest first. Limits outside
// 1..domain.PublicFeedLimit are clamped.
func (s *LogService) ListPublic(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	if limit <= 0 || limit > domain.PublicFeedLimit {
		limit = domain.PublicFeedLimit
	}
	entries, err := s.logs.ListPublic(ctx, limit)
	if err != nil {
		return nil, err
	}

	// The query already filters, but the feed must never expose a private
	// entry even if a repository misbehaves.
	out := entries[:0]
	for _, e := range entries {
		if e.IsPublic {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// History returns the profile summary and full log history of username.
func (s *LogService) History(ctx context.Context, actor domain.Actor, username string) (*ports.UserHistory, error) {
	if err := policy.Authorize(policy.ReadHistory, actor, policy.Resource{Owner: username}); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	entries, err := s.logs.ListByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	// Private entries are re-checked against their own owner.
	visible := entries[:0]
	for _, e := range entries {
		if e.IsPublic || policy.Allowed(policy.ReadPrivateLog, actor, policy.Resource{Owner: e.Username}) {
			visible = append(visible, e)
		}
	}

	return &ports.UserHistory{
		Avatar: user.Avatar,
		Role:   user.Role,
		Logs:   visible,
	}, nil
}

// MasterFeed returns every log and every identity. Admin only.
func (s *LogService) MasterFeed(ctx context.Context, actor domain.Actor) (*ports.MasterFeed, error) {
	if err := policy.Authorize(policy.ReadMasterFeed, actor, policy.Resource{}); err != nil {
		return nil, err
	}

	feed := &ports.MasterFeed{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.logs.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list logs: %w", err)
		}
		feed.Logs = entries
		return nil
	})
	g.Go(func() error {
		users, err := s.users.List(gctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		feed.Users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch master feed")
		return nil, err
	}
	return feed, nil
}
