package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// AuthOptions tunes credential handling.
type AuthOptions struct {
	// TrustAnchor is the username that is provisioned with the admin role.
	TrustAnchor string
	// BcryptCost is the hashing work factor. Out-of-range values fall back to
	// DefaultBcryptCost.
	BcryptCost int
}

// AuthService is the credential store: it registers identities, verifies
// passwords and hands verified users to the session issuer.
type AuthService struct {
	repo        ports.UserRepository
	sessions    ports.SessionIssuer
	trustAnchor string
	cost        int
	// dummyHash is compared against when the username is unknown so that
	// unknown-user and wrong-password take the same time.
	dummyHash []byte
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionIssuer, opts AuthOptions, log zerolog.Logger) *AuthService {
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("mission-control"), cost)
	return &AuthService{
		repo:        repo,
		sessions:    sessions,
		trustAnchor: opts.TrustAnchor,
		cost:        cost,
		dummyHash:   dummy,
		log:         log,
	}
}

// Register creates a new identity. The role is derived from the username and
// never taken from the caller.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		Avatar:       domain.DefaultAvatar,
		Role:         domain.DeriveRole(username, s.trustAnchor),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("identity registered")
	return created, nil
}

// Verify returns the identity when password matches its stored hash.
// The username is normalised the same way Register stores it. Unknown
// usernames and mismatched passwords both yield domain.ErrInvalidCredential.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredential
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredential
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredential
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			s.log.Debug().Str("username", username).Msg("login rejected")
		}
		return nil, err
	}

	token, exp, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("session issued")
	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, actor domain.Actor) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if err := s.sessions.Revoke(ctx, actor); err != nil {
		return err
	}
	s.log.Info().Str("username", actor.Username).Msg("session revoked")
	return nil
}

// UpdateAvatar overwrites the avatar reference and returns the previous one.
func (s *AuthService) UpdateAvatar(ctx context.Context, username, avatarRef string) (string, error) {
	return s.repo.UpdateAvatar(ctx, username, avatarRef)
}
