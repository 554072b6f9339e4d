package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

const (
	defaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "mission-control"
)

// sessionClaims is the signed token payload.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer mints HS256 session tokens carrying {username, role} plus an
// expiry and a token id that can be revoked before it expires.
type SessionIssuer struct {
	secret  []byte
	ttl     time.Duration
	revoked ports.RevocationList
	now     func() time.Time
}

// NewSessionIssuer returns an issuer signing with secret. A nil revocation
// list disables revocation checks.
func NewSessionIssuer(secret string, ttl time.Duration, revoked ports.RevocationList) *SessionIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &SessionIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

func (s *SessionIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)

	claims := sessionClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm, issuer, expiry and revocation, and
// returns the embedded actor. Every token problem surfaces as
// domain.ErrInvalidToken; only a failing revocation lookup returns another error.
func (s *SessionIssuer) Verify(ctx context.Context, token string) (domain.Actor, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if claims.Username == "" || !role.Valid() || claims.ID == "" {
		return domain.Actor{}, fmt.Errorf("%w: malformed claims", domain.ErrInvalidToken)
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return domain.Actor{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return domain.Actor{}, fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
		}
	}

	return domain.Actor{
		Username:  claims.Username,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates the actor's token until it would have expired anyway.
func (s *SessionIssuer) Revoke(ctx context.Context, actor domain.Actor) error {
	if s.revoked == nil {
		return errors.New("token revocation is not configured")
	}
	if actor.TokenID == "" {
		return fmt.Errorf("%w: token has no id", domain.ErrInvalidToken)
	}
	return s.revoked.Revoke(ctx, actor.TokenID, actor.ExpiresAt)
}
