package handler

import (
	"time"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64,excludesall=/"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type saveLogRequest struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message" validate:"required"`
}

type saveLogResponse struct {
	ID  string           `json:"id"`
	Log *domain.LogEntry `json:"log"`
}

type historyResponse struct {
	Avatar string             `json:"avatar"`
	Role   domain.Role        `json:"role"`
	Logs   []*domain.LogEntry `json:"logs"`
}

type masterFeedResponse struct {
	Logs  []*domain.LogEntry `json:"logs"`
	Users []*domain.User     `json:"users"`
}

type broadcastRequest struct {
	Message string `json:"message" validate:"required"`
}

type broadcastResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type avatarResponse struct {
	Path string `json:"path"`
}

// errorBody mirrors the API error envelope for swagger docs.
type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// nonNil keeps JSON arrays as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
