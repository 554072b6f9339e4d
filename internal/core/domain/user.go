package domain

import "time"

// Role is the privilege level carried by an identity and its session tokens.
type Role string

const (
	RolePilot Role = "pilot"
	RoleAdmin Role = "admin"
)

// DefaultAvatar is assigned to every identity until an avatar is uploaded.
const DefaultAvatar = "https://cdn-icons-png.flaticon.com/512/1047/1047711.png"

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePilot || r == RoleAdmin
}

// DeriveRole returns RoleAdmin for the configured trust-anchor username and
// RolePilot for everyone else. Matching is exact and case-sensitive.
func DeriveRole(username, trustAnchor string) Role {
	if trustAnchor != "" && username == trustAnchor {
		return RoleAdmin
	}
	return RolePilot
}

// User models a registered identity. Role is fixed at creation; Avatar is the
// only field that changes afterwards.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
