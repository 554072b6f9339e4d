package domain

import "time"

// Actor is the verified subject of a request, decoded from a session token.
// The zero value is an anonymous caller.
type Actor struct {
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

// Anonymous reports whether the request carried no verified session.
func (a Actor) Anonymous() bool {
	return a.Username == ""
}

// IsAdmin reports whether the verified role claim is admin.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
