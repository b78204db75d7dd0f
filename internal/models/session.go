package models

import "time"

// Session is what a verified token says about its bearer.
type Session struct {
	TokenID   string    `json:"-"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Plant     string    `json:"plant"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
