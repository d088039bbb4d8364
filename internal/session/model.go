package session

import "strings"

// Role is the access level attached to an authenticated session.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// NormalizeRole lower-cases a raw role value. Values outside the known
// enumeration are kept as-is: they are simply never members of any allowed
// set, so access checks deny them without erroring.
func NormalizeRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// Session is the authenticated identity snapshot for one visitor. A zero
// UserID means unauthenticated regardless of any stale Role value.
type Session struct {
	UserID   string
	Role     Role
	Username string
}

// Authenticated reports whether the session carries an identity.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// HasRole reports whether the session is authenticated and its role belongs
// to the allowed set.
func (s Session) HasRole(allowed ...Role) bool {
	if !s.Authenticated() {
		return false
	}
	for _, r := range allowed {
		if s.Role == r {
			return true
		}
	}
	return false
}

// record is the atomic auth payload persisted alongside the flat mirrors.
type record struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	LoggedIn bool   `json:"logged_in"`
}
