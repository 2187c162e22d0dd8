package sessions

import (
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/jrsteele09/schoolgest-client/users"
)

// Session is the client's view of who is logged in. Values are immutable:
// Authenticated, User and Role are either all set or all empty.
type Session struct {
	User          *users.User // Current user, nil when logged out
	Authenticated bool        // True only when User and Role are set
	Role          users.Role  // Normalized role of User
}

// detached returns s with its own copy of the user
func (s Session) detached() Session {
	s.User = s.User.Clone()
	return s
}

// HasRole reports whether the session's role is one of roles
func (s Session) HasRole(roles ...users.Role) bool {
	if !s.Authenticated {
		return false
	}
	for _, r := range roles {
		if users.NormalizeRole(r) == s.Role {
			return true
		}
	}
	return false
}

// Decision is the outcome of a route guard check
type Decision struct {
	Allowed  bool
	Redirect string // Route to send the user to when not allowed
}

// Guard checks access to a surface restricted to roles. No roles means any
// authenticated user is allowed.
func Guard(s Session, roles ...users.Role) Decision {
	if !s.Authenticated {
		return Decision{Redirect: notify.RouteLogin}
	}
	if len(roles) == 0 || s.HasRole(roles...) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: notify.RouteAccessDenied}
}
