package domain

// Session is the current identity held by the running application.
// Invariant: Token is set iff User is set — there are no partial sessions.
// Exactly one Session exists process-wide, owned by the session manager.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether the session holds a complete identity.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// SessionState is an immutable snapshot of the session manager's state as
// consumed by route guards. Loading is true during the initial storage load
// and while a login or registration call is in flight.
type SessionState struct {
	User    *User
	Token   string
	Loading bool
}
