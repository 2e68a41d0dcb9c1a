package domain

// State is a node of the session state machine.
//
//	Restoring -> Anonymous | Authenticated
//	Anonymous -> Authenticated  (login)
//	Authenticated -> Anonymous  (logout, forced invalidation)
type State int

const (
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the current authentication state.
type Session struct {
	Token   string
	User    *User
	Loading bool
	State   State
}

// Authenticated reports whether both token and user are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// AuthResult is the tagged outcome of Login and Register.
type AuthResult struct {
	Success bool
	User    *User
	// Error is the human-readable failure reason.
	Error string
	// Err is the classified cause, usable with errors.Is.
	Err error
}

// Succeeded builds a success result.
func Succeeded(user *User) AuthResult {
	return AuthResult{Success: true, User: user}
}

// Failed builds a failure result carrying msg and the classified cause.
func Failed(err error, msg string) AuthResult {
	return AuthResult{Error: msg, Err: err}
}
