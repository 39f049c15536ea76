package domain

// SessionState is the in-memory authentication state of one browser session.
// Invariant: IsAuthenticated == (User != nil) after every completed action.
// IsLoading and Error are transient and never persisted.
type SessionState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

// EmptySessionState is the state of a session with nobody signed in. Logout
// and failed refresh both converge here.
func EmptySessionState() SessionState {
	return SessionState{}
}

// PersistedSession is the durable subset of SessionState written under the
// auth-storage key. Exactly these two fields survive a reload.
type PersistedSession struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// TokenPair holds the opaque credential tokens for a session. Both are
// written only by a successful login or refresh and cleared only by logout.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no tokens are held.
func (p TokenPair) Empty() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}
