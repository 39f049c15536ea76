package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// Session is the authentication state machine for one browser session.
// actionMu is held across each whole action, gateway calls included, so
// concurrent actions never interleave mid-flight: a logout issued while a
// refresh is in the air serializes after it and clears the refreshed tokens,
// so logout always wins. The state mutex only guards snapshots, letting
// State and IsAuthenticated stay responsive while an action is blocked on
// the gateway.
type Session struct {
	id      string
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	store   ports.SessionRepository
	audit   ports.AuditTrail
	log     zerolog.Logger

	actionMu sync.Mutex

	mu    sync.Mutex
	state domain.SessionState
}

func (s *Session) ID() string { return s.id }

// State returns a snapshot of the current session state. The user pointer is
// cloned so callers can never mutate shared state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.User = snap.User.Clone()
	return snap
}

// IsAuthenticated is the route-guard predicate.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

// begin marks an action in flight: loading on, previous error cleared.
func (s *Session) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
}

// fail records an action failure. Prior identity is left untouched.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = err.Error()
	s.mu.Unlock()
}

// end clears the loading flag without touching identity, for actions that
// succeed without producing a new user.
func (s *Session) end() {
	s.mu.Lock()
	s.state.IsLoading = false
	s.mu.Unlock()
}

// SetUser commits an identity directly, outside any other action.
func (s *Session) SetUser(ctx context.Context, user *domain.User) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.setUser(ctx, user)
}

// setUser is the single commit point for identity changes: it atomically sets
// the user, derives IsAuthenticated from its presence, clears the transient
// flags, and writes the durable subset. Persistence failures are logged but
// never roll back the in-memory commit. Callers hold actionMu.
func (s *Session) setUser(ctx context.Context, user *domain.User) {
	user = user.Clone()
	s.mu.Lock()
	s.state = domain.SessionState{
		User:            user,
		IsAuthenticated: user != nil,
	}
	rec := domain.PersistedSession{User: user, IsAuthenticated: user != nil}
	s.mu.Unlock()

	if err := s.store.Save(ctx, s.id, rec); err != nil {
		s.log.Warn().Err(err).Str("session_id", s.id).Msg("session persist failed")
	}
}

// Login exchanges credentials through the gateway, stores the issued tokens,
// and commits the authenticated user.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin()

	user, pair, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		s.record(domain.AuditLoginFailed, "", err.Error())
		return nil, err
	}

	if err := s.tokens.Save(ctx, s.id, pair); err != nil {
		err = fmt.Errorf("store tokens: %w", err)
		s.fail(err)
		return nil, err
	}

	s.setUser(ctx, user)
	s.record(domain.AuditLogin, user.ID, "")
	return user, nil
}

// Register creates an account through the gateway. It does not sign the new
// user in; the session state is untouched on success.
func (s *Session) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin()

	user, err := s.gateway.Register(ctx, in)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.end()
	return user, nil
}

// Logout clears both token slots and resets the session to the empty state.
// Clearing is best-effort: the in-memory state is reset even when the durable
// clear fails, because a logged-out UI with stale server-side tokens is safer
// than a UI that still believes it is signed in. The clear error is still
// recorded and returned.
func (s *Session) Logout(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.logout(ctx)
}

// logout is the Logout body. Callers hold actionMu.
func (s *Session) logout(ctx context.Context) error {
	s.begin()

	clearErr := s.tokens.Clear(ctx, s.id)

	s.mu.Lock()
	var userID string
	if s.state.User != nil {
		userID = s.state.User.ID
	}
	s.state = domain.EmptySessionState()
	s.mu.Unlock()

	if err := s.store.Save(ctx, s.id, domain.PersistedSession{}); err != nil {
		s.log.Warn().Err(err).Str("session_id", s.id).Msg("session persist failed")
	}

	if clearErr != nil {
		s.log.Error().Err(clearErr).Str("session_id", s.id).Msg("token clear failed during logout")
		s.mu.Lock()
		s.state.Error = clearErr.Error()
		s.mu.Unlock()
		return fmt.Errorf("clear tokens: %w", clearErr)
	}

	s.record(domain.AuditLogout, userID, "")
	return nil
}

// RefreshToken exchanges the refresh credential for a new token pair. Any
// failure is fatal to the session: the tokens can no longer be trusted, so
// the session is forced to the logged-out state before the error is returned.
func (s *Session) RefreshToken(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin()

	pair, err := s.tokens.Load(ctx, s.id)
	if err == nil && pair.RefreshToken == "" {
		err = domain.ErrNotAuthenticated
	}
	if err == nil {
		pair, err = s.gateway.Refresh(ctx, pair.RefreshToken)
	}
	if err == nil {
		err = s.tokens.Save(ctx, s.id, pair)
	}
	if err != nil {
		s.record(domain.AuditForcedLogout, "", err.Error())
		if logoutErr := s.logout(ctx); logoutErr != nil {
			s.log.Error().Err(logoutErr).Str("session_id", s.id).Msg("forced logout failed")
		}
		return fmt.Errorf("refresh token: %w", err)
	}

	s.end()
	s.record(domain.AuditRefresh, "", "")
	return nil
}

// CurrentUser fetches the authenticated user through the gateway and commits
// it, replacing any stale identity held in memory.
func (s *Session) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin()

	pair, err := s.tokens.Load(ctx, s.id)
	if err == nil && pair.AccessToken == "" {
		err = domain.ErrNotAuthenticated
	}
	if err != nil {
		s.fail(err)
		return nil, err
	}

	user, err := s.gateway.CurrentUser(ctx, pair.AccessToken)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setUser(ctx, user)
	return user, nil
}

// ChangePassword performs the credential change through the gateway. Session
// identity is unaffected; only the transient flags move.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin()

	pair, err := s.tokens.Load(ctx, s.id)
	if err == nil && pair.AccessToken == "" {
		err = domain.ErrNotAuthenticated
	}
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.gateway.ChangePassword(ctx, pair.AccessToken, currentPassword, newPassword); err != nil {
		s.fail(err)
		return err
	}

	s.end()
	var userID string
	if u := s.State().User; u != nil {
		userID = u.ID
	}
	s.record(domain.AuditPasswordChange, userID, "")
	return nil
}

// ClearError drops the last recorded error.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *Session) record(kind domain.AuditKind, userID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		SessionID: s.id,
		UserID:    userID,
		Kind:      kind,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}
