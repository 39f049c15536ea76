package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/ports"
)

// Manager creates, rehydrates, and disposes Session instances. One Session
// exists per session ID for the lifetime of the process (or until Dispose);
// repeated lookups return the same instance so concurrent requests from one
// browser share one state machine.
type Manager struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	store   ports.SessionRepository
	audit   ports.AuditTrail
	log     zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager wires a session Manager. audit may be nil; auditing is then
// disabled.
func NewManager(
	gateway ports.AuthGateway,
	tokens ports.TokenStore,
	store ports.SessionRepository,
	audit ports.AuditTrail,
	log zerolog.Logger,
) *Manager {
	return &Manager{
		gateway:  gateway,
		tokens:   tokens,
		store:    store,
		audit:    audit,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live Session for sessionID, rehydrating it from the
// durable auth-storage record on first contact. The transient flags are
// always reset on load, and IsAuthenticated is re-derived from user presence
// so a corrupt record can never produce an authenticated-but-userless state.
func (m *Manager) Session(ctx context.Context, sessionID string) ports.Session {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	rec, err := m.store.Load(ctx, sessionID)
	if err != nil {
		m.log.Warn().Err(err).Str("session_id", sessionID).Msg("session load failed, starting empty")
		rec = domain.PersistedSession{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[sessionID]; ok {
		return sess
	}

	sess = &Session{
		id:      sessionID,
		gateway: m.gateway,
		tokens:  m.tokens,
		store:   m.store,
		audit:   m.audit,
		log:     m.log,
		state: domain.SessionState{
			User:            rec.User,
			IsAuthenticated: rec.User != nil,
		},
	}
	m.sessions[sessionID] = sess
	return sess
}

// Dispose drops the in-memory Session. Durable state is left intact so the
// session can be rehydrated later; use the session's Logout to end it for
// good.
func (m *Manager) Dispose(_ context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
