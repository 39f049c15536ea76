package ports

import (
	"context"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// SessionRepository persists the durable subset of a session's state under
// the auth-storage key, namespaced per session ID. Load of an absent record
// returns the zero PersistedSession with no error.
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (domain.PersistedSession, error)
	Save(ctx context.Context, sessionID string, rec domain.PersistedSession) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenStore holds the two opaque credential slots for a session. Written
// only by successful login/refresh, cleared only by logout. Load of absent
// slots returns an empty pair with no error.
type TokenStore interface {
	Save(ctx context.Context, sessionID string, pair domain.TokenPair) error
	Load(ctx context.Context, sessionID string) (domain.TokenPair, error)
	Clear(ctx context.Context, sessionID string) error
}
