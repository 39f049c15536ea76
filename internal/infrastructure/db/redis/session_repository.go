package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// authStorageKey is the durable record name for a session's persisted
// identity, namespaced per session ID since this process hosts many browsers.
// The value is exactly {"user":…,"isAuthenticated":…}.
const authStorageKey = "auth-storage"

// SessionRepository stores the persisted session subset in Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository wraps the given client. ttl <= 0 means records never
// expire.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", authStorageKey, sessionID)
}

// Load reads the persisted record. An absent key is a valid empty session,
// not an error.
func (r *SessionRepository) Load(ctx context.Context, sessionID string) (domain.PersistedSession, error) {
	raw, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PersistedSession{}, nil
	}
	if err != nil {
		return domain.PersistedSession{}, fmt.Errorf("load session: %w", err)
	}

	var rec domain.PersistedSession
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.PersistedSession{}, fmt.Errorf("decode session: %w", err)
	}
	return rec, nil
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, rec domain.PersistedSession) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
