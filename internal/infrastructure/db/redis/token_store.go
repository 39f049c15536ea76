package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reyvanevan/saas-admin-gateway/internal/core/domain"
)

// Slot names for the two opaque credential tokens of a session.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// TokenStore keeps the per-session token slots in Redis. Slots expire with
// the refresh credential's lifetime; a vanished slot reads back as empty.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore wraps the given client. ttl <= 0 means slots never expire.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func slotKey(slot, sessionID string) string {
	return fmt.Sprintf("%s:%s", slot, sessionID)
}

// Save writes both slots atomically.
func (s *TokenStore) Save(ctx context.Context, sessionID string, pair domain.TokenPair) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, slotKey(accessTokenKey, sessionID), pair.AccessToken, s.ttl)
	pipe.Set(ctx, slotKey(refreshTokenKey, sessionID), pair.RefreshToken, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// Load reads both slots. Absent slots read as empty strings, not errors.
func (s *TokenStore) Load(ctx context.Context, sessionID string) (domain.TokenPair, error) {
	var pair domain.TokenPair

	access, err := s.client.Get(ctx, slotKey(accessTokenKey, sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.TokenPair{}, fmt.Errorf("load access token: %w", err)
	}
	refresh, err := s.client.Get(ctx, slotKey(refreshTokenKey, sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.TokenPair{}, fmt.Errorf("load refresh token: %w", err)
	}

	pair.AccessToken = access
	pair.RefreshToken = refresh
	return pair, nil
}

// Clear removes both slots.
func (s *TokenStore) Clear(ctx context.Context, sessionID string) error {
	keys := []string{
		slotKey(accessTokenKey, sessionID),
		slotKey(refreshTokenKey, sessionID),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
