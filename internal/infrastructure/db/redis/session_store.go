package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goodsru/user-panel/internal/core/domain"
)

// SessionStore keeps session records in Redis with a per-record TTL.
// Key format: session:<session_id> → user id
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records a session. The record expires after ttl; the expiry is the
// session's hard lifetime, there is no sliding renewal.
func (s *SessionStore) Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Lookup resolves a session ID to its user. Missing or expired records
// return domain.ErrSessionNotFound.
func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (int64, error) {
	userID, err := s.client.Get(ctx, s.key(sessionID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrSessionNotFound
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	return userID, nil
}

// Delete revokes a session immediately.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
