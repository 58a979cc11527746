// Package session stores session records in a shared key-value store. The
// store is the single source of truth for active sessions: cookie clients and
// bearer clients resolve against the same records.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

// DefaultKeyPrefix namespaces session keys so other services sharing the same
// Redis instance cannot collide with ours.
const DefaultKeyPrefix = "singleton-server:"

// RedisStore persists session records as JSON under a namespaced key with a
// TTL. Every Save rewrites the payload and refreshes the TTL.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sessionKey string) string {
	return s.prefix + sessionKey
}

// Get returns the record for key, or sentinel.ErrNotFound when no record
// exists (expired records count as absent, Redis drops them on expiry).
func (s *RedisStore) Get(ctx context.Context, key string) (*models.SessionData, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var data models.SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Save writes the record and resets its TTL.
func (s *RedisStore) Save(ctx context.Context, key string, data models.SessionData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Destroy removes the record. Destroying a key that does not exist is not an
// error.
func (s *RedisStore) Destroy(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
