package session

import (
	"context"
	"sync"
	"time"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

// MemoryStore keeps session records in a map with per-record expiry. It
// mirrors RedisStore semantics closely enough to back the service in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryRecord
}

type memoryRecord struct {
	data      models.SessionData
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.SessionData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[key]
	if !ok || s.now().After(rec.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	data := rec.data
	return &data, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, data models.SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = memoryRecord{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Len reports the number of live records; used by tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rec := range s.sessions {
		if !s.now().After(rec.expiresAt) {
			n++
		}
	}
	return n
}
