package user

import (
	"context"
	"sync"
	"time"

	"session-server/internal/auth/models"
	"session-server/pkg/sentinel"
)

// MemoryStore keeps users in a slice behind a lock. It enforces the same
// uniqueness constraints as the schema so conflict paths are exercisable in
// tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  []models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) FindByAny(_ context.Context, username, email, phone string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []models.User
	for _, u := range s.users {
		if u.Username == username || u.Email == email || u.Phone == phone {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email || existing.Phone == u.Phone {
			return nil, sentinel.ErrConflict
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()
	s.users = append(s.users, u)
	created := u
	return &created, nil
}

// Delete removes a user by id; tests use it to simulate out-of-band deletes.
func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
