package apps

import (
	"context"
	"sync"

	"session-server/pkg/sentinel"
)

// MemoryStore keeps app records in memory for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	apps   []App
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(_ context.Context) ([]App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]App, len(s.apps))
	copy(out, s.apps)
	return out, nil
}

func (s *MemoryStore) FindByName(_ context.Context, name string) (*App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.apps {
		if a.Name == name {
			a := a
			return &a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.apps {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, app App) (*App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app.ID = s.nextID
	s.nextID++
	s.apps = append(s.apps, app)
	created := app
	return &created, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.apps {
		if a.ID == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			return nil
		}
	}
	return nil
}
