package session

import (
	"context"
	"sync"

	"github.com/YarKhan02/Workshop-sub000/models"
)

// MemoryStore is a process-local Store without expiry.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	return &user, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = user
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, sessionID)
	return nil
}
