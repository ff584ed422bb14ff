// Package memory holds process-lifetime stores. Nothing is persisted; a
// restart forgets every user and session.
package memory

import (
	"context"
	"sync"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

type CredentialStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{users: make(map[string]domain.User)}
}

// Create stores user unless the username is already taken.
func (s *CredentialStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *CredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
