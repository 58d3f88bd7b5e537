package store

import (
	"context"
	"sync"

	"Hello-Servers/internals/models"
)

type MemoryUserStore struct {
	sync.RWMutex
	inner map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		inner: make(map[string]models.User),
	}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.Lock()
	s.inner[user.Username] = *user
	s.Unlock()
	return nil
}

func (s *MemoryUserStore) GetUser(_ context.Context, username string) (*models.User, error) {
	s.RLock()
	user, ok := s.inner[username]
	s.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
