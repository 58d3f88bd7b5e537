package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// sessionMap is the storage behind a SessionStore.
type sessionMap interface {
	Add(id, username string)
	Get(id string) (string, bool)
	Remove(id string) bool
	Len() int
}

// SessionStore maps opaque session identifiers to usernames. Sessions never
// expire; with a positive capacity the least recently used one is evicted
// once the store is full.
type SessionStore struct {
	sessions sessionMap
}

// NewSessionStore returns an unbounded store for capacity 0 and an LRU of
// that size otherwise.
func NewSessionStore(capacity int) (*SessionStore, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("invalid session capacity: %d", capacity)
	}
	if capacity == 0 {
		return &SessionStore{sessions: &mapSessions{inner: make(map[string]string)}}, nil
	}

	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("could not create session cache: %w", err)
	}
	return &SessionStore{sessions: &lruSessions{cache: cache}}, nil
}

// Create starts a session for username and returns its identifier.
func (s *SessionStore) Create(username string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("could not generate session id: %w", err)
	}
	s.sessions.Add(id.String(), username)
	return id.String(), nil
}

func (s *SessionStore) Get(id string) (string, error) {
	if id == "" {
		return "", ErrSessionNotFound
	}
	username, ok := s.sessions.Get(id)
	if !ok {
		return "", ErrSessionNotFound
	}
	return username, nil
}

// Delete removes the session if present and reports whether it existed.
func (s *SessionStore) Delete(id string) bool {
	return s.sessions.Remove(id)
}

func (s *SessionStore) Len() int {
	return s.sessions.Len()
}

type mapSessions struct {
	sync.RWMutex
	inner map[string]string
}

func (m *mapSessions) Add(id, username string) {
	m.Lock()
	m.inner[id] = username
	m.Unlock()
}

func (m *mapSessions) Get(id string) (string, bool) {
	m.RLock()
	username, ok := m.inner[id]
	m.RUnlock()
	return username, ok
}

func (m *mapSessions) Remove(id string) bool {
	m.Lock()
	defer m.Unlock()
	_, ok := m.inner[id]
	delete(m.inner, id)
	return ok
}

func (m *mapSessions) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.inner)
}

type lruSessions struct {
	cache *lru.Cache
}

func (l *lruSessions) Add(id, username string) {
	l.cache.Add(id, username)
}

func (l *lruSessions) Get(id string) (string, bool) {
	val, ok := l.cache.Get(id)
	if !ok {
		return "", false
	}
	return val.(string), true
}

func (l *lruSessions) Remove(id string) bool {
	return l.cache.Remove(id)
}

func (l *lruSessions) Len() int {
	return l.cache.Len()
}
