package auth

import (
	"sync"
)

// TokenStore holds the session of one client. It is safe for concurrent use.
type TokenStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns a copy of the stored session, or nil.
func (s *TokenStore) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.Clone()
}

// Set stores a copy of session.
func (s *TokenStore) Set(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session.Clone()
}
