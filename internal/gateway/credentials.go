package gateway

import (
	"sync"

	"quizapp/internal/domain"
)

// CredentialStore holds the opaque bearer credential and the logged-in user's
// display info. It is written on login, read by every authenticated call, and
// cleared by logout or a 401.
type CredentialStore interface {
	Token() (string, bool)
	SetCredentials(token string, user domain.User)
	User() (domain.User, bool)
	Clear()
}

// MemoryStore is the in-process CredentialStore implementation.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetCredentials(token string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *MemoryStore) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = domain.User{}
}
