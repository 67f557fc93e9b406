package app

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"quizapp/internal/domain"
)

// UserStore is the in-memory account and token registry of the development
// backend. Passwords are held in plain text on purpose: this store never backs
// a real deployment.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]userRecord // by email
	tokens map[string]string     // token -> email
}

type userRecord struct {
	name     string
	password string
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]userRecord),
		tokens: make(map[string]string),
	}
}

// Register creates an account. Email is the unique key.
func (s *UserStore) Register(name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return domain.ErrEmailTaken
	}
	s.users[email] = userRecord{name: name, password: password}
	return nil
}

// Login verifies the credentials and issues a fresh bearer token.
func (s *UserStore) Login(email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.users[email]
	if !ok || record.password != password {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.tokens[token] = email
	return token, domain.User{Name: record.name, Email: email}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserStore) Authenticate(token string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.tokens[token]
	if !ok {
		return domain.User{}, false
	}
	record := s.users[email]
	return domain.User{Name: record.name, Email: email}, true
}

// Revoke drops a token (logout).
func (s *UserStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
