package memory

import (
	"context"
	"sync"

	"quizapp/internal/app"
	"quizapp/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore. Sessions
// are copied on the way in and out so callers never share mutable state with
// the store, matching the serialization semantics of the redis variant.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]app.Session)}
}

func (s *SessionStore) Save(_ context.Context, session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(*session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*app.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := copySession(session)
	return &copied, nil
}

func (s *SessionStore) ResetHistory(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		session.AskedIDs = nil
		s.sessions[id] = session
	}
	return nil
}

func copySession(session app.Session) app.Session {
	session.AskedIDs = append([]string(nil), session.AskedIDs...)
	hints := make(map[domain.HintKind]bool, len(session.HintsUsed))
	for kind, used := range session.HintsUsed {
		hints[kind] = used
	}
	session.HintsUsed = hints
	return session
}
