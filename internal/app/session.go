package app

import (
	"context"

	"quizapp/internal/domain"
)

// Session is one player's in-progress run, addressed by the opaque handle the
// client passes back on every answer and hint call. JSON tags allow stores to
// serialize it wholesale (the redis store does).
type Session struct {
	ID                string                   `json:"id"`
	Nickname          string                   `json:"nickname"`
	RoomPIN           string                   `json:"roomPin"`
	Config            domain.GameConfig        `json:"config"`
	Score             int                      `json:"score"`
	Level             int                      `json:"level"`
	Round             int                      `json:"round"`
	CurrentQuestionID string                   `json:"currentQuestionId"`
	AskedIDs          []string                 `json:"askedIds"`
	HintsUsed         map[domain.HintKind]bool `json:"hintsUsed"`
	Over              bool                     `json:"over"`
}

func (s *Session) asked(id string) bool {
	for _, askedID := range s.AskedIDs {
		if askedID == id {
			return true
		}
	}
	return false
}

// SessionStore abstracts how game sessions are stored (in-memory, Redis).
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// ResetHistory clears every session's asked-question history.
	ResetHistory(ctx context.Context) error
}

// RoomStore creates and resolves joinable rooms by PIN.
type RoomStore interface {
	Create(ctx context.Context, cfg domain.GameConfig) (domain.Room, error)
	Get(ctx context.Context, pin string) (domain.Room, error)
}

// QuestionRepository is the admin-facing question bank.
type QuestionRepository interface {
	List(ctx context.Context) ([]domain.QuestionRecord, error)
	Get(ctx context.Context, id string) (domain.QuestionRecord, error)
	Create(ctx context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error)
	Update(ctx context.Context, id string, record domain.QuestionRecord) (domain.QuestionRecord, error)
	Delete(ctx context.Context, id string) error
}
