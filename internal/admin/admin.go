// Package admin exposes the teacher dashboard operations as a thin façade over
// the gateway client: question CRUD, bulk import, configuration, history reset,
// and room creation. There is no client-side state machine here.
package admin

import (
	"context"
	"strings"

	"quizapp/internal/domain"
	"quizapp/internal/gateway"
)

// Client is the slice of the gateway the dashboard uses.
type Client interface {
	ListQuestions(ctx context.Context) ([]domain.QuestionRecord, error)
	CreateQuestion(ctx context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error)
	UpdateQuestion(ctx context.Context, id string, record domain.QuestionRecord) (domain.QuestionRecord, error)
	DeleteQuestion(ctx context.Context, id string) error
	ImportQuestions(ctx context.Context, text string) (string, error)
	Themes(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context) (domain.GameConfig, error)
	SaveConfig(ctx context.Context, cfg domain.GameConfig) error
	ResetHistory(ctx context.Context) error
	CreateRoom(ctx context.Context, cfg domain.GameConfig) (string, error)
}

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

func (s *Service) Questions(ctx context.Context) ([]domain.QuestionRecord, error) {
	return s.client.ListQuestions(ctx)
}

// SaveQuestion creates or updates depending on whether the record carries an ID.
func (s *Service) SaveQuestion(ctx context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	if err := validateRecord(record); err != nil {
		return domain.QuestionRecord{}, err
	}
	if record.ID == "" {
		return s.client.CreateQuestion(ctx, record)
	}
	return s.client.UpdateQuestion(ctx, record.ID, record)
}

func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	return s.client.DeleteQuestion(ctx, id)
}

// Import sends a mini-format text block for server-side parsing.
func (s *Service) Import(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &gateway.Error{Kind: gateway.KindLocalValidation, Message: "arquivo de importação vazio"}
	}
	return s.client.ImportQuestions(ctx, text)
}

func (s *Service) Themes(ctx context.Context) ([]string, error) {
	return s.client.Themes(ctx)
}

func (s *Service) Config(ctx context.Context) (domain.GameConfig, error) {
	return s.client.GetConfig(ctx)
}

func (s *Service) SaveConfig(ctx context.Context, cfg domain.GameConfig) error {
	if cfg.Mode != domain.ModeClassic && cfg.Mode != domain.ModeAlternative {
		return &gateway.Error{Kind: gateway.KindLocalValidation, Message: "modo de jogo inválido"}
	}
	return s.client.SaveConfig(ctx, cfg)
}

func (s *Service) ResetHistory(ctx context.Context) error {
	return s.client.ResetHistory(ctx)
}

// CreateRoom opens a room for cfg and returns the join PIN to share.
func (s *Service) CreateRoom(ctx context.Context, cfg domain.GameConfig) (string, error) {
	return s.client.CreateRoom(ctx, cfg)
}

func validateRecord(record domain.QuestionRecord) error {
	switch {
	case strings.TrimSpace(record.Prompt) == "":
		return &gateway.Error{Kind: gateway.KindLocalValidation, Message: "enunciado obrigatório"}
	case strings.TrimSpace(record.CorrectAnswer) == "":
		return &gateway.Error{Kind: gateway.KindLocalValidation, Message: "alternativa correta obrigatória"}
	case len(record.IncorrectAnswers) < 1:
		return &gateway.Error{Kind: gateway.KindLocalValidation, Message: "informe ao menos uma alternativa incorreta"}
	case !record.Difficulty.Valid():
		return &gateway.Error{Kind: gateway.KindLocalValidation, Message: "dificuldade inválida"}
	}
	return nil
}
