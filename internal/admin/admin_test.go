package admin_test

import (
	"context"
	"testing"

	"quizapp/internal/admin"
	"quizapp/internal/domain"
	"quizapp/internal/gateway"
)

func TestSaveQuestionValidatesLocally(t *testing.T) {
	client := &fakeClient{}
	service := admin.NewService(client)

	cases := []domain.QuestionRecord{
		{Difficulty: domain.Easy, CorrectAnswer: "c", IncorrectAnswers: []string{"i"}},              // no prompt
		{Difficulty: domain.Easy, Prompt: "p", IncorrectAnswers: []string{"i"}},                    // no correct
		{Difficulty: domain.Easy, Prompt: "p", CorrectAnswer: "c"},                                 // no incorrect
		{Difficulty: "absurda", Prompt: "p", CorrectAnswer: "c", IncorrectAnswers: []string{"i"}},  // bad tier
	}
	for i, record := range cases {
		_, err := service.SaveQuestion(context.Background(), record)
		if gateway.KindOf(err) != gateway.KindLocalValidation {
			t.Fatalf("case %d: expected local validation error, got %v", i, err)
		}
	}
	if client.createCalls+client.updateCalls != 0 {
		t.Fatal("invalid records must never reach the backend")
	}
}

func TestSaveQuestionRoutesCreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	service := admin.NewService(client)

	valid := domain.QuestionRecord{
		Topic: "Física", Difficulty: domain.Easy,
		Prompt: "p", CorrectAnswer: "c", IncorrectAnswers: []string{"i"},
	}
	if _, err := service.SaveQuestion(ctx, valid); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	valid.ID = "q1"
	if _, err := service.SaveQuestion(ctx, valid); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if client.createCalls != 1 || client.updateCalls != 1 {
		t.Fatalf("expected one create and one update, got %d/%d", client.createCalls, client.updateCalls)
	}
}

func TestImportRejectsEmptyText(t *testing.T) {
	client := &fakeClient{}
	service := admin.NewService(client)

	if _, err := service.Import(context.Background(), "   \n"); gateway.KindOf(err) != gateway.KindLocalValidation {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if client.importCalls != 0 {
		t.Fatal("empty import must never reach the backend")
	}
}

func TestSaveConfigValidatesMode(t *testing.T) {
	client := &fakeClient{}
	service := admin.NewService(client)

	if err := service.SaveConfig(context.Background(), domain.GameConfig{Mode: "turbo"}); gateway.KindOf(err) != gateway.KindLocalValidation {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if err := service.SaveConfig(context.Background(), domain.GameConfig{Mode: domain.ModeAlternative}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

type fakeClient struct {
	createCalls int
	updateCalls int
	importCalls int
}

func (f *fakeClient) ListQuestions(context.Context) ([]domain.QuestionRecord, error) { return nil, nil }

func (f *fakeClient) CreateQuestion(_ context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	f.createCalls++
	record.ID = "novo"
	return record, nil
}

func (f *fakeClient) UpdateQuestion(_ context.Context, id string, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	f.updateCalls++
	return record, nil
}

func (f *fakeClient) DeleteQuestion(context.Context, string) error { return nil }

func (f *fakeClient) ImportQuestions(context.Context, string) (string, error) {
	f.importCalls++
	return "ok", nil
}

func (f *fakeClient) Themes(context.Context) ([]string, error)                 { return nil, nil }
func (f *fakeClient) GetConfig(context.Context) (domain.GameConfig, error)     { return domain.GameConfig{}, nil }
func (f *fakeClient) SaveConfig(context.Context, domain.GameConfig) error      { return nil }
func (f *fakeClient) ResetHistory(context.Context) error                       { return nil }
func (f *fakeClient) CreateRoom(context.Context, domain.GameConfig) (string, error) { return "123456", nil }
