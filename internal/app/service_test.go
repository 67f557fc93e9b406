package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quizapp/internal/app"
	"quizapp/internal/domain"
	"quizapp/internal/infra/memory"
)

func TestClassicRunToVictory(t *testing.T) {
	ctx := context.Background()
	service, bank := newTestService(t, tierLadderBank(), domain.GameConfig{Mode: domain.ModeClassic})

	sessionID, question, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if question.Level != 1 || question.Difficulty != domain.VeryEasy {
		t.Fatalf("expected a very easy first question, got %+v", question)
	}

	wantScore := 0
	for level := 1; level <= len(domain.Tiers); level++ {
		record := bank[question.ID]
		result, err := service.SubmitAnswer(ctx, sessionID, question.ID, record.CorrectAnswer)
		if err != nil {
			t.Fatalf("level %d submit failed: %v", level, err)
		}
		wantScore += 100 * level
		if !result.Correct || result.Score != wantScore {
			t.Fatalf("level %d: expected score %d, got %+v", level, wantScore, result)
		}
		if level < len(domain.Tiers) {
			if result.GameOver || result.NextQuestion == nil {
				t.Fatalf("level %d: game ended early: %+v", level, result)
			}
			if result.NextQuestion.Level != level+1 {
				t.Fatalf("level %d: expected next level %d, got %d", level, level+1, result.NextQuestion.Level)
			}
			question = *result.NextQuestion
			continue
		}
		if !result.GameOver || result.NextQuestion != nil {
			t.Fatalf("expected victory after the top tier, got %+v", result)
		}
		if result.Feedback != "Parabéns, Ana! Fim de jogo" {
			t.Fatalf("unexpected victory feedback %q", result.Feedback)
		}
	}
}

func TestClassicWrongAnswerEndsGame(t *testing.T) {
	ctx := context.Background()
	service, bank := newTestService(t, tierLadderBank(), domain.GameConfig{Mode: domain.ModeClassic})

	sessionID, question, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	record := bank[question.ID]
	result, err := service.SubmitAnswer(ctx, sessionID, question.ID, record.IncorrectAnswers[0])
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Correct || !result.GameOver || result.Score != 0 {
		t.Fatalf("expected immediate game over at score 0, got %+v", result)
	}
	if !strings.Contains(result.Feedback, record.CorrectAnswer) && result.Feedback != "Fim de jogo" {
		t.Fatalf("unexpected feedback %q", result.Feedback)
	}

	if _, err := service.SubmitAnswer(ctx, sessionID, question.ID, record.CorrectAnswer); err != domain.ErrGameOver {
		t.Fatalf("expected ErrGameOver after the end, got %v", err)
	}
}

func TestAlternativeModeRunsFixedRounds(t *testing.T) {
	ctx := context.Background()
	service, bank := newTestService(t, tierLadderBank(), domain.GameConfig{
		Mode:        domain.ModeAlternative,
		AllowRepeat: true,
	})

	sessionID, question, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	for round := 1; round <= 10; round++ {
		record := bank[question.ID]
		result, err := service.SubmitAnswer(ctx, sessionID, question.ID, record.IncorrectAnswers[0])
		if err != nil {
			t.Fatalf("round %d submit failed: %v", round, err)
		}
		if round < 10 {
			if result.GameOver {
				t.Fatalf("round %d: a wrong answer must not be terminal in this mode", round)
			}
			question = *result.NextQuestion
			continue
		}
		if !result.GameOver {
			t.Fatalf("expected the game to end after round %d, got %+v", round, result)
		}
	}
}

func TestStaleQuestionRejected(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, tierLadderBank(), domain.GameConfig{Mode: domain.ModeClassic})

	sessionID, _, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, sessionID, "outra-questao", "x"); err != domain.ErrStaleQuestion {
		t.Fatalf("expected ErrStaleQuestion, got %v", err)
	}
}

func TestStartGameValidation(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, tierLadderBank(), domain.GameConfig{Mode: domain.ModeClassic})

	if _, _, err := service.StartGame(ctx, "999999", "Ana"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, _, err := service.StartGame(ctx, "123456", "  "); err == nil {
		t.Fatal("expected error for blank nickname")
	}
	if _, _, err := service.StartGame(ctx, "", "Ana"); err == nil {
		t.Fatal("expected error for empty pin")
	}
}

func TestExhaustedBankEndsGame(t *testing.T) {
	ctx := context.Background()
	bank := []domain.QuestionRecord{{
		ID:               "solo",
		Topic:            "Física",
		Difficulty:       domain.VeryEasy,
		Prompt:           "Única questão",
		CorrectAnswer:    "certa",
		IncorrectAnswers: []string{"errada"},
	}}
	service, _ := newTestService(t, bank, domain.GameConfig{Mode: domain.ModeClassic})

	sessionID, question, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	result, err := service.SubmitAnswer(ctx, sessionID, question.ID, "certa")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.GameOver || result.NextQuestion != nil {
		t.Fatalf("an exhausted bank must end the game, got %+v", result)
	}
}

func TestTopicFilter(t *testing.T) {
	ctx := context.Background()
	bank := append(tierLadderBank(), domain.QuestionRecord{
		ID:               "hist-1",
		Topic:            "História",
		Difficulty:       domain.VeryEasy,
		Prompt:           "Quem proclamou a independência?",
		CorrectAnswer:    "D. Pedro I",
		IncorrectAnswers: []string{"D. João VI"},
	})
	service, _ := newTestService(t, bank, domain.GameConfig{
		Mode:         domain.ModeClassic,
		ActiveTopics: []string{"Física"},
	})

	for i := 0; i < 5; i++ {
		_, question, err := service.StartGame(ctx, "123456", "Ana")
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if question.Topic != "Física" {
			t.Fatalf("inactive topic served: %+v", question)
		}
	}
}

func TestPlayableQuestionHidesAnswerKey(t *testing.T) {
	ctx := context.Background()
	service, bank := newTestService(t, tierLadderBank(), domain.GameConfig{Mode: domain.ModeClassic})

	_, question, err := service.StartGame(ctx, "123456", "Ana")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	record := bank[question.ID]
	if len(question.Options) != 1+len(record.IncorrectAnswers) {
		t.Fatalf("expected all options present, got %v", question.Options)
	}
	found := false
	for _, option := range question.Options {
		if option == record.CorrectAnswer {
			found = true
		}
	}
	if !found {
		t.Fatalf("correct answer missing from options: %v", question.Options)
	}
}

func TestThemesAreDistinctAndSorted(t *testing.T) {
	ctx := context.Background()
	bank := append(tierLadderBank(), domain.QuestionRecord{
		ID: "hist-1", Topic: "História", Difficulty: domain.VeryEasy,
		Prompt: "p", CorrectAnswer: "c", IncorrectAnswers: []string{"i"},
	})
	service, _ := newTestService(t, bank, domain.GameConfig{})

	themes, err := service.Themes(ctx)
	if err != nil {
		t.Fatalf("themes failed: %v", err)
	}
	if len(themes) != 2 || themes[0] != "Física" || themes[1] != "História" {
		t.Fatalf("unexpected themes: %v", themes)
	}
}

func TestSaveConfigDefaultsMode(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, tierLadderBank(), domain.GameConfig{})

	saved, err := service.SaveConfig(ctx, domain.GameConfig{AllowRepeat: true})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.Mode != domain.ModeClassic || !saved.AllowRepeat {
		t.Fatalf("unexpected config: %+v", saved)
	}
	current, _ := service.Config(ctx)
	if current.Mode != domain.ModeClassic || !current.AllowRepeat {
		t.Fatalf("config not persisted: %+v", current)
	}
}

// tierLadderBank builds one Física question per difficulty tier.
func tierLadderBank() []domain.QuestionRecord {
	records := make([]domain.QuestionRecord, 0, len(domain.Tiers))
	for i, tier := range domain.Tiers {
		records = append(records, domain.QuestionRecord{
			ID:               "fis-" + string(rune('a'+i)),
			Topic:            "Física",
			Difficulty:       tier,
			Prompt:           "Questão do nível " + string(tier),
			CorrectAnswer:    "certa-" + string(rune('a'+i)),
			IncorrectAnswers: []string{"errada-1", "errada-2", "errada-3"},
		})
	}
	return records
}

func newTestService(t *testing.T, records []domain.QuestionRecord, cfg domain.GameConfig) (*app.GameService, map[string]domain.QuestionRecord) {
	t.Helper()
	questions := memory.NewQuestionRepository(memory.NewStaticLoader(records), 5*time.Minute)
	rooms := memory.NewRoomStore()
	rooms.Seed("123456", cfg)
	service := app.NewGameService(questions, memory.NewSessionStore(), rooms)

	bank := make(map[string]domain.QuestionRecord, len(records))
	for _, record := range records {
		bank[record.ID] = record
	}
	return service, bank
}
