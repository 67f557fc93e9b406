package memory

import (
	"context"
	"testing"
	"time"

	"quizapp/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{Loader: NewStaticLoader(sampleBank())}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.Get(context.Background(), "fis-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryRefreshesAfterTTL(t *testing.T) {
	loader := &countingLoader{Loader: NewStaticLoader(sampleBank())}
	repo := NewQuestionRepository(loader, time.Minute)

	now := time.Now()
	repo.clock = func() time.Time { return now }

	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("list after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, got %d calls", loader.calls)
	}
}

func TestWritesPinTheCache(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{Loader: NewStaticLoader(sampleBank())}
	repo := NewQuestionRepository(loader, time.Minute)

	now := time.Now()
	repo.clock = func() time.Time { return now }

	created, err := repo.Create(ctx, domain.QuestionRecord{
		Topic: "Física", Difficulty: domain.Easy,
		Prompt: "Nova", CorrectAnswer: "c", IncorrectAnswers: []string{"i"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}

	// An expired TTL must not wipe local edits.
	now = now.Add(2 * time.Minute)
	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != len(sampleBank())+1 {
		t.Fatalf("edit lost on refresh: %d records", len(records))
	}
	if loader.calls != 1 {
		t.Fatalf("dirty cache must not reload, got %d calls", loader.calls)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(NewStaticLoader(sampleBank()), time.Minute)

	updated, err := repo.Update(ctx, "fis-1", domain.QuestionRecord{
		Topic: "Física", Difficulty: domain.Hard,
		Prompt: "Editada", CorrectAnswer: "c", IncorrectAnswers: []string{"i"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != "fis-1" || updated.Prompt != "Editada" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := repo.Update(ctx, "inexistente", domain.QuestionRecord{}); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "fis-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "fis-1"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "fis-1"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound on repeat delete, got %v", err)
	}
}

type countingLoader struct {
	Loader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.QuestionRecord, error) {
	l.calls++
	return l.Loader.LoadQuestions(ctx)
}

func sampleBank() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			ID: "fis-1", Topic: "Física", Difficulty: domain.VeryEasy,
			Prompt:        "Qual é a unidade de força?",
			CorrectAnswer: "Newton", IncorrectAnswers: []string{"Joule", "Watt"},
		},
		{
			ID: "fis-2", Topic: "Física", Difficulty: domain.Easy,
			Prompt:        "Qual grandeza é medida em quilogramas?",
			CorrectAnswer: "Massa", IncorrectAnswers: []string{"Peso"},
		},
	}
}
