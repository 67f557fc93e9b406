package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizapp/internal/domain"
)

// QuestionLoader loads the question bank from Postgres JSONB rows.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.QuestionRecord, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var records []domain.QuestionRecord
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var record domain.QuestionRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("unmarshal question %s: %w", id, err)
		}
		record.ID = id
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return records, nil
}
