package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"quizapp/internal/domain"
)

// RequestHint produces the effect for one hint kind. Each kind may be used at
// most once per session; repeats are rejected with ErrHintUsed and the client
// surfaces that message verbatim.
func (s *GameService) RequestHint(ctx context.Context, sessionID string, kind domain.HintKind, questionID string) (domain.HintEffect, error) {
	if !kind.Valid() {
		return domain.HintEffect{}, fmt.Errorf("tipo de ajuda desconhecido: %q", kind)
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.HintEffect{}, err
	}
	if session.Over {
		return domain.HintEffect{}, domain.ErrGameOver
	}
	if questionID != session.CurrentQuestionID {
		return domain.HintEffect{}, domain.ErrStaleQuestion
	}
	if session.HintsUsed[kind] {
		return domain.HintEffect{}, domain.ErrHintUsed
	}

	record, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return domain.HintEffect{}, err
	}

	effect := domain.HintEffect{Kind: kind}
	switch kind {
	case domain.HintEliminate:
		effect.Remove = s.eliminationTargets(record)
	case domain.HintAudience:
		effect.Message = s.audienceMessage(record)
	case domain.HintAssist:
		effect.Message = fmt.Sprintf("Analisei a questão e acredito que a resposta seja: %q.", record.CorrectAnswer)
	}

	if session.HintsUsed == nil {
		session.HintsUsed = make(map[domain.HintKind]bool)
	}
	session.HintsUsed[kind] = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.HintEffect{}, err
	}
	return effect, nil
}

// eliminationTargets picks two incorrect options to suppress, always leaving
// the correct answer plus at least one distractor on screen.
func (s *GameService) eliminationTargets(record domain.QuestionRecord) []string {
	incorrect := append([]string(nil), record.IncorrectAnswers...)
	s.shuffle(incorrect)
	remove := 2
	if len(incorrect) <= remove {
		remove = len(incorrect) - 1
	}
	if remove < 1 {
		return nil
	}
	return incorrect[:remove]
}

// audienceMessage fabricates a vote distribution weighted toward the correct
// answer.
func (s *GameService) audienceMessage(record domain.QuestionRecord) string {
	type vote struct {
		option string
		pct    int
	}
	votes := []vote{{option: record.CorrectAnswer, pct: 40 + s.intn(31)}}
	remaining := 100 - votes[0].pct
	for i, option := range record.IncorrectAnswers {
		pct := 0
		if left := len(record.IncorrectAnswers) - i; left > 0 {
			pct = remaining / left
		}
		remaining -= pct
		votes = append(votes, vote{option: option, pct: pct})
	}
	votes[0].pct += remaining

	sort.Slice(votes, func(i, j int) bool { return votes[i].pct > votes[j].pct })
	parts := make([]string, 0, len(votes))
	for _, v := range votes {
		parts = append(parts, fmt.Sprintf("%d%% %s", v.pct, v.option))
	}
	return "A plateia votou: " + strings.Join(parts, ", ")
}
