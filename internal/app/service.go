// Package app contains the development backend's use cases: game sessions over
// a question bank, rooms, hints, scoring, and the admin operations.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizapp/internal/domain"
)

const (
	pointsPerTier = 100
	// Rounds played in the alternative mode before the game ends.
	alternativeRounds = 10
)

// GameService implements the backend semantics the client consumes.
type GameService struct {
	questions QuestionRepository
	sessions  SessionStore
	rooms     RoomStore
	boards    *BoardRegistry

	cfgMu  sync.RWMutex
	config domain.GameConfig

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameService(questions QuestionRepository, sessions SessionStore, rooms RoomStore) *GameService {
	return &GameService{
		questions: questions,
		sessions:  sessions,
		rooms:     rooms,
		boards:    NewBoardRegistry(),
		config: domain.GameConfig{
			Mode: domain.ModeClassic,
		},
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Boards exposes the per-room scoreboards for the websocket feed.
func (s *GameService) Boards() *BoardRegistry { return s.boards }

// Config returns the current global game configuration.
func (s *GameService) Config(ctx context.Context) (domain.GameConfig, error) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.config, nil
}

// SaveConfig replaces the global game configuration.
func (s *GameService) SaveConfig(ctx context.Context, cfg domain.GameConfig) (domain.GameConfig, error) {
	if cfg.Mode == "" {
		cfg.Mode = domain.ModeClassic
	}
	s.cfgMu.Lock()
	s.config = cfg
	s.cfgMu.Unlock()
	return cfg, nil
}

// CreateRoom opens a room for the given configuration; a zero config falls
// back to the saved global one.
func (s *GameService) CreateRoom(ctx context.Context, cfg domain.GameConfig) (domain.Room, error) {
	if cfg.Mode == "" {
		saved, _ := s.Config(ctx)
		cfg = saved
	}
	return s.rooms.Create(ctx, cfg)
}

// ResetHistory clears every player's asked-question history.
func (s *GameService) ResetHistory(ctx context.Context) error {
	return s.sessions.ResetHistory(ctx)
}

// Themes lists the distinct topics present in the question bank.
func (s *GameService) Themes(ctx context.Context) ([]string, error) {
	records, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	themes := make([]string, 0)
	for _, record := range records {
		if _, ok := seen[record.Topic]; ok {
			continue
		}
		seen[record.Topic] = struct{}{}
		themes = append(themes, record.Topic)
	}
	sort.Strings(themes)
	return themes, nil
}

// StartGame exchanges a PIN and nickname for a new session plus its first
// question.
func (s *GameService) StartGame(ctx context.Context, pin, nickname string) (string, domain.Question, error) {
	nickname = strings.TrimSpace(nickname)
	if pin == "" || nickname == "" {
		return "", domain.Question{}, fmt.Errorf("pin e apelido são obrigatórios")
	}
	room, err := s.rooms.Get(ctx, pin)
	if err != nil {
		return "", domain.Question{}, err
	}

	session := &Session{
		ID:        uuid.NewString(),
		Nickname:  nickname,
		RoomPIN:   room.PIN,
		Config:    room.Config,
		Level:     1,
		Round:     1,
		HintsUsed: make(map[domain.HintKind]bool),
	}
	question, err := s.nextQuestion(ctx, session)
	if err != nil {
		return "", domain.Question{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", domain.Question{}, err
	}
	s.boards.Join(room.PIN, session.ID, nickname)
	return session.ID, question, nil
}

// SubmitAnswer scores one answer and advances or ends the session. The
// returned score is authoritative.
func (s *GameService) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (domain.AnswerResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if session.Over {
		return domain.AnswerResult{}, domain.ErrGameOver
	}
	if questionID != session.CurrentQuestionID {
		return domain.AnswerResult{}, domain.ErrStaleQuestion
	}

	record, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	correct := answer == record.CorrectAnswer
	if correct {
		session.Score += pointsPerTier * session.Level
	}

	result := domain.AnswerResult{
		Correct: correct,
		Score:   session.Score,
	}
	switch {
	case correct:
		result.Feedback = "Correto!"
	default:
		result.Feedback = fmt.Sprintf("Incorreto! A resposta certa era: %s", record.CorrectAnswer)
	}

	s.advance(session, correct)

	if !session.Over {
		next, err := s.nextQuestion(ctx, session)
		switch err {
		case nil:
			result.NextQuestion = &next
		case domain.ErrNoQuestions:
			session.Over = true
		default:
			return domain.AnswerResult{}, err
		}
	}

	if session.Over {
		result.GameOver = true
		result.NextQuestion = nil
		if correct {
			result.Feedback = fmt.Sprintf("Parabéns, %s! Fim de jogo", session.Nickname)
		} else {
			result.Feedback = "Fim de jogo"
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.AnswerResult{}, err
	}
	s.boards.SetScore(session.RoomPIN, session.ID, session.Score)
	return result, nil
}

// advance moves the session's ladder position after a scored answer.
// Classic mode climbs one tier per correct answer and ends on a wrong one or
// past the top tier; alternative mode runs a fixed number of rounds and a
// wrong answer is not terminal.
func (s *GameService) advance(session *Session, correct bool) {
	session.Round++
	switch session.Config.Mode {
	case domain.ModeAlternative:
		if session.Round > alternativeRounds {
			session.Over = true
			return
		}
		session.Level = s.randomLevel()
	default:
		if !correct {
			session.Over = true
			return
		}
		session.Level++
		if session.Level > len(domain.Tiers) {
			session.Over = true
		}
	}
}

// nextQuestion draws a question for the session's current tier, honoring the
// room's topic filter and repeat policy, and marks it as the current one.
func (s *GameService) nextQuestion(ctx context.Context, session *Session) (domain.Question, error) {
	records, err := s.questions.List(ctx)
	if err != nil {
		return domain.Question{}, err
	}

	tier := domain.TierForLevel(session.Level)
	candidates := s.filter(records, session, &tier)
	if len(candidates) == 0 {
		// No question left on the exact tier; any eligible one keeps the game going.
		candidates = s.filter(records, session, nil)
	}
	if len(candidates) == 0 {
		return domain.Question{}, domain.ErrNoQuestions
	}

	record := candidates[s.intn(len(candidates))]
	session.CurrentQuestionID = record.ID
	if !session.asked(record.ID) {
		session.AskedIDs = append(session.AskedIDs, record.ID)
	}
	return s.playable(record, session.Level), nil
}

func (s *GameService) filter(records []domain.QuestionRecord, session *Session, tier *domain.Difficulty) []domain.QuestionRecord {
	var out []domain.QuestionRecord
	for _, record := range records {
		if tier != nil && record.Difficulty != *tier {
			continue
		}
		if !topicActive(session.Config.ActiveTopics, record.Topic) {
			continue
		}
		if !session.Config.AllowRepeat && session.asked(record.ID) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func topicActive(active []string, topic string) bool {
	if len(active) == 0 {
		return true
	}
	for _, t := range active {
		if t == topic {
			return true
		}
	}
	return false
}

// playable strips the answer key and shuffles the options.
func (s *GameService) playable(record domain.QuestionRecord, level int) domain.Question {
	options := append([]string{record.CorrectAnswer}, record.IncorrectAnswers...)
	s.shuffle(options)
	return domain.Question{
		ID:         record.ID,
		Topic:      record.Topic,
		Difficulty: record.Difficulty,
		Prompt:     record.Prompt,
		Options:    options,
		Level:      level,
	}
}

func (s *GameService) shuffle(options []string) {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

func (s *GameService) intn(n int) int {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.Intn(n)
}

func (s *GameService) randomLevel() int {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return 1 + s.rnd.Intn(len(domain.Tiers))
}
