package game

import (
	"context"
	"errors"

	"quizapp/internal/domain"
)

var (
	// ErrMissingFields is the local validation failure for an empty PIN or nickname.
	ErrMissingFields = errors.New("preencha todos os campos")
	// ErrNoSession means the flow was entered without a session handle; the
	// caller must return control to the entry point.
	ErrNoSession = errors.New("sessão de jogo ausente")
	// ErrNotAnswering rejects a selection outside the Answering phase, which
	// makes a second click on an already answered question a no-op.
	ErrNotAnswering = errors.New("não é possível responder agora")
	// ErrBusy rejects an action while another request is in flight.
	ErrBusy = errors.New("aguarde a requisição em andamento")
	// ErrOptionSuppressed rejects answers on options eliminated by a hint.
	ErrOptionSuppressed = errors.New("alternativa eliminada")
	// ErrUnknownOption rejects answers that are not among the question's options.
	ErrUnknownOption = errors.New("alternativa desconhecida")
	// ErrHintUnavailable rejects hint requests after an answer was selected.
	ErrHintUnavailable = errors.New("ajuda indisponível após responder")
	// ErrEliminateUsed is the local once-per-question guard for eliminate hints.
	ErrEliminateUsed = errors.New("ajuda de eliminar já usada nesta questão")
	// ErrClosed is returned by operations on a torn-down controller.
	ErrClosed = errors.New("jogo encerrado")
)

// Phase is the controller's coarse state. Bootstrapping is not a phase: a
// missing session is rejected by New before a controller exists.
type Phase int

const (
	// PhaseAnswering: a question is shown, nothing selected, hints allowed.
	PhaseAnswering Phase = iota + 1
	// PhaseRevealing: the selection is locked and feedback is on screen,
	// waiting for the delayed transition.
	PhaseRevealing
	// PhaseEnded is terminal: final score and feedback only.
	PhaseEnded
)

// Feedback pairs the backend's correctness flag with its message.
type Feedback struct {
	Correct bool
	Message string
}

// Seed is the opaque transfer object handed from the lobby to the controller.
type Seed struct {
	SessionID string
	Question  domain.Question
	Nickname  string
}

// Backend is the slice of the gateway the controller drives.
type Backend interface {
	SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (domain.AnswerResult, error)
	RequestHint(ctx context.Context, sessionID string, kind domain.HintKind, questionID string) (domain.HintEffect, error)
}

// View is an immutable snapshot for rendering. Fields only carry data valid in
// the current phase: Selected and Feedback are zero outside Revealing/Ended.
type View struct {
	Phase           Phase
	Nickname        string
	Question        domain.Question
	Score           int
	Level           int
	Selected        string
	Feedback        *Feedback
	Suppressed      []string
	AudienceMessage string
	AssistMessage   string
}

// IsSuppressed reports whether an option is hidden by an active eliminate hint.
// Suppressed options are not selectable.
func (v View) IsSuppressed(option string) bool {
	for _, s := range v.Suppressed {
		if s == option {
			return true
		}
	}
	return false
}
