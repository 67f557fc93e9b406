package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session handle is unknown.
	ErrSessionNotFound = errors.New("sessão não encontrada")
	// ErrRoomNotFound is returned when no room matches the given PIN.
	ErrRoomNotFound = errors.New("sala não encontrada")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("questão não encontrada")
	// ErrStaleQuestion indicates an answer or hint referenced a question that is
	// no longer the session's current one.
	ErrStaleQuestion = errors.New("questão não é a atual da sessão")
	// ErrHintUsed is returned when a hint kind was already spent in the session.
	ErrHintUsed = errors.New("ajuda já utilizada")
	// ErrGameOver indicates the session already reached its terminal state.
	ErrGameOver = errors.New("o jogo já terminou")
	// ErrNoQuestions indicates no question matches the room configuration.
	ErrNoQuestions = errors.New("nenhuma questão disponível para a configuração")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email já cadastrado")
)
