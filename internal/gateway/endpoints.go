package gateway

import (
	"context"
	"net/http"
	"net/url"

	"quizapp/internal/domain"
)

// StartResult is the handoff from a successful game start: the opaque session
// handle plus the first question.
type StartResult struct {
	SessionID string          `json:"sessionStr"`
	Question  domain.Question `json:"question"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login authenticates and stores the returned credential on success.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp, false); err != nil {
		return domain.User{}, err
	}
	c.creds.SetCredentials(resp.Token, resp.User)
	return resp.User, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, nil, false)
}

func (c *Client) ListQuestions(ctx context.Context) ([]domain.QuestionRecord, error) {
	var records []domain.QuestionRecord
	if err := c.do(ctx, http.MethodGet, "/questions", nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateQuestion(ctx context.Context, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	var created domain.QuestionRecord
	if err := c.do(ctx, http.MethodPost, "/questions", record, &created, true); err != nil {
		return domain.QuestionRecord{}, err
	}
	return created, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, record domain.QuestionRecord) (domain.QuestionRecord, error) {
	var updated domain.QuestionRecord
	if err := c.do(ctx, http.MethodPut, "/questions/"+url.PathEscape(id), record, &updated, true); err != nil {
		return domain.QuestionRecord{}, err
	}
	return updated, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questions/"+url.PathEscape(id), nil, nil, true)
}

type importRequest struct {
	Text string `json:"text"`
}

type importResponse struct {
	Message string `json:"message"`
}

// ImportQuestions submits a mini-format text block; the parsing happens
// server-side. Returns the backend's summary message.
func (c *Client) ImportQuestions(ctx context.Context, text string) (string, error) {
	var resp importResponse
	if err := c.do(ctx, http.MethodPost, "/questions/import", importRequest{Text: text}, &resp, true); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Themes(ctx context.Context) ([]string, error) {
	var themes []string
	if err := c.do(ctx, http.MethodGet, "/themes", nil, &themes, true); err != nil {
		return nil, err
	}
	return themes, nil
}

func (c *Client) GetConfig(ctx context.Context) (domain.GameConfig, error) {
	var cfg domain.GameConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, &cfg, true); err != nil {
		return domain.GameConfig{}, err
	}
	return cfg, nil
}

func (c *Client) SaveConfig(ctx context.Context, cfg domain.GameConfig) error {
	return c.do(ctx, http.MethodPost, "/config", cfg, nil, true)
}

// ResetHistory clears every player's asked-question history.
func (c *Client) ResetHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/reset", nil, nil, true)
}

type createRoomRequest struct {
	Config domain.GameConfig `json:"config"`
}

type createRoomResponse struct {
	PIN string `json:"pin"`
}

// CreateRoom opens a room for the given configuration and returns its join PIN.
func (c *Client) CreateRoom(ctx context.Context, cfg domain.GameConfig) (string, error) {
	var resp createRoomResponse
	if err := c.do(ctx, http.MethodPost, "/rooms", createRoomRequest{Config: cfg}, &resp, true); err != nil {
		return "", err
	}
	return resp.PIN, nil
}

type startGameRequest struct {
	PIN      string `json:"pin"`
	Nickname string `json:"nickname"`
}

// StartGame exchanges a room PIN and nickname for a session handle plus the
// first question. Anonymous: no credential attached.
func (c *Client) StartGame(ctx context.Context, pin, nickname string) (StartResult, error) {
	var resp StartResult
	if err := c.do(ctx, http.MethodPost, "/game/start", startGameRequest{PIN: pin, Nickname: nickname}, &resp, false); err != nil {
		return StartResult{}, err
	}
	return resp, nil
}

type answerRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

func (c *Client) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (domain.AnswerResult, error) {
	var result domain.AnswerResult
	if err := c.do(ctx, http.MethodPost, "/game/answer", answerRequest{SessionID: sessionID, QuestionID: questionID, Answer: answer}, &result, false); err != nil {
		return domain.AnswerResult{}, err
	}
	return result, nil
}

type hintRequest struct {
	SessionID  string          `json:"sessionId"`
	Type       domain.HintKind `json:"type"`
	QuestionID string          `json:"questionId"`
}

type hintResponse struct {
	Remove  []string `json:"remove"`
	Message string   `json:"message"`
}

// RequestHint asks for one of the three hint kinds and normalizes the
// kind-specific payload into a HintEffect.
func (c *Client) RequestHint(ctx context.Context, sessionID string, kind domain.HintKind, questionID string) (domain.HintEffect, error) {
	if !kind.Valid() {
		return domain.HintEffect{}, validationErr("tipo de ajuda desconhecido")
	}
	var resp hintResponse
	if err := c.do(ctx, http.MethodPost, "/game/help", hintRequest{SessionID: sessionID, Type: kind, QuestionID: questionID}, &resp, false); err != nil {
		return domain.HintEffect{}, err
	}
	return domain.HintEffect{Kind: kind, Remove: resp.Remove, Message: resp.Message}, nil
}
