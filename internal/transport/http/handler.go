// Package http exposes the development backend over the REST surface the
// client consumes, plus a websocket scoreboard feed for the dashboard.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"quizapp/internal/app"
	"quizapp/internal/domain"
)

// Handler serves the REST API of the development backend.
type Handler struct {
	service *app.GameService
	users   *app.UserStore
}

func NewHandler(service *app.GameService, users *app.UserStore) *Handler {
	return &Handler{service: service, users: users}
}

// Register wires every route onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/register", h.register)

	mux.HandleFunc("GET /api/questions", h.authed(h.listQuestions))
	mux.HandleFunc("POST /api/questions", h.authed(h.createQuestion))
	mux.HandleFunc("PUT /api/questions/{id}", h.authed(h.updateQuestion))
	mux.HandleFunc("DELETE /api/questions/{id}", h.authed(h.deleteQuestion))
	mux.HandleFunc("POST /api/questions/import", h.authed(h.importQuestions))
	mux.HandleFunc("GET /api/themes", h.authed(h.themes))
	mux.HandleFunc("GET /api/config", h.authed(h.getConfig))
	mux.HandleFunc("POST /api/config", h.authed(h.saveConfig))
	mux.HandleFunc("POST /api/admin/reset", h.authed(h.resetHistory))
	mux.HandleFunc("POST /api/rooms", h.authed(h.createRoom))

	mux.HandleFunc("POST /api/game/start", h.startGame)
	mux.HandleFunc("POST /api/game/answer", h.submitAnswer)
	mux.HandleFunc("POST /api/game/help", h.requestHint)
}

// authed guards teacher-dashboard routes with a bearer token check.
func (h *Handler) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "não autorizado")
			return
		}
		if _, ok := h.users.Authenticate(token); !ok {
			writeError(w, http.StatusUnauthorized, "não autorizado")
			return
		}
		next(w, r)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	token, user, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.users.Register(req.Name, req.Email, req.Password); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "cadastro realizado com sucesso"})
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Questions().List(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var record domain.QuestionRecord
	if !decode(w, r, &record) {
		return
	}
	created, err := h.service.Questions().Create(r.Context(), record)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var record domain.QuestionRecord
	if !decode(w, r, &record) {
		return
	}
	updated, err := h.service.Questions().Update(r.Context(), r.PathValue("id"), record)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Questions().Delete(r.Context(), r.PathValue("id")); err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	count, err := h.service.Import(r.Context(), req.Text)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d questões importadas com sucesso", count),
	})
}

func (h *Handler) themes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.service.Themes(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Config(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) saveConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.GameConfig
	if !decode(w, r, &cfg) {
		return
	}
	saved, err := h.service.SaveConfig(r.Context(), cfg)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) resetHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetHistory(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "histórico resetado"})
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Config domain.GameConfig `json:"config"`
	}
	if !decode(w, r, &req) {
		return
	}
	room, err := h.service.CreateRoom(r.Context(), req.Config)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"pin": room.PIN})
}

func (h *Handler) startGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN      string `json:"pin"`
		Nickname string `json:"nickname"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.PIN == "" || strings.TrimSpace(req.Nickname) == "" {
		writeError(w, http.StatusBadRequest, "pin e apelido são obrigatórios")
		return
	}
	sessionID, question, err := h.service.StartGame(r.Context(), req.PIN, req.Nickname)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionStr": sessionID,
		"question":   question,
	})
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID  string `json:"sessionId"`
		QuestionID string `json:"questionId"`
		Answer     string `json:"answer"`
	}
	if !decode(w, r, &req) {
		return
	}
	result, err := h.service.SubmitAnswer(r.Context(), req.SessionID, req.QuestionID, req.Answer)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) requestHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID  string          `json:"sessionId"`
		Type       domain.HintKind `json:"type"`
		QuestionID string          `json:"questionId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "tipo de ajuda desconhecido")
		return
	}
	effect, err := h.service.RequestHint(r.Context(), req.SessionID, req.Type, req.QuestionID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, effect)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the {message} error shape the client's gateway expects.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeFailure(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrHintUsed),
		errors.Is(err, domain.ErrStaleQuestion),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrNoQuestions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
