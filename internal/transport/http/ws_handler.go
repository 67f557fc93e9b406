package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizapp/internal/app"
)

// WSHandler streams live room scoreboards to dashboard watchers.
type WSHandler struct {
	boards   *app.BoardRegistry
	upgrader websocket.Upgrader
}

func NewWSHandler(boards *app.BoardRegistry) *WSHandler {
	return &WSHandler{
		boards: boards,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Register wires the scoreboard route onto mux.
func (h *WSHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/rooms/{pin}/ws", h.ServeWS)
}

type outboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServeWS upgrades the request and pushes scoreboard snapshots until the
// watcher disconnects. The feed is read-only; inbound messages are drained and
// ignored.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	if pin == "" {
		http.Error(w, "missing room pin", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.boards.Get(pin).Subscribe()
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for update := range updates {
			payload, err := json.Marshal(update)
			if err != nil {
				log.Printf("ws marshal error: %v", err)
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "scoreboard", Payload: payload}); err != nil {
				return
			}
		}
	}()

	// Block on the read side to notice the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	<-writerDone
}
