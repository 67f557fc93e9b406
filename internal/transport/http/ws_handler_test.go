package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quizapp/internal/app"
)

func TestScoreboardFeed(t *testing.T) {
	boards := app.NewBoardRegistry()
	boards.Join("123456", "s1", "Ana")

	mux := http.NewServeMux()
	NewWSHandler(boards).Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/api/rooms/123456/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The feed opens with the current standings.
	snapshot := readScoreboard(conn, t)
	if snapshot.RoomPIN != "123456" || len(snapshot.Entries) != 1 {
		t.Fatalf("unexpected initial snapshot: %+v", snapshot)
	}

	boards.SetScore("123456", "s1", 300)
	snapshot = readScoreboard(conn, t)
	if snapshot.Entries[0].Score != 300 {
		t.Fatalf("expected score update, got %+v", snapshot.Entries)
	}

	boards.Join("123456", "s2", "Bia")
	snapshot = readScoreboard(conn, t)
	if len(snapshot.Entries) != 2 || snapshot.Entries[0].Nickname != "Ana" {
		t.Fatalf("expected Ana leading two players, got %+v", snapshot.Entries)
	}
}

func readScoreboard(conn *websocket.Conn, t *testing.T) app.Scoreboard {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload app.Scoreboard `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "scoreboard" {
		t.Fatalf("expected scoreboard message, got %s", msg.Type)
	}
	return msg.Payload
}
