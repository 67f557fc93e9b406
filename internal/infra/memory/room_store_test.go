package memory

import (
	"context"
	"testing"

	"quizapp/internal/domain"
)

func TestRoomStoreCreateAssignsSixDigitPin(t *testing.T) {
	ctx := context.Background()
	store := NewRoomStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := store.Create(ctx, domain.GameConfig{Mode: domain.ModeClassic})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if len(room.PIN) != 6 {
			t.Fatalf("expected 6-digit pin, got %q", room.PIN)
		}
		if seen[room.PIN] {
			t.Fatalf("duplicate pin %s", room.PIN)
		}
		seen[room.PIN] = true

		got, err := store.Get(ctx, room.PIN)
		if err != nil || got.Config.Mode != domain.ModeClassic {
			t.Fatalf("room not retrievable: %+v err=%v", got, err)
		}
	}
}

func TestRoomStoreMiss(t *testing.T) {
	store := NewRoomStore()
	if _, err := store.Get(context.Background(), "000000"); err != domain.ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
