package lobby_test

import (
	"context"
	"testing"

	"quizapp/internal/domain"
	"quizapp/internal/game"
	"quizapp/internal/gateway"
	"quizapp/internal/lobby"
)

func TestPinFieldFiltersDigitsPerKeystroke(t *testing.T) {
	var f lobby.PinField
	for _, key := range []string{"1", "a", "2", " ", "3"} {
		f.Type(key)
	}
	if f.Value() != "123" {
		t.Fatalf("expected 123, got %q", f.Value())
	}

	f.Set("  98-76 xy 54")
	if f.Value() != "987654" {
		t.Fatalf("paste filter failed, got %q", f.Value())
	}
}

func TestStartRejectsEmptyInputsLocally(t *testing.T) {
	starter := &countingStarter{}
	bootstrap := lobby.NewBootstrap(starter)

	cases := []struct{ pin, nickname string }{
		{"", "Ana"},
		{"123456", ""},
		{"123456", "   "},
		{"abc", "Ana"}, // filters down to empty
	}
	for _, tc := range cases {
		if _, err := bootstrap.Start(context.Background(), tc.pin, tc.nickname); err != game.ErrMissingFields {
			t.Fatalf("pin=%q nickname=%q: expected ErrMissingFields, got %v", tc.pin, tc.nickname, err)
		}
	}
	if starter.calls != 0 {
		t.Fatalf("empty inputs must never reach the network, got %d calls", starter.calls)
	}
}

func TestStartProducesSeed(t *testing.T) {
	starter := &countingStarter{
		result: gateway.StartResult{
			SessionID: "sessao-1",
			Question:  domain.Question{ID: "q1", Options: []string{"a", "b"}},
		},
	}
	bootstrap := lobby.NewBootstrap(starter)

	seed, err := bootstrap.Start(context.Background(), " 123456 ", "  Ana ")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if seed.SessionID != "sessao-1" || seed.Question.ID != "q1" || seed.Nickname != "Ana" {
		t.Fatalf("unexpected seed: %+v", seed)
	}
	if starter.lastPIN != "123456" {
		t.Fatalf("pin not normalized, got %q", starter.lastPIN)
	}
}

type countingStarter struct {
	calls   int
	lastPIN string
	result  gateway.StartResult
	err     error
}

func (s *countingStarter) StartGame(_ context.Context, pin, nickname string) (gateway.StartResult, error) {
	s.calls++
	s.lastPIN = pin
	return s.result, s.err
}
