// Package lobby implements the entry step: a PIN plus nickname are exchanged
// for a game session, which is handed to the gameplay flow as a seed.
package lobby

import (
	"context"
	"strings"

	"quizapp/internal/game"
	"quizapp/internal/gateway"
)

// Starter is the slice of the gateway the lobby needs.
type Starter interface {
	StartGame(ctx context.Context, pin, nickname string) (gateway.StartResult, error)
}

// PinField models the PIN input box: non-digit characters typed by the user
// are discarded at input time, not at submit time.
type PinField struct {
	value string
}

// Type appends a keystroke's worth of input, keeping digits only.
func (f *PinField) Type(input string) {
	f.value += digitsOnly(input)
}

// Set replaces the whole field content (paste), applying the same filter.
func (f *PinField) Set(input string) {
	f.value = digitsOnly(input)
}

func (f *PinField) Value() string { return f.value }

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Bootstrap performs the lobby's start-game operation.
type Bootstrap struct {
	starter Starter
}

func NewBootstrap(starter Starter) *Bootstrap {
	return &Bootstrap{starter: starter}
}

// Start validates the inputs and exchanges them for a game seed. An empty PIN
// or nickname fails locally; no network call is made.
func (b *Bootstrap) Start(ctx context.Context, pin, nickname string) (game.Seed, error) {
	pin = digitsOnly(strings.TrimSpace(pin))
	nickname = strings.TrimSpace(nickname)
	if pin == "" || nickname == "" {
		return game.Seed{}, game.ErrMissingFields
	}

	result, err := b.starter.StartGame(ctx, pin, nickname)
	if err != nil {
		return game.Seed{}, err
	}
	return game.Seed{
		SessionID: result.SessionID,
		Question:  result.Question,
		Nickname:  nickname,
	}, nil
}
