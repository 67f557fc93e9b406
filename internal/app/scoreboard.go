package app

import (
	"sort"
	"sync"
	"time"
)

// ScoreboardEntry is one player's row on a room's live scoreboard.
type ScoreboardEntry struct {
	SessionID string `json:"sessionId"`
	Nickname  string `json:"nickname"`
	Score     int    `json:"score"`
}

// Scoreboard is the ordered score snapshot pushed to dashboard watchers.
type Scoreboard struct {
	RoomPIN   string            `json:"roomPin"`
	Entries   []ScoreboardEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Board tracks the players of one room and fans score updates out to
// subscribers.
type Board struct {
	pin         string
	now         func() time.Time
	mu          sync.RWMutex
	players     map[string]*player
	subscribers map[chan Scoreboard]struct{}
}

type player struct {
	nickname string
	score    int
	updated  time.Time
}

func newBoard(pin string) *Board {
	return &Board{
		pin:         pin,
		now:         time.Now,
		players:     make(map[string]*player),
		subscribers: make(map[chan Scoreboard]struct{}),
	}
}

func (b *Board) join(sessionID, nickname string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.players[sessionID] = &player{nickname: nickname, updated: b.now()}
	b.broadcastLocked()
}

func (b *Board) setScore(sessionID string, score int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.players[sessionID]
	if !ok {
		return
	}
	p.score = score
	p.updated = b.now()
	b.broadcastLocked()
}

// Subscribe returns a channel receiving scoreboard snapshots, primed with the
// current one. The prime is sent under the lock so a broadcast racing the
// subscription can never be delivered ahead of it. The caller must invoke
// cancel to avoid leaks.
func (b *Board) Subscribe() (<-chan Scoreboard, func()) {
	ch := make(chan Scoreboard, 8)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	// Fresh buffered channel; this send cannot block.
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Board) broadcastLocked() {
	snapshot := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot so a slow watcher never blocks the game.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (b *Board) snapshotLocked() Scoreboard {
	entries := make([]ScoreboardEntry, 0, len(b.players))
	for sessionID, p := range b.players {
		entries = append(entries, ScoreboardEntry{
			SessionID: sessionID,
			Nickname:  p.nickname,
			Score:     p.score,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		// Tie-break by who reached the score first, then by name.
		pi := b.players[entries[i].SessionID]
		pj := b.players[entries[j].SessionID]
		if pi != nil && pj != nil && !pi.updated.Equal(pj.updated) {
			return pi.updated.Before(pj.updated)
		}
		return entries[i].Nickname < entries[j].Nickname
	})
	return Scoreboard{
		RoomPIN:   b.pin,
		Entries:   entries,
		UpdatedAt: b.now(),
	}
}

// BoardRegistry holds one Board per room.
type BoardRegistry struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

func NewBoardRegistry() *BoardRegistry {
	return &BoardRegistry{boards: make(map[string]*Board)}
}

// Get returns the room's board, creating it on first use.
func (r *BoardRegistry) Get(pin string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	board, ok := r.boards[pin]
	if !ok {
		board = newBoard(pin)
		r.boards[pin] = board
	}
	return board
}

// Join registers a player on the room's board.
func (r *BoardRegistry) Join(pin, sessionID, nickname string) {
	r.Get(pin).join(sessionID, nickname)
}

// SetScore records a player's authoritative score.
func (r *BoardRegistry) SetScore(pin, sessionID string, score int) {
	r.Get(pin).setScore(sessionID, score)
}
