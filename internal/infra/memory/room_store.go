package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"quizapp/internal/domain"
)

// RoomStore keeps joinable rooms in memory, keyed by their 6-digit PIN.
type RoomStore struct {
	rnd   *rand.Rand
	rndMu sync.Mutex

	mu    sync.RWMutex
	rooms map[string]domain.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		rooms: make(map[string]domain.Room),
	}
}

func (s *RoomStore) Create(_ context.Context, cfg domain.GameConfig) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pin := s.freePinLocked()
	room := domain.Room{PIN: pin, Config: cfg}
	s.rooms[pin] = room
	return room, nil
}

func (s *RoomStore) Get(_ context.Context, pin string) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[pin]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

// Seed registers a room under a fixed PIN (dev server startup).
func (s *RoomStore) Seed(pin string, cfg domain.GameConfig) domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := domain.Room{PIN: pin, Config: cfg}
	s.rooms[pin] = room
	return room
}

func (s *RoomStore) freePinLocked() string {
	for {
		s.rndMu.Lock()
		pin := fmt.Sprintf("%06d", s.rnd.Intn(1000000))
		s.rndMu.Unlock()
		if _, taken := s.rooms[pin]; !taken {
			return pin
		}
	}
}
