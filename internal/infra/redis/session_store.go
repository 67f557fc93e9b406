package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizapp/internal/app"
	"quizapp/internal/domain"
)

const sessionKeyPrefix = "game:session:"

// SessionStore keeps serialized game sessions in Redis so multiple dev-server
// instances can share them. Each session lives under its own key with a TTL
// refreshed on every save.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session *app.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*app.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session app.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// ResetHistory walks every stored session and clears its asked-question list.
func (s *SessionStore) ResetHistory(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("load session %s: %w", key, err)
		}
		var session app.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return fmt.Errorf("unmarshal session %s: %w", key, err)
		}
		session.AskedIDs = nil
		updated, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", key, err)
		}
		if err := s.client.Set(ctx, key, updated, redis.KeepTTL).Err(); err != nil {
			return fmt.Errorf("save session %s: %w", key, err)
		}
	}
	return iter.Err()
}
