package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"bsn-backend/internal/integrations"
)

const accountingSessionKey = "integrations:accounting:session"

// SessionService persists the accounting-sync session in redis so the token
// state survives restarts and is shared across instances. The session is
// always handled as an explicit value; nothing caches it in process memory.
type SessionService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionService(client *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{client: client, ttl: ttl}
}

func (s *SessionService) Save(ctx context.Context, session integrations.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, accountingSessionKey, raw, s.ttl).Err()
}

// Load returns (nil, nil) when no session has been established.
func (s *SessionService) Load(ctx context.Context) (*integrations.Session, error) {
	raw, err := s.client.Get(ctx, accountingSessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session integrations.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Clear(ctx context.Context) error {
	return s.client.Del(ctx, accountingSessionKey).Err()
}
