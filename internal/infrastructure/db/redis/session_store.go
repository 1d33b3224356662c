package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/core/domain"
)

const sessionKey = "pawconnect:session"

// SessionStore persists the session blob under a single fixed Redis key.
// Used for kiosk and shared-terminal deployments where client state must
// survive the host machine. Same contract as the file store: one key, one
// JSON value, corruption fails open to unauthenticated.
type SessionStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSessionStore(client *redis.Client, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, log: log}
}

// Save serializes the session and overwrites the key. No TTL: the session
// lives until logout or corruption.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the key. Absence means no session; an unparseable or partial
// value is deleted and reported as absent.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil || !session.Authenticated() {
		s.log.Warn().Str("key", sessionKey).Msg("discarding malformed session blob")
		if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
			s.log.Warn().Err(err).Msg("session key removal failed")
		}
		return nil, nil
	}
	return &session, nil
}

// Clear deletes the key unconditionally.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
