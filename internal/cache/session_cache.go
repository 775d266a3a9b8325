package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindscreen/internal/model"
)

// SessionStore persists screening sessions by the platform session key.
// Get returns model.ErrSessionNotFound for unknown or expired keys.
type SessionStore interface {
	Get(ctx context.Context, key string) (*model.ScreeningSession, error)
	Set(ctx context.Context, session *model.ScreeningSession) error
	Delete(ctx context.Context, key string) error
}

// DefaultSessionTTL bounds how long an abandoned questionnaire is kept
const DefaultSessionTTL = 30 * time.Minute

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a redis-backed session store. Expiry is left to
// redis: every Set refreshes the key TTL.
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(sessionKey string) string {
	return fmt.Sprintf("screening:session:%s", sessionKey)
}

func (c *sessionCache) Set(ctx context.Context, session *model.ScreeningSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.Key), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, key string) (*model.ScreeningSession, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.ScreeningSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}
