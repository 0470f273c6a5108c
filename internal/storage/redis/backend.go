package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

// Ensure Backend implements storage.Backend interface at compile time
var _ storage.Backend = (*Backend)(nil)

// Backend stores each session's tokens in one Redis hash that expires
// after the session TTL.
type Backend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBackend(client *redis.Client, ttl time.Duration) *Backend {
	return &Backend{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:tokens", sessionID)
}

func (b *Backend) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := b.client.HGet(ctx, sessionKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *Backend) Set(ctx context.Context, sessionID string, values map[string]string) error {
	key := sessionKey(sessionID)
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values)
		if b.ttl > 0 {
			pipe.Expire(ctx, key, b.ttl)
		}
		return nil
	})
	return err
}

func (b *Backend) Clear(ctx context.Context, sessionID string) error {
	return b.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
