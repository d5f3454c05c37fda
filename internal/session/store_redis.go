package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"schemereg/pkg/platform/sentinel"
)

// RedisStore keeps sessions in Redis with an idle timeout.
type RedisStore struct {
	client *redis.Client
	idle   time.Duration
}

// NewRedis constructs a Redis-backed session store. idle is the expiry applied again on
// every read.
func NewRedis(client *redis.Client, idle time.Duration) *RedisStore {
	return &RedisStore{client: client, idle: idle}
}

// Get reads the session and refreshes its idle expiry in one pipeline.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	pipe := s.client.TxPipeline()
	get := pipe.Get(ctx, key)
	pipe.Expire(ctx, key, s.idle)
	_, err := pipe.Exec(ctx)

	data, getErr := get.Bytes()
	if errors.Is(getErr, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
