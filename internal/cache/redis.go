package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// envelope is the stored form of an entry. The expiry policy travels with the value so any
// replica can renew the sliding window without knowing how the entry was written.
type envelope struct {
	Value     json.RawMessage `json:"v"`
	Sliding   time.Duration   `json:"s,omitempty"`
	Absolute  time.Duration   `json:"a,omitempty"`
	WrittenAt time.Time       `json:"w"`
}

func (e envelope) options() Options {
	return Options{Sliding: e.Sliding, Absolute: e.Absolute}
}

// RedisCache is a Cache shared by every instance of the service.
type RedisCache struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithKeyPrefix namespaces every key written by the cache.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithRedisClock overrides the clock used to compute deadlines.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(c *RedisCache) {
		c.now = now
	}
}

// NewRedis constructs a Redis-backed cache.
func NewRedis(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, prefix: "cache:", now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get reads the entry and moves its expiry to the next sliding deadline.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	k := c.prefix + key
	raw, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cache entry %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	now := c.now()
	expires := deadlines(env.options(), env.WrittenAt, now)
	if !expires.IsZero() {
		if !now.Before(expires) {
			return false, nil
		}
		if err := c.client.PExpireAt(ctx, k, expires).Err(); err != nil {
			return false, fmt.Errorf("refresh cache entry %s: %w", key, err)
		}
	}
	if err := json.Unmarshal(env.Value, dest); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, opts Options) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	now := c.now()
	raw, err := json.Marshal(envelope{
		Value:     data,
		Sliding:   opts.Sliding,
		Absolute:  opts.Absolute,
		WrittenAt: now,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	var ttl time.Duration
	if expires := deadlines(opts, now, now); !expires.IsZero() {
		ttl = expires.Sub(now)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set cache entry %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Remove(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("remove cache entry %s: %w", key, err)
	}
	return nil
}
