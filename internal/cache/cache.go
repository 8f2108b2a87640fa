// Package cache implements a Redis cache for session reads and weekly
// summaries. Caching is optional; the service layer treats a nil Cache as
// disabled.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/go-redis/redis/v8"
)

// ErrMiss is returned by GetJSON when the key is not cached.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	GetJSON(ctx context.Context, key string, value any) error
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	conn *redis.Client
}

// NewRedisCache connects to redis at the given URL and verifies the
// connection.
func NewRedisCache(ctx context.Context, addr string) (Cache, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisCache{conn: client}, nil
}

// GetJSON retrieves a JSON string and unmarshals it into the given value.
// Returns ErrMiss when the key does not exist.
func (rc *RedisCache) GetJSON(ctx context.Context, key string, value any) error {
	s, err := rc.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(s), value); err != nil {
		return fmt.Errorf("unmarshaling cached JSON for %q: %w", key, err)
	}
	return nil
}

// SetJSON stores a value as a JSON string.
func (rc *RedisCache) SetJSON(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling JSON for cache key %q: %w", key, err)
	}
	return rc.conn.Set(ctx, key, string(encoded), 0).Err()
}

// Delete removes keys from the cache. Missing keys are not an error.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rc.conn.Del(ctx, keys...).Err()
}
