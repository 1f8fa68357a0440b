package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for computed route payloads. Entries expire on a
// fixed TTL; host locations change rarely, so short staleness is
// acceptable for a routing estimate.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = 15 * time.Minute

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

// Return the cached payload for key, with a hit indicator.
func (c *RedisRouteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get %q: %w", key, err)
	}

	return payload, true, nil
}

// Store payload under key with the cache's TTL.
func (c *RedisRouteCache) Put(ctx context.Context, key string, payload []byte) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache put %q: %w", key, err)
	}

	return nil
}
