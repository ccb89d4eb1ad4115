package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// Cache wraps an optional redis client. A nil receiver or nil client is
// valid and every operation turns into a miss, so callers never need to
// check whether caching is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = 10 * time.Minute

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// Get unmarshals the cached value for key into dest. It reports whether
// the key was present; cache failures degrade to a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.GetLogger().WithField("key", key).Warn(err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.GetLogger().WithField("key", key).Warn(err)
		return false
	}
	return true
}

// Set stores a value under key for the cache TTL. Failures are logged
// and otherwise ignored.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().WithField("key", key).Warn(err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.GetLogger().WithField("key", key).Warn(err)
	}
}
