// Package cache wraps the optional Redis client behind nil-safe helpers.
// When Redis is not configured every operation is a no-op, so the service
// layer can call through unconditionally. The in-memory fallback deployment
// runs with zero external services and relies on this.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a read-through JSON cache plus a pub/sub fanout.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// New creates a Cache. rdb may be nil, which disables caching entirely.
func New(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "cache").Logger(),
	}
}

// Enabled reports whether a Redis backend is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads and unmarshals a cached value into dst.
// Returns false on miss, disabled cache, or any Redis/decode error;
// cache trouble must never fail a request.
func (c *Cache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache decode failed")
		return false
	}
	return true
}

// SetJSON marshals and stores a value under the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate removes cached values after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}

// Publish broadcasts a JSON-encoded event on a pub/sub channel.
func (c *Cache) Publish(ctx context.Context, channel string, v interface{}) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("channel", channel).Msg("Event encode failed")
		return
	}
	if err := c.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		c.log.Warn().Err(err).Str("channel", channel).Msg("Event publish failed")
	}
}

// Subscribe opens a pub/sub subscription. Returns nil when disabled.
func (c *Cache) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Subscribe(ctx, channel)
}
