// Package cache is a best-effort read-through JSON cache on Redis. Every
// operation degrades to a no-op (logged, never surfaced) when Redis is down or
// the client is nil — the database remains the source of truth and a cache
// outage must not fail requests.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	BooksListPrefix = "books:list"
	LoansListPrefix = "loans:list"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps a Redis client. A nil client yields a cache where every read
// misses and every write is dropped.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetJSON loads key into dest and reports whether it was a usable hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	metrics.RedisCommandsTotal.Inc()
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		metrics.CacheMissesTotal.Inc()
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		metrics.CacheMissesTotal.Inc()
		return false
	}
	metrics.CacheHitsTotal.Inc()
	return true
}

// SetJSON stores v under key with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	metrics.RedisCommandsTotal.Inc()
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// InvalidatePrefix removes every key under the given prefixes. Uses SCAN so
// large keyspaces don't block Redis.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	for _, prefix := range prefixes {
		iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache scan failed")
			continue
		}
		if len(keys) == 0 {
			continue
		}
		metrics.RedisCommandsTotal.Inc()
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}
