// Package cache provides the typed cache and inverted-index layer over
// the key-value store. Every read degrades to a miss and every write to
// a no-op when the store is unavailable; search correctness never
// depends on this layer.
package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/db"
)

// store is the consumer interface for the cache/index layer (ISP).
type store interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SInter(ctx context.Context, keys ...string) ([]string, error)
	ZIncrBy(ctx context.Context, key string, increment float64, member string) error
	ZRevRangeTopN(ctx context.Context, key string, n int) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Config holds key prefix and per-namespace TTLs.
type Config struct {
	KeyPrefix      string
	SearchTTL      time.Duration
	LeadTTL        time.Duration
	UserPrefsTTL   time.Duration
	AnalyticsTTL   time.Duration
	SuggestionsTTL time.Duration
}

// Cache is the typed facade over the store. A nil store yields a
// disabled cache: all reads miss, all writes are dropped.
type Cache struct {
	store  store
	cfg    Config
	logger *zap.Logger
}

// New creates the cache layer. s may be nil to run without a cache store.
func New(s store, cfg Config, logger *zap.Logger) *Cache {
	return &Cache{store: s, cfg: cfg, logger: logger}
}

// Enabled reports whether a cache store is attached.
func (c *Cache) Enabled() bool {
	return c.store != nil
}

// ErrDisabled is returned by HealthCheck when no store is attached.
var ErrDisabled = errors.New("cache store not configured")

// HealthCheck probes store connectivity.
func (c *Cache) HealthCheck(ctx context.Context) error {
	if c.store == nil {
		return ErrDisabled
	}
	return c.store.Ping(ctx)
}

// get returns the raw value for key, treating every failure as a miss.
func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// put stores the raw value under key with ttl, dropping it on failure.
func (c *Cache) put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c.store == nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, value, ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// deleteByPattern scans for keys matching pattern and deletes them,
// returning how many were removed.
func (c *Cache) deleteByPattern(ctx context.Context, pattern string) int {
	if c.store == nil {
		return 0
	}
	keys, err := c.store.Scan(ctx, pattern)
	if err != nil {
		c.logger.Warn("Cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return 0
	}
	if len(keys) == 0 {
		return 0
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.logger.Warn("Cache delete failed", zap.String("pattern", pattern), zap.Error(err))
		return 0
	}
	return len(keys)
}
