package db

import (
	"context"
	"time"
)

// Store is the cache/index store facade combining all sub-interfaces.
// Consumers should depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	KVStore
	SetStore
	SortedSetStore
	Scanner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides plain key-value operations with TTL.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// SetStore provides unordered set operations backing the inverted index.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SInter(ctx context.Context, keys ...string) ([]string, error)
}

// SortedSetStore provides sorted-set operations backing popularity counters.
type SortedSetStore interface {
	ZIncrBy(ctx context.Context, key string, increment float64, member string) error
	ZRevRangeTopN(ctx context.Context, key string, n int) ([]string, error)
}

// Scanner enumerates keys by pattern for bulk invalidation.
type Scanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}
