package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	pingFn       func(ctx context.Context) error
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn        func(ctx context.Context, keys ...string) error
	sAddFn       func(ctx context.Context, key string, members ...string) error
	sRemFn       func(ctx context.Context, key string, members ...string) error
	sMembersFn   func(ctx context.Context, key string) ([]string, error)
	sInterFn     func(ctx context.Context, keys ...string) ([]string, error)
	zIncrByFn    func(ctx context.Context, key string, increment float64, member string) error
	zRevRangeFn  func(ctx context.Context, key string, n int) ([]string, error)
	scanFn       func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.sAddFn != nil {
		return m.sAddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sRemFn != nil {
		return m.sRemFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.sMembersFn != nil {
		return m.sMembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SInter(ctx context.Context, keys ...string) ([]string, error) {
	if m.sInterFn != nil {
		return m.sInterFn(ctx, keys...)
	}
	return nil, nil
}

func (m *mockStore) ZIncrBy(ctx context.Context, key string, increment float64, member string) error {
	if m.zIncrByFn != nil {
		return m.zIncrByFn(ctx, key, increment, member)
	}
	return nil
}

func (m *mockStore) ZRevRangeTopN(ctx context.Context, key string, n int) ([]string, error) {
	if m.zRevRangeFn != nil {
		return m.zRevRangeFn(ctx, key, n)
	}
	return nil, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func testConfig() Config {
	return Config{
		KeyPrefix:      "leadsearch:",
		SearchTTL:      time.Hour,
		LeadTTL:        2 * time.Hour,
		UserPrefsTTL:   24 * time.Hour,
		AnalyticsTTL:   30 * time.Minute,
		SuggestionsTTL: 30 * time.Minute,
	}
}

func newTestCache(t *testing.T, ms *mockStore) *Cache {
	t.Helper()
	if ms == nil {
		return New(nil, testConfig(), zap.NewNop())
	}
	return New(ms, testConfig(), zap.NewNop())
}
