package redis

import (
	"context"

	"github.com/huntly/leadsearch/internal/db"
)

// ZIncrBy increments the score of member in the sorted set at key.
func (s *Store) ZIncrBy(ctx context.Context, key string, increment float64, member string) error {
	cmd := s.b().Zincrby().Key(key).Increment(increment).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZIncrBy, Err: err}
	}
	return nil
}

// ZRevRangeTopN returns the top-n members of the sorted set at key,
// highest score first.
func (s *Store) ZRevRangeTopN(ctx context.Context, key string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	cmd := s.b().Zrevrange().Key(key).Start(0).Stop(int64(n - 1)).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRevRange, Err: err}
	}
	return members, nil
}
