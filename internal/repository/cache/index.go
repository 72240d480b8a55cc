package cache

import (
	"context"
	"strconv"

	"github.com/huntly/leadsearch/internal/domain"
)

// Index operations are not advisory: failures surface to the caller so
// the indexer can account them and the engine can fall back to the
// record store.

// AddToIndex adds a lead to the posting set of every token.
func (c *Cache) AddToIndex(ctx context.Context, leadID int64, tokens []string) error {
	if c.store == nil {
		return domain.ErrCorpusUnavailable
	}
	member := strconv.FormatInt(leadID, 10)
	for _, token := range tokens {
		if err := c.store.SAdd(ctx, c.indexKey(token), member); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFromIndex removes a lead from the posting set of every token.
func (c *Cache) RemoveFromIndex(ctx context.Context, leadID int64, tokens []string) error {
	if c.store == nil {
		return domain.ErrCorpusUnavailable
	}
	member := strconv.FormatInt(leadID, 10)
	for _, token := range tokens {
		if err := c.store.SRem(ctx, c.indexKey(token), member); err != nil {
			return err
		}
	}
	return nil
}

// IndexIntersection returns the lead IDs present in every token's
// posting set. A single token degenerates to a plain membership read.
func (c *Cache) IndexIntersection(ctx context.Context, tokens []string) ([]int64, error) {
	if c.store == nil {
		return nil, domain.ErrCorpusUnavailable
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		members []string
		err     error
	)
	if len(tokens) == 1 {
		members, err = c.store.SMembers(ctx, c.indexKey(tokens[0]))
	} else {
		keys := make([]string, len(tokens))
		for i, token := range tokens {
			keys[i] = c.indexKey(token)
		}
		members, err = c.store.SInter(ctx, keys...)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ClearIndex drops every token posting set and returns how many were removed.
func (c *Cache) ClearIndex(ctx context.Context) int {
	return c.deleteByPattern(ctx, c.cfg.KeyPrefix+indexPrefix+"*")
}
