package cache

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// GetSearchResults returns the cached result superset for a query shape.
// A payload that fails to decode counts as a miss.
func (c *Cache) GetSearchResults(ctx context.Context, shape domain.QueryShape) ([]domain.SearchResult, bool) {
	key := c.searchKey(shape)
	data, ok := c.get(ctx, key)
	if !ok {
		return nil, false
	}

	var results []domain.SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("Failed to decode cached search results",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

// PutSearchResults caches a result superset for a query shape.
func (c *Cache) PutSearchResults(ctx context.Context, shape domain.QueryShape, results []domain.SearchResult) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to encode search results", zap.Error(err))
		return
	}
	c.put(ctx, c.searchKey(shape), data, c.cfg.SearchTTL)
}

// InvalidateSearchResults drops every cached search result set and
// returns the number of entries removed.
func (c *Cache) InvalidateSearchResults(ctx context.Context) int {
	return c.deleteByPattern(ctx, c.cfg.KeyPrefix+searchPrefix+"*")
}

// GetSuggestions returns cached suggestions for a lowercased prefix.
func (c *Cache) GetSuggestions(ctx context.Context, prefix string) ([]string, bool) {
	data, ok := c.get(ctx, c.suggestionsKey(prefix))
	if !ok {
		return nil, false
	}
	var suggestions []string
	if err := json.Unmarshal(data, &suggestions); err != nil {
		c.logger.Warn("Failed to decode cached suggestions",
			zap.String("prefix", prefix), zap.Error(err))
		return nil, false
	}
	return suggestions, true
}

// PutSuggestions caches suggestions for a prefix.
func (c *Cache) PutSuggestions(ctx context.Context, prefix string, suggestions []string) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	c.put(ctx, c.suggestionsKey(prefix), data, c.cfg.SuggestionsTTL)
}

// RecordPopularSearch increments the popularity counter for a query text.
func (c *Cache) RecordPopularSearch(ctx context.Context, text string) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" || c.store == nil {
		return
	}
	if err := c.store.ZIncrBy(ctx, c.popularSearchesKey(), 1, text); err != nil {
		c.logger.Warn("Failed to record popular search", zap.Error(err))
	}
}

// PopularSearches returns up to n query texts by descending popularity.
func (c *Cache) PopularSearches(ctx context.Context, n int) []string {
	if c.store == nil || n <= 0 {
		return nil
	}
	members, err := c.store.ZRevRangeTopN(ctx, c.popularSearchesKey(), n)
	if err != nil {
		c.logger.Warn("Failed to read popular searches", zap.Error(err))
		return nil
	}
	return members
}

// GetAnalytics returns a cached analytics payload by name into dst.
func (c *Cache) GetAnalytics(ctx context.Context, name string, dst any) bool {
	data, ok := c.get(ctx, c.analyticsKey(name))
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Failed to decode cached analytics",
			zap.String("name", name), zap.Error(err))
		return false
	}
	return true
}

// PutAnalytics caches an analytics payload by name.
func (c *Cache) PutAnalytics(ctx context.Context, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.put(ctx, c.analyticsKey(name), data, c.cfg.AnalyticsTTL)
}
