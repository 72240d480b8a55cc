package leadsearch

import (
	"context"

	"github.com/huntly/leadsearch/internal/domain"
)

// Sort orders accepted by Search.
const (
	SortByRelevance = domain.SortByRelevance
	SortByCreatedAt = domain.SortByCreatedAt
)

// Search runs a ranked search over the lead corpus. Free text and
// structured filters combine; implicit filters parsed from the text
// fill whatever the explicit filters leave unset. The error is non-nil
// only when ctx is cancelled or times out.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) ([]SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	q := domain.Query{
		Text:    query,
		Filters: toDomainFilters(opts.Filters),
		SortBy:  opts.SortBy,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
	}
	results, err := c.engine.Search(ctx, q, toDomainPreferences(opts.Preferences))
	if err != nil {
		return nil, err
	}
	return fromSearchResults(results), nil
}

// Suggest returns query completions for a partial input, drawn from
// popular searches, company names, and industries.
func (c *Client) Suggest(ctx context.Context, partial string, limit int) []string {
	return c.engine.Suggestions(ctx, partial, limit)
}

// SavePreferences stores ranking preferences for a user. They apply
// when passed in SearchOptions or resolved by the API server.
func (c *Client) SavePreferences(ctx context.Context, userID int64, prefs Preferences) {
	c.engine.SavePreferences(ctx, userID, *toDomainPreferences(&prefs))
}

// InvalidateCache drops all cached search result sets.
func (c *Client) InvalidateCache(ctx context.Context) int {
	return c.engine.InvalidateCache(ctx)
}
