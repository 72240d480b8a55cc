package engine

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
	"github.com/huntly/leadsearch/internal/usecase/query"
)

// mockRecords implements the Records contract for tests.
type mockRecords struct {
	searchFn             func(ctx context.Context, terms, phrases []string, f domain.Filters, limit int) ([]domain.Lead, error)
	filterByPredicatesFn func(ctx context.Context, ids []int64, f domain.Filters) ([]domain.Lead, error)
	distinctPrefixFn     func(ctx context.Context, column, prefix string, limit int) ([]string, error)
}

func (m *mockRecords) Search(ctx context.Context, terms, phrases []string, f domain.Filters, limit int) ([]domain.Lead, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, terms, phrases, f, limit)
	}
	return nil, nil
}

func (m *mockRecords) FilterByPredicates(ctx context.Context, ids []int64, f domain.Filters) ([]domain.Lead, error) {
	if m.filterByPredicatesFn != nil {
		return m.filterByPredicatesFn(ctx, ids, f)
	}
	return nil, nil
}

func (m *mockRecords) DistinctPrefix(ctx context.Context, column, prefix string, limit int) ([]string, error) {
	if m.distinctPrefixFn != nil {
		return m.distinctPrefixFn(ctx, column, prefix, limit)
	}
	return nil, nil
}

// mockIndex implements the Index contract for tests.
type mockIndex struct {
	searchByTokensFn func(ctx context.Context, tokens []string, limit int) ([]int64, error)
	statusFn         func(ctx context.Context) (domain.IndexStatus, error)
}

func (m *mockIndex) SearchByTokens(ctx context.Context, tokens []string, limit int) ([]int64, error) {
	if m.searchByTokensFn != nil {
		return m.searchByTokensFn(ctx, tokens, limit)
	}
	return nil, nil
}

func (m *mockIndex) Status(ctx context.Context) (domain.IndexStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return domain.IndexStatus{}, nil
}

// mockCache implements the Cache contract for tests. Search result and
// suggestion state is kept in maps so round trips work out of the box.
type mockCache struct {
	results     map[string][]domain.SearchResult
	leads       map[int64]domain.IndexedLead
	prefs       map[int64]domain.Preferences
	suggestions map[string][]string
	popular     []string
	recorded    []string
	healthErr   error
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{
		results:     map[string][]domain.SearchResult{},
		leads:       map[int64]domain.IndexedLead{},
		prefs:       map[int64]domain.Preferences{},
		suggestions: map[string][]string{},
	}
}

func shapeID(shape domain.QueryShape) string {
	return shape.Text + "|" + shape.Filters.Industry + "|" + shape.SortBy
}

func (m *mockCache) GetSearchResults(_ context.Context, shape domain.QueryShape) ([]domain.SearchResult, bool) {
	r, ok := m.results[shapeID(shape)]
	return r, ok
}

func (m *mockCache) PutSearchResults(_ context.Context, shape domain.QueryShape, results []domain.SearchResult) {
	m.results[shapeID(shape)] = results
}

func (m *mockCache) InvalidateSearchResults(_ context.Context) int {
	n := len(m.results)
	m.results = map[string][]domain.SearchResult{}
	m.invalidated += n
	return n
}

func (m *mockCache) GetLead(_ context.Context, id int64) (domain.IndexedLead, bool) {
	l, ok := m.leads[id]
	return l, ok
}

func (m *mockCache) GetPreferences(_ context.Context, userID int64) (domain.Preferences, bool) {
	p, ok := m.prefs[userID]
	return p, ok
}

func (m *mockCache) PutPreferences(_ context.Context, userID int64, prefs domain.Preferences) {
	m.prefs[userID] = prefs
}

func (m *mockCache) GetSuggestions(_ context.Context, prefix string) ([]string, bool) {
	s, ok := m.suggestions[prefix]
	return s, ok
}

func (m *mockCache) PutSuggestions(_ context.Context, prefix string, suggestions []string) {
	m.suggestions[prefix] = suggestions
}

func (m *mockCache) RecordPopularSearch(_ context.Context, text string) {
	m.recorded = append(m.recorded, text)
}

func (m *mockCache) PopularSearches(_ context.Context, n int) []string {
	if len(m.popular) > n {
		return m.popular[:n]
	}
	return m.popular
}

func (m *mockCache) HealthCheck(_ context.Context) error {
	return m.healthErr
}

func newTestEngine(t *testing.T, records *mockRecords, index *mockIndex, cache *mockCache) *Service {
	t.Helper()
	return New(records, index, cache, query.New(), Config{
		MaxResults:      1000,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}, zap.NewNop())
}
