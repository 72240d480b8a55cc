package engine

import (
	"context"

	"github.com/huntly/leadsearch/internal/domain"
)

// Records is the record store contract for search retrieval.
type Records interface {
	Search(ctx context.Context, terms, phrases []string, f domain.Filters, limit int) ([]domain.Lead, error)
	FilterByPredicates(ctx context.Context, ids []int64, f domain.Filters) ([]domain.Lead, error)
	DistinctPrefix(ctx context.Context, column, prefix string, limit int) ([]string, error)
}

// Index answers token lookups and reports index coverage.
type Index interface {
	SearchByTokens(ctx context.Context, tokens []string, limit int) ([]int64, error)
	Status(ctx context.Context) (domain.IndexStatus, error)
}

// Cache is the cache store contract for the search engine.
type Cache interface {
	GetSearchResults(ctx context.Context, shape domain.QueryShape) ([]domain.SearchResult, bool)
	PutSearchResults(ctx context.Context, shape domain.QueryShape, results []domain.SearchResult)
	InvalidateSearchResults(ctx context.Context) int

	GetLead(ctx context.Context, id int64) (domain.IndexedLead, bool)
	GetPreferences(ctx context.Context, userID int64) (domain.Preferences, bool)
	PutPreferences(ctx context.Context, userID int64, prefs domain.Preferences)

	GetSuggestions(ctx context.Context, prefix string) ([]string, bool)
	PutSuggestions(ctx context.Context, prefix string, suggestions []string)
	RecordPopularSearch(ctx context.Context, text string)
	PopularSearches(ctx context.Context, n int) []string

	HealthCheck(ctx context.Context) error
}

// Parser turns raw query text into structured form.
type Parser interface {
	Parse(raw string) domain.ParsedQuery
}
