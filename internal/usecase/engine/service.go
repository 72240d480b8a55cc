// Package engine orchestrates lead search: cache lookup, query
// parsing, candidate retrieval, ranking, sorting, pagination, and
// result caching.
package engine

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
	"github.com/huntly/leadsearch/internal/metrics"
	"github.com/huntly/leadsearch/internal/usecase/indexer"
	"github.com/huntly/leadsearch/internal/usecase/ranking"
)

// Config caps candidate sets and pages.
type Config struct {
	MaxResults      int
	DefaultPageSize int
	MaxPageSize     int
}

// Service is the search engine.
type Service struct {
	records Records
	index   Index
	cache   Cache
	parser  Parser
	cfg     Config
	logger  *zap.Logger
}

// New creates the search engine.
func New(records Records, index Index, cache Cache, parser Parser, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 1000
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Service{
		records: records,
		index:   index,
		cache:   cache,
		parser:  parser,
		cfg:     cfg,
		logger:  logger,
	}
}

// Search runs the full pipeline for one query. A cancelled context
// surfaces as an error; any other retrieval failure yields an empty
// result list and is never cached, so a recovered store is not shadowed
// by a poisoned entry.
func (s *Service) Search(
	ctx context.Context, query domain.Query, prefs *domain.Preferences,
) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	limit, offset := s.pageBounds(query)

	shape := domain.QueryShape{
		Text:        query.Text,
		Filters:     query.Filters,
		SortBy:      query.SortBy,
		Preferences: prefs,
	}

	if cached, ok := s.cache.GetSearchResults(ctx, shape); ok {
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		metrics.SearchDuration.WithLabelValues("cache").Observe(time.Since(start).Seconds())
		s.logger.Info("Search cache hit", zap.String("query", query.Text))
		page := paginate(cached, offset, limit)
		metrics.SearchResultsReturned.Observe(float64(len(page)))
		return page, nil
	}
	metrics.SearchCacheTotal.WithLabelValues("miss").Inc()

	parsed := s.parser.Parse(query.Text)
	filters := mergeFilters(query.Filters, parsed.Filters)

	candidates, source, err := s.candidates(ctx, parsed, filters)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error("Candidate retrieval failed", zap.Error(err))
		metrics.SearchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
		return []domain.SearchResult{}, nil
	}

	scorer := ranking.New(prefs)
	results := make([]domain.SearchResult, 0, len(candidates))
	for _, lead := range candidates {
		score, reasons := scorer.Score(lead, parsed, filters)
		if score <= 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Lead:              s.indexedView(ctx, lead),
			RelevanceScore:    score,
			MatchReasons:      reasons,
			HighlightedFields: highlights(lead, parsed),
		})
	}

	sortResults(results, query.SortBy)

	if len(results) > s.cfg.MaxResults {
		results = results[:s.cfg.MaxResults]
	}

	s.cache.PutSearchResults(ctx, shape, results)
	if query.Text != "" {
		s.cache.RecordPopularSearch(ctx, query.Text)
	}

	metrics.SearchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	page := paginate(results, offset, limit)
	metrics.SearchResultsReturned.Observe(float64(len(page)))

	s.logger.Info("Search completed",
		zap.String("query", query.Text),
		zap.String("source", source),
		zap.Int("total_found", len(results)),
		zap.Int("returned", len(page)),
		zap.Duration("took", time.Since(start)))
	return page, nil
}

// Preferences resolves ranking preferences for a user, cache-first.
func (s *Service) Preferences(ctx context.Context, userID int64) *domain.Preferences {
	if userID == 0 {
		return nil
	}
	if prefs, ok := s.cache.GetPreferences(ctx, userID); ok {
		return &prefs
	}
	return nil
}

// SavePreferences stores ranking preferences for a user.
func (s *Service) SavePreferences(ctx context.Context, userID int64, prefs domain.Preferences) {
	s.cache.PutPreferences(ctx, userID, prefs)
}

// InvalidateCache drops all cached search result sets.
func (s *Service) InvalidateCache(ctx context.Context) int {
	n := s.cache.InvalidateSearchResults(ctx)
	s.logger.Info("Search cache invalidated", zap.Int("entries", n))
	return n
}

// candidates retrieves leads index-first, falling back to the record
// store when the index yields nothing or is unavailable. A failing
// fallback is reported to the caller, not masked as an empty corpus.
func (s *Service) candidates(
	ctx context.Context, parsed domain.ParsedQuery, filters domain.Filters,
) ([]domain.Lead, string, error) {
	if len(parsed.Terms) > 0 {
		ids, err := s.index.SearchByTokens(ctx, parsed.Terms, s.cfg.MaxResults)
		if err != nil {
			s.logger.Warn("Token index lookup failed", zap.Error(err))
		} else if len(ids) > 0 {
			leads, err := s.records.FilterByPredicates(ctx, ids, filters)
			if err != nil {
				s.logger.Warn("Candidate hydration failed", zap.Error(err))
			} else if len(leads) > 0 {
				return leads, "index", nil
			}
		}
	}

	leads, err := s.records.Search(ctx, parsed.Terms, parsed.Phrases, filters, s.cfg.MaxResults)
	if err != nil {
		return nil, "fallback", err
	}
	return leads, "fallback", nil
}

// indexedView returns the cached projection for a lead or builds one
// on the fly.
func (s *Service) indexedView(ctx context.Context, lead domain.Lead) domain.IndexedLead {
	if cached, ok := s.cache.GetLead(ctx, lead.ID); ok {
		return cached
	}
	return indexer.Projection(lead, indexer.ExtractMetadata(lead))
}

func (s *Service) pageBounds(query domain.Query) (limit, offset int) {
	limit = query.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	offset = query.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// mergeFilters overlays implicit filters onto explicit ones; explicit
// values always win.
func mergeFilters(explicit domain.Filters, implicit map[string]string) domain.Filters {
	merged := explicit
	if merged.Industry == "" {
		merged.Industry = implicit["industry"]
	}
	if merged.Location == "" {
		merged.Location = implicit["location"]
	}
	if merged.CompanySize == "" {
		merged.CompanySize = implicit["company_size"]
	}
	return merged
}

// sortResults orders by the requested key, breaking ties by ascending
// lead ID so pagination is stable.
func sortResults(results []domain.SearchResult, sortBy string) {
	switch sortBy {
	case domain.SortByCreatedAt:
		sort.SliceStable(results, func(i, j int) bool {
			ti := indexedAtOrZero(results[i].Lead)
			tj := indexedAtOrZero(results[j].Lead)
			if ti.Equal(tj) {
				return results[i].Lead.ID < results[j].Lead.ID
			}
			return ti.After(tj)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].RelevanceScore == results[j].RelevanceScore {
				return results[i].Lead.ID < results[j].Lead.ID
			}
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}
}

func indexedAtOrZero(lead domain.IndexedLead) time.Time {
	if lead.IndexedAt == nil {
		return time.Time{}
	}
	return *lead.IndexedAt
}

// paginate slices a cached superset. An offset beyond the set yields
// an empty page.
func paginate(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
