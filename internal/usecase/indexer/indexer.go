// Package indexer maintains the inverted token index and the cached
// lead projections used for fast retrieval.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
	"github.com/huntly/leadsearch/internal/metrics"
)

// Service indexes leads into the cache store and answers token lookups.
type Service struct {
	records   Records
	cache     Cache
	logger    *zap.Logger
	batchSize int
	pool      *ants.Pool
	now       func() time.Time

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// New creates an indexer with a worker pool of the given size.
func New(records Records, cache Cache, logger *zap.Logger, batchSize, workers int) (*Service, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create indexing pool: %w", err)
	}
	return &Service{
		records:   records,
		cache:     cache,
		logger:    logger,
		batchSize: batchSize,
		pool:      pool,
		now:       time.Now,
		cancels:   map[string]context.CancelFunc{},
	}, nil
}

// Release frees the worker pool. The service must not be used after.
func (s *Service) Release() {
	s.pool.Release()
}

// IndexLead (re)indexes a single lead: extracts metadata, stamps
// indexed_at in the record store, writes the token postings, and
// caches the projection. Indexing is idempotent because postings are
// sets. A disabled cache store is not an error; the indexed_at stamp
// still lands.
func (s *Service) IndexLead(ctx context.Context, lead domain.Lead) error {
	meta := ExtractMetadata(lead)
	indexedAt := s.now().UTC()

	if err := s.records.UpdateIndexedAt(ctx, lead.ID, indexedAt); err != nil {
		metrics.IndexedLeadsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("stamp indexed_at: %w", err)
	}

	if err := s.cache.AddToIndex(ctx, lead.ID, IndexTokens(meta)); err != nil {
		if !errors.Is(err, domain.ErrCorpusUnavailable) {
			metrics.IndexedLeadsTotal.WithLabelValues("failure").Inc()
			return fmt.Errorf("write token postings: %w", err)
		}
		s.logger.Debug("Cache store disabled, skipping token postings",
			zap.Int64("lead_id", lead.ID))
	} else {
		lead.IndexedAt = &indexedAt
		s.cache.PutLead(ctx, Projection(lead, meta))
	}

	metrics.IndexedLeadsTotal.WithLabelValues("success").Inc()
	s.logger.Debug("Indexed lead", zap.Int64("lead_id", lead.ID))
	return nil
}

// IndexLeadByID loads a lead and indexes it.
func (s *Service) IndexLeadByID(ctx context.Context, id int64) error {
	lead, err := s.records.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.IndexLead(ctx, lead)
}

// Remove retracts a lead from the index. Tokens come from the cached
// projection when available, otherwise they are re-derived from the
// record store. Removing an unknown lead is a no-op.
func (s *Service) Remove(ctx context.Context, id int64) error {
	tokens := s.removalTokens(ctx, id)

	if len(tokens) > 0 {
		if err := s.cache.RemoveFromIndex(ctx, id, tokens); err != nil &&
			!errors.Is(err, domain.ErrCorpusUnavailable) {
			return fmt.Errorf("remove token postings: %w", err)
		}
	}

	s.cache.DeleteLead(ctx, id)
	s.logger.Debug("Removed lead from index", zap.Int64("lead_id", id))
	return nil
}

func (s *Service) removalTokens(ctx context.Context, id int64) []string {
	if cached, ok := s.cache.GetLead(ctx, id); ok {
		meta := domain.LeadMetadata{
			SearchableText: cached.SearchableText,
			CompanyTokens:  cached.CompanyTokens,
			IndustryTokens: cached.IndustryTokens,
			LocationTokens: cached.LocationTokens,
			Keywords:       cached.Keywords,
			AllTokens:      tokenize(cached.SearchableText),
		}
		return IndexTokens(meta)
	}

	lead, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return IndexTokens(ExtractMetadata(lead))
}

// BulkIndex indexes the given leads (or the whole corpus when ids is
// empty) in batches. Individual failures are accounted in the stats
// and never abort the run; cancellation is honored between batches.
func (s *Service) BulkIndex(ctx context.Context, ids []int64) domain.IndexingStats {
	start := s.now()
	var stats domain.IndexingStats

	total, err := s.countTargets(ctx, ids)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("count leads: %v", err))
		stats.ProcessingSecs = s.now().Sub(start).Seconds()
		return stats
	}
	stats.TotalLeads = total

	s.logger.Info("Starting bulk indexing", zap.Int("total_leads", total))

	var (
		mu     sync.Mutex
		offset int
		batch  int
	)
	for {
		if ctx.Err() != nil {
			stats.Errors = append(stats.Errors, "bulk indexing cancelled")
			break
		}

		leads, err := s.records.ListBatch(ctx, ids, offset, s.batchSize)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("list batch at %d: %v", offset, err))
			break
		}
		if len(leads) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, lead := range leads {
			lead := lead
			wg.Add(1)
			if err := s.pool.Submit(func() {
				defer wg.Done()
				indexErr := s.IndexLead(ctx, lead)
				mu.Lock()
				if indexErr != nil {
					stats.FailedLeads++
					stats.Errors = append(stats.Errors,
						fmt.Sprintf("failed to index lead %d: %v", lead.ID, indexErr))
				} else {
					stats.IndexedLeads++
				}
				mu.Unlock()
			}); err != nil {
				wg.Done()
				mu.Lock()
				stats.FailedLeads++
				stats.Errors = append(stats.Errors,
					fmt.Sprintf("failed to index lead %d: %v", lead.ID, err))
				mu.Unlock()
			}
		}
		wg.Wait()

		offset += s.batchSize
		batch++
		if batch%10 == 0 {
			s.logger.Info("Bulk indexing progress",
				zap.Int("indexed", stats.IndexedLeads),
				zap.Int("total", stats.TotalLeads))
		}
	}

	stats.ProcessingSecs = s.now().Sub(start).Seconds()
	metrics.BulkIndexDuration.Observe(stats.ProcessingSecs)

	s.logger.Info("Bulk indexing completed",
		zap.Int("indexed", stats.IndexedLeads),
		zap.Int("failed", stats.FailedLeads),
		zap.Float64("seconds", stats.ProcessingSecs))
	return stats
}

func (s *Service) countTargets(ctx context.Context, ids []int64) (int, error) {
	if len(ids) > 0 {
		return s.records.CountByIDs(ctx, ids)
	}
	return s.records.Count(ctx)
}

// ReindexAll clears the token index and rebuilds it from the corpus.
func (s *Service) ReindexAll(ctx context.Context) domain.IndexingStats {
	cleared := s.cache.ClearIndex(ctx)
	s.logger.Info("Cleared token index", zap.Int("keys", cleared))
	return s.BulkIndex(ctx, nil)
}

// Status reports index coverage of the corpus.
func (s *Service) Status(ctx context.Context) (domain.IndexStatus, error) {
	total, err := s.records.Count(ctx)
	if err != nil {
		return domain.IndexStatus{}, fmt.Errorf("count leads: %w", err)
	}
	indexed, err := s.records.CountIndexed(ctx)
	if err != nil {
		return domain.IndexStatus{}, fmt.Errorf("count indexed leads: %w", err)
	}

	status := domain.IndexStatus{
		TotalLeads:     total,
		IndexedLeads:   indexed,
		UnindexedLeads: total - indexed,
		LastUpdated:    s.now().UTC(),
	}
	if total > 0 {
		status.CoveragePercent = float64(indexed) / float64(total) * 100
	}
	return status, nil
}

// SearchByTokens returns up to limit lead IDs whose postings contain
// every token, in ascending ID order for stable pagination. Compound
// `industry:`/`location:` keys keep their prefix; only the value part
// is cleaned, matching how IndexTokens writes them.
func (s *Service) SearchByTokens(ctx context.Context, tokens []string, limit int) ([]int64, error) {
	var clean []string
	for _, token := range tokens {
		if prefix, rest, ok := strings.Cut(token, ":"); ok && (prefix == "industry" || prefix == "location") {
			if c := cleanIndexText(rest); len([]rune(c)) >= 2 {
				clean = append(clean, prefix+":"+c)
			}
			continue
		}
		if c := cleanIndexText(token); len([]rune(c)) >= 2 {
			clean = append(clean, c)
		}
	}
	if len(clean) == 0 {
		return nil, nil
	}

	ids, err := s.cache.IndexIntersection(ctx, clean)
	if err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Projection builds the read-optimized view of a lead from its
// extracted metadata.
func Projection(lead domain.Lead, meta domain.LeadMetadata) domain.IndexedLead {
	return domain.IndexedLead{
		ID:             lead.ID,
		Company:        lead.Company,
		Contact:        lead.Contact,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Website:        lead.Website,
		Industry:       lead.Industry,
		Location:       lead.Location,
		Revenue:        lead.Revenue,
		Employees:      lead.Employees,
		Description:    lead.Description,
		Keywords:       meta.Keywords,
		SearchableText: meta.SearchableText,
		CompanyTokens:  meta.CompanyTokens,
		IndustryTokens: meta.IndustryTokens,
		LocationTokens: meta.LocationTokens,
		IndexedAt:      lead.IndexedAt,
	}
}
