package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// Stats summarizes engine state: index coverage, popular queries, and
// cache store health.
type Stats struct {
	IndexingStatus  domain.IndexStatus `json:"indexing_status"`
	PopularSearches []string           `json:"popular_searches"`
	CacheHealthy    bool               `json:"cache_healthy"`
	LastUpdated     time.Time          `json:"last_updated"`
}

// SearchStats reports current engine statistics.
func (s *Service) SearchStats(ctx context.Context) (Stats, error) {
	status, err := s.index.Status(ctx)
	if err != nil {
		return Stats{}, err
	}

	cacheHealthy := true
	if err := s.cache.HealthCheck(ctx); err != nil {
		cacheHealthy = false
		s.logger.Warn("Cache store unhealthy", zap.Error(err))
	}

	return Stats{
		IndexingStatus:  status,
		PopularSearches: s.cache.PopularSearches(ctx, 10),
		CacheHealthy:    cacheHealthy,
		LastUpdated:     time.Now().UTC(),
	}, nil
}
