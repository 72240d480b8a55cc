package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// Bulk indexing jobs live in the shared store so every instance sees
// the same job state. They expire a day after their last update.
const jobTTL = 24 * time.Hour

// GetJob returns a bulk indexing job by ID.
func (c *Cache) GetJob(ctx context.Context, id string) (domain.IndexJob, error) {
	data, ok := c.get(ctx, c.jobKey(id))
	if !ok {
		return domain.IndexJob{}, domain.ErrJobNotFound
	}
	var job domain.IndexJob
	if err := json.Unmarshal(data, &job); err != nil {
		c.logger.Warn("Failed to decode indexing job",
			zap.String("job_id", id), zap.Error(err))
		return domain.IndexJob{}, domain.ErrJobNotFound
	}
	return job, nil
}

// PutJob stores a bulk indexing job.
func (c *Cache) PutJob(ctx context.Context, job domain.IndexJob) {
	data, err := json.Marshal(job)
	if err != nil {
		c.logger.Warn("Failed to encode indexing job",
			zap.String("job_id", job.ID), zap.Error(err))
		return
	}
	c.put(ctx, c.jobKey(job.ID), data, jobTTL)
}
