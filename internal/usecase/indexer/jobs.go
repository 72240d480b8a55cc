package indexer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// StartBulkJob launches a background bulk indexing run and returns the
// job immediately. Job state lives in the shared cache store.
func (s *Service) StartBulkJob(ctx context.Context, ids []int64) domain.IndexJob {
	job := domain.IndexJob{
		ID:        uuid.NewString(),
		State:     domain.JobStateRunning,
		StartedAt: s.now().UTC(),
	}
	s.cache.PutJob(ctx, job)

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[job.ID] = cancel
	s.mu.Unlock()

	go s.runBulkJob(runCtx, job, ids)

	return job
}

func (s *Service) runBulkJob(ctx context.Context, job domain.IndexJob, ids []int64) {
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.cancels[job.ID]; ok {
			cancel()
			delete(s.cancels, job.ID)
		}
		s.mu.Unlock()
	}()

	stats := s.BulkIndex(ctx, ids)

	finished := s.now().UTC()
	job.Stats = stats
	job.FinishedAt = &finished

	switch {
	case ctx.Err() != nil:
		job.State = domain.JobStateCancelled
	case stats.TotalLeads > 0 && stats.IndexedLeads == 0 && stats.FailedLeads > 0:
		job.State = domain.JobStateFailed
	default:
		job.State = domain.JobStateCompleted
	}

	s.cache.PutJob(context.Background(), job)
	s.logger.Info("Bulk indexing job finished",
		zap.String("job_id", job.ID),
		zap.String("state", job.State),
		zap.Int("indexed", stats.IndexedLeads),
		zap.Int("failed", stats.FailedLeads))
}

// Job returns a bulk indexing job by ID.
func (s *Service) Job(ctx context.Context, id string) (domain.IndexJob, error) {
	return s.cache.GetJob(ctx, id)
}

// CancelJob requests cancellation of a running job. The run stops at
// the next batch boundary.
func (s *Service) CancelJob(ctx context.Context, id string) error {
	s.mu.Lock()
	cancel, ok := s.cancels[id]
	s.mu.Unlock()

	if !ok {
		// Not running here; it may have finished or belong to another
		// instance.
		if _, err := s.cache.GetJob(ctx, id); err != nil {
			return err
		}
		return nil
	}

	cancel()
	return nil
}
