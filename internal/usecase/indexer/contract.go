package indexer

import (
	"context"
	"time"

	"github.com/huntly/leadsearch/internal/domain"
)

// Records is the record store contract for indexing operations.
type Records interface {
	FindByID(ctx context.Context, id int64) (domain.Lead, error)
	ListBatch(ctx context.Context, ids []int64, offset, limit int) ([]domain.Lead, error)
	Count(ctx context.Context) (int, error)
	CountIndexed(ctx context.Context) (int, error)
	CountByIDs(ctx context.Context, ids []int64) (int, error)
	UpdateIndexedAt(ctx context.Context, id int64, t time.Time) error
}

// Cache is the cache/index store contract for indexing operations.
type Cache interface {
	GetLead(ctx context.Context, id int64) (domain.IndexedLead, bool)
	PutLead(ctx context.Context, lead domain.IndexedLead)
	DeleteLead(ctx context.Context, id int64)

	AddToIndex(ctx context.Context, leadID int64, tokens []string) error
	RemoveFromIndex(ctx context.Context, leadID int64, tokens []string) error
	IndexIntersection(ctx context.Context, tokens []string) ([]int64, error)
	ClearIndex(ctx context.Context) int

	GetJob(ctx context.Context, id string) (domain.IndexJob, error)
	PutJob(ctx context.Context, job domain.IndexJob)
}
