package domain

import "time"

// IndexingStats reports the outcome of a bulk or whole-corpus indexing
// run. A single lead's failure is accounted here, never propagated.
type IndexingStats struct {
	TotalLeads     int      `json:"total_leads"`
	IndexedLeads   int      `json:"indexed_leads"`
	FailedLeads    int      `json:"failed_leads"`
	ProcessingSecs float64  `json:"processing_time_seconds"`
	Errors         []string `json:"errors"`
}

// IndexStatus summarizes index coverage of the lead corpus.
type IndexStatus struct {
	TotalLeads      int       `json:"total_leads"`
	IndexedLeads    int       `json:"indexed_leads"`
	UnindexedLeads  int       `json:"unindexed_leads"`
	CoveragePercent float64   `json:"coverage_percent"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Indexing job states.
const (
	JobStateRunning   = "running"
	JobStateCompleted = "completed"
	JobStateFailed    = "failed"
	JobStateCancelled = "cancelled"
)

// IndexJob tracks a long-running bulk indexing run. Jobs live in the
// shared cache store so every engine instance sees the same state.
type IndexJob struct {
	ID         string        `json:"id"`
	State      string        `json:"state"`
	Stats      IndexingStats `json:"stats"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}
