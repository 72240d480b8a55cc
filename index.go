package leadsearch

import (
	"context"
	"fmt"
)

// AddLead stores a lead in the record store and indexes it. The
// assigned ID is returned.
func (c *Client) AddLead(ctx context.Context, lead Lead) (int64, error) {
	dl := toDomainLead(lead)
	if err := c.repo.Create(ctx, &dl); err != nil {
		return 0, fmt.Errorf("add lead: %w", err)
	}
	if err := c.indexer.IndexLead(ctx, dl); err != nil {
		return dl.ID, fmt.Errorf("add lead: index: %w", err)
	}
	return dl.ID, nil
}

// IndexLead (re)indexes a lead already present in the record store.
func (c *Client) IndexLead(ctx context.Context, id int64) error {
	return c.indexer.IndexLeadByID(ctx, id)
}

// RemoveLead removes a lead from the token index. The record itself
// stays in the record store.
func (c *Client) RemoveLead(ctx context.Context, id int64) error {
	return c.indexer.Remove(ctx, id)
}

// BulkIndex indexes the given leads synchronously. An empty id list
// indexes the whole corpus.
func (c *Client) BulkIndex(ctx context.Context, ids []int64) IndexingStats {
	return fromIndexingStats(c.indexer.BulkIndex(ctx, ids))
}

// ReindexAll clears the token index and rebuilds it from the record store.
func (c *Client) ReindexAll(ctx context.Context) IndexingStats {
	return fromIndexingStats(c.indexer.ReindexAll(ctx))
}

// IndexStatus reports token index coverage of the lead corpus.
func (c *Client) IndexStatus(ctx context.Context) (IndexStatus, error) {
	status, err := c.indexer.Status(ctx)
	if err != nil {
		return IndexStatus{}, fmt.Errorf("index status: %w", err)
	}
	return fromIndexStatus(status), nil
}
