package indexer

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
)

// fakeRecords is an in-memory record store for tests.
type fakeRecords struct {
	mu        sync.Mutex
	leads     map[int64]domain.Lead
	indexed   map[int64]time.Time
	updateErr map[int64]error
}

func newFakeRecords(leads ...domain.Lead) *fakeRecords {
	f := &fakeRecords{
		leads:     map[int64]domain.Lead{},
		indexed:   map[int64]time.Time{},
		updateErr: map[int64]error{},
	}
	for _, lead := range leads {
		f.leads[lead.ID] = lead
	}
	return f
}

func (f *fakeRecords) sortedIDs() []int64 {
	ids := make([]int64, 0, len(f.leads))
	for id := range f.leads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeRecords) FindByID(_ context.Context, id int64) (domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeRecords) ListBatch(_ context.Context, ids []int64, offset, limit int) ([]domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.sortedIDs()
	if len(ids) > 0 {
		want := map[int64]struct{}{}
		for _, id := range ids {
			want[id] = struct{}{}
		}
		filtered := all[:0]
		for _, id := range all {
			if _, ok := want[id]; ok {
				filtered = append(filtered, id)
			}
		}
		all = filtered
	}

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	var out []domain.Lead
	for _, id := range all[offset:end] {
		out = append(out, f.leads[id])
	}
	return out, nil
}

func (f *fakeRecords) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leads), nil
}

func (f *fakeRecords) CountIndexed(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.indexed), nil
}

func (f *fakeRecords) CountByIDs(_ context.Context, ids []int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := f.leads[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeRecords) UpdateIndexedAt(_ context.Context, id int64, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[id]; err != nil {
		return err
	}
	if _, ok := f.leads[id]; !ok {
		return domain.ErrLeadNotFound
	}
	f.indexed[id] = t
	return nil
}

// fakeCache is an in-memory cache/index store for tests.
type fakeCache struct {
	mu       sync.Mutex
	postings map[string]map[int64]struct{}
	leads    map[int64]domain.IndexedLead
	jobs     map[string]domain.IndexJob
	disabled bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		postings: map[string]map[int64]struct{}{},
		leads:    map[int64]domain.IndexedLead{},
		jobs:     map[string]domain.IndexJob{},
	}
}

func (f *fakeCache) GetLead(_ context.Context, id int64) (domain.IndexedLead, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	return lead, ok
}

func (f *fakeCache) PutLead(_ context.Context, lead domain.IndexedLead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[lead.ID] = lead
}

func (f *fakeCache) DeleteLead(_ context.Context, id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.leads, id)
}

func (f *fakeCache) AddToIndex(_ context.Context, leadID int64, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disabled {
		return domain.ErrCorpusUnavailable
	}
	for _, token := range tokens {
		if f.postings[token] == nil {
			f.postings[token] = map[int64]struct{}{}
		}
		f.postings[token][leadID] = struct{}{}
	}
	return nil
}

func (f *fakeCache) RemoveFromIndex(_ context.Context, leadID int64, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disabled {
		return domain.ErrCorpusUnavailable
	}
	for _, token := range tokens {
		delete(f.postings[token], leadID)
		if len(f.postings[token]) == 0 {
			delete(f.postings, token)
		}
	}
	return nil
}

func (f *fakeCache) IndexIntersection(_ context.Context, tokens []string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disabled {
		return nil, domain.ErrCorpusUnavailable
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var ids []int64
	for id := range f.postings[tokens[0]] {
		inAll := true
		for _, token := range tokens[1:] {
			if _, ok := f.postings[token][id]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeCache) ClearIndex(_ context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.postings)
	f.postings = map[string]map[int64]struct{}{}
	return n
}

func (f *fakeCache) GetJob(_ context.Context, id string) (domain.IndexJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return domain.IndexJob{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeCache) PutJob(_ context.Context, job domain.IndexJob) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
}

func newTestIndexer(t *testing.T, records Records, cache Cache) *Service {
	t.Helper()
	svc, err := New(records, cache, zap.NewNop(), 2, 2)
	require.NoError(t, err)
	t.Cleanup(svc.Release)
	return svc
}
