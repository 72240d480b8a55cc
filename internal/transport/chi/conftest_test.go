package chi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/domain"
	engineuc "github.com/huntly/leadsearch/internal/usecase/engine"
	healthuc "github.com/huntly/leadsearch/internal/usecase/health"
	indexeruc "github.com/huntly/leadsearch/internal/usecase/indexer"
	"github.com/huntly/leadsearch/internal/usecase/query"
)

// fakeStore is an in-memory record store serving both the engine and
// the indexer contracts.
type fakeStore struct {
	mu      sync.Mutex
	leads   map[int64]domain.Lead
	pingErr error
}

func newFakeStore(leads ...domain.Lead) *fakeStore {
	s := &fakeStore{leads: make(map[int64]domain.Lead)}
	for _, l := range leads {
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.leads))
	for id := range s.leads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *fakeStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}

func (s *fakeStore) Search(
	_ context.Context, _, _ []string, _ domain.Filters, limit int,
) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Lead
	for _, id := range s.sortedIDs() {
		if len(out) >= limit {
			break
		}
		out = append(out, s.leads[id])
	}
	return out, nil
}

func (s *fakeStore) FilterByPredicates(
	_ context.Context, ids []int64, _ domain.Filters,
) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Lead
	for _, id := range ids {
		if l, ok := s.leads[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) DistinctPrefix(
	_ context.Context, column, prefix string, limit int,
) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, id := range s.sortedIDs() {
		l := s.leads[id]
		v := l.Company
		if column == "industry" {
			v = l.Industry
		}
		if v == "" || !strings.HasPrefix(strings.ToLower(v), strings.ToLower(prefix)) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) FindByID(_ context.Context, id int64) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, nil
}

func (s *fakeStore) ListBatch(_ context.Context, ids []int64, offset, limit int) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ids == nil {
		ids = s.sortedIDs()
	}
	if offset >= len(ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	var out []domain.Lead
	for _, id := range ids[offset:end] {
		if l, ok := s.leads[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads), nil
}

func (s *fakeStore) CountIndexed(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.leads {
		if l.IndexedAt != nil {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CountByIDs(_ context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := s.leads[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) UpdateIndexedAt(_ context.Context, id int64, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return domain.ErrLeadNotFound
	}
	l.IndexedAt = &t
	s.leads[id] = l
	return nil
}

// fakeCache is an in-memory cache/index store serving both the engine
// and the indexer contracts.
type fakeCache struct {
	mu          sync.Mutex
	results     map[string][]domain.SearchResult
	projections map[int64]domain.IndexedLead
	prefs       map[int64]domain.Preferences
	suggestions map[string][]string
	popular     []string
	postings    map[string]map[int64]struct{}
	jobs        map[string]domain.IndexJob
	healthErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		results:     make(map[string][]domain.SearchResult),
		projections: make(map[int64]domain.IndexedLead),
		prefs:       make(map[int64]domain.Preferences),
		suggestions: make(map[string][]string),
		postings:    make(map[string]map[int64]struct{}),
		jobs:        make(map[string]domain.IndexJob),
	}
}

func (c *fakeCache) GetSearchResults(_ context.Context, shape domain.QueryShape) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[shape.Text]
	return r, ok
}

func (c *fakeCache) PutSearchResults(_ context.Context, shape domain.QueryShape, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[shape.Text] = results
}

func (c *fakeCache) InvalidateSearchResults(context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.results)
	c.results = make(map[string][]domain.SearchResult)
	return n
}

func (c *fakeCache) GetLead(_ context.Context, id int64) (domain.IndexedLead, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.projections[id]
	return l, ok
}

func (c *fakeCache) PutLead(_ context.Context, lead domain.IndexedLead) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projections[lead.ID] = lead
}

func (c *fakeCache) DeleteLead(_ context.Context, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.projections, id)
}

func (c *fakeCache) GetPreferences(_ context.Context, userID int64) (domain.Preferences, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.prefs[userID]
	return p, ok
}

func (c *fakeCache) PutPreferences(_ context.Context, userID int64, prefs domain.Preferences) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs[userID] = prefs
}

func (c *fakeCache) GetSuggestions(_ context.Context, prefix string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.suggestions[prefix]
	return s, ok
}

func (c *fakeCache) PutSuggestions(_ context.Context, prefix string, suggestions []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions[prefix] = suggestions
}

func (c *fakeCache) RecordPopularSearch(_ context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.popular = append(c.popular, strings.ToLower(strings.TrimSpace(text)))
}

func (c *fakeCache) PopularSearches(_ context.Context, n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.popular) > n {
		return c.popular[:n]
	}
	return c.popular
}

func (c *fakeCache) HealthCheck(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthErr
}

func (c *fakeCache) AddToIndex(_ context.Context, leadID int64, tokens []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tok := range tokens {
		if c.postings[tok] == nil {
			c.postings[tok] = make(map[int64]struct{})
		}
		c.postings[tok][leadID] = struct{}{}
	}
	return nil
}

func (c *fakeCache) RemoveFromIndex(_ context.Context, leadID int64, tokens []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tok := range tokens {
		delete(c.postings[tok], leadID)
		if len(c.postings[tok]) == 0 {
			delete(c.postings, tok)
		}
	}
	return nil
}

func (c *fakeCache) IndexIntersection(_ context.Context, tokens []string) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []int64
	for id := range c.postings[tokens[0]] {
		inAll := true
		for _, tok := range tokens[1:] {
			if _, ok := c.postings[tok][id]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out, nil
}

func (c *fakeCache) ClearIndex(context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.postings)
	c.postings = make(map[string]map[int64]struct{})
	return n
}

func (c *fakeCache) GetJob(_ context.Context, id string) (domain.IndexJob, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok := c.jobs[id]
	if !ok {
		return domain.IndexJob{}, domain.ErrJobNotFound
	}
	return j, nil
}

func (c *fakeCache) PutJob(_ context.Context, job domain.IndexJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs[job.ID] = job
}

// newTestRouter wires a full server over in-memory fakes.
func newTestRouter(t *testing.T, store *fakeStore, cache *fakeCache) chi.Router {
	t.Helper()
	logger := zap.NewNop()

	idx, err := indexeruc.New(store, cache, logger, 10, 2)
	if err != nil {
		t.Fatalf("indexer: %v", err)
	}
	t.Cleanup(idx.Release)

	eng := engineuc.New(store, idx, cache, query.New(), engineuc.Config{}, logger)
	srv := NewServer(eng, idx, healthuc.New(store, cache), logger)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}
