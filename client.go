// Package leadsearch provides an embedded client for the lead search
// engine: the same indexing and ranking pipeline the API server runs,
// wired in-process over a SQLite record store and an optional
// Redis/Valkey cache store.
package leadsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/huntly/leadsearch/internal/db"
	dbRedis "github.com/huntly/leadsearch/internal/db/redis"
	cacherepo "github.com/huntly/leadsearch/internal/repository/cache"
	leadsrepo "github.com/huntly/leadsearch/internal/repository/leads"
	engineuc "github.com/huntly/leadsearch/internal/usecase/engine"
	indexeruc "github.com/huntly/leadsearch/internal/usecase/indexer"
	"github.com/huntly/leadsearch/internal/usecase/query"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the leadsearch embedded entry point.
type Client struct {
	repo    *leadsrepo.Repo
	store   db.Store
	engine  *engineuc.Service
	indexer *indexeruc.Service
}

// New creates a leadsearch Client. A record store path is required; a
// cache store is optional, without one search falls back to the record
// store and the token index is unavailable.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: "leadsearch:",
		batchSize: 100,
		workers:   4,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.recordPath == "" {
		return nil, errors.New("leadsearch: record store path required (use WithRecordStore)")
	}

	repo, err := leadsrepo.New(cfg.recordPath)
	if err != nil {
		return nil, fmt.Errorf("leadsearch: open record store: %w", err)
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			_ = repo.Close()
			return nil, fmt.Errorf("leadsearch: cache store not ready: %w", err)
		}
	}

	return wireClient(repo, store, cfg)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("leadsearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("leadsearch: unknown driver %q", cfg.driver)
	}
}

func wireClient(repo *leadsrepo.Repo, store db.Store, cfg *clientConfig) (*Client, error) {
	cacheLayer := cacherepo.New(store, cacherepo.Config{
		KeyPrefix:      cfg.keyPrefix,
		SearchTTL:      time.Hour,
		LeadTTL:        2 * time.Hour,
		UserPrefsTTL:   24 * time.Hour,
		AnalyticsTTL:   30 * time.Minute,
		SuggestionsTTL: 30 * time.Minute,
	}, cfg.logger)

	idx, err := indexeruc.New(repo, cacheLayer, cfg.logger, cfg.batchSize, cfg.workers)
	if err != nil {
		if store != nil {
			store.Close()
		}
		_ = repo.Close()
		return nil, fmt.Errorf("leadsearch: create indexer: %w", err)
	}

	eng := engineuc.New(repo, idx, cacheLayer, query.New(), engineuc.Config{
		MaxResults:      cfg.maxResults,
		DefaultPageSize: cfg.defaultPageSize,
		MaxPageSize:     cfg.maxPageSize,
	}, cfg.logger)

	return &Client{
		repo:    repo,
		store:   store,
		engine:  eng,
		indexer: idx,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.indexer != nil {
		c.indexer.Release()
	}
	if c.store != nil {
		c.store.Close()
	}
	if c.repo != nil {
		_ = c.repo.Close()
	}
}

// Ping checks record store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.repo.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
