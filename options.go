package leadsearch

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver     string
	addrs      []string
	password   string
	recordPath string
	keyPrefix  string

	batchSize int
	workers   int

	maxResults      int
	defaultPageSize int
	maxPageSize     int

	logger *zap.Logger
}

// WithRecordStore sets the SQLite record store path. Required.
func WithRecordStore(path string) Option {
	return func(c *clientConfig) {
		c.recordPath = path
	}
}

// WithRedis attaches a Redis cache/index store.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithValkey attaches a Valkey cache/index store.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix overrides the cache key namespace (default "leadsearch:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithIndexing sets bulk indexing batch size and worker count.
func WithIndexing(batchSize, workers int) Option {
	return func(c *clientConfig) {
		c.batchSize = batchSize
		c.workers = workers
	}
}

// WithSearchLimits sets the result-set cap and page size bounds.
func WithSearchLimits(maxResults, defaultPageSize, maxPageSize int) Option {
	return func(c *clientConfig) {
		c.maxResults = maxResults
		c.defaultPageSize = defaultPageSize
		c.maxPageSize = maxPageSize
	}
}

// WithLogger sets the zap logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
