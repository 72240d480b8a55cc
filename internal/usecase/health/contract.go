package health

import "context"

// RecordPinger checks record store availability.
type RecordPinger interface {
	Ping(ctx context.Context) error
}

// CacheChecker checks cache/index store availability.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}
