package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache store is down; search still works
	// through the record store.
	Degraded Status = "degraded"
	// Unhealthy indicates the record store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	records RecordPinger
	cache   CacheChecker
}

// New creates a Service. cache can be nil.
func New(records RecordPinger, cache CacheChecker) *Service {
	return &Service{records: records, cache: cache}
}

// Check runs health checks against all components. The record store is
// load-bearing; a cache store failure only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.records.Ping(ctx); err != nil {
		checks["record_store"] = CheckError
		status = Unhealthy
	} else {
		checks["record_store"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.HealthCheck(ctx); err != nil {
			checks["cache_store"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["cache_store"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
