package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and indexing Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "leadsearch",
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"source"}, // "cache" / "index" / "fallback"
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadsearch",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadsearch",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 500, 1000},
		},
	)

	IndexedLeadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadsearch",
			Name:      "indexed_leads_total",
			Help:      "Total lead indexing attempts",
		},
		[]string{"status"}, // "success" / "failure"
	)

	BulkIndexDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadsearch",
			Name:      "bulk_index_duration_seconds",
			Help:      "Bulk indexing run duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300, 900},
		},
	)
)

// RegisterSearchMetrics registers search/indexing metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchDuration,
		SearchCacheTotal,
		SearchResultsReturned,
		IndexedLeadsTotal,
		BulkIndexDuration,
	)
}
