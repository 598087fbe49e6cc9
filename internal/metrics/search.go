package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartprop",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"}, // "ok" / "invalid_input" / "error"
	)

	SearchPredicatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartprop",
			Name:      "search_predicates_total",
			Help:      "Predicates extracted from search queries",
		},
		[]string{"kind"}, // "range" / "exact" / "keyword"
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartprop",
			Name:      "search_candidates",
			Help:      "Number of properties ranked per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartprop",
			Name:      "search_results",
			Help:      "Number of properties returned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartprop",
			Name:      "search_duration_seconds",
			Help:      "Time spent extracting terms and ranking, excluding storage reads",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchPredicatesTotal)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchDuration)
	searchMetricsRegistered = true
}
