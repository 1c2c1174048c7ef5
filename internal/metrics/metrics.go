package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the console's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "fetches_total",
			Help:      "Total number of pending deposit fetches by result.",
		},
		[]string{"result"},
	)

	staleResponses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "stale_responses_total",
			Help:      "Fetch completions discarded because a newer fetch was issued.",
		},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "mutations_total",
			Help:      "Total number of review actions by action and result.",
		},
		[]string{"action", "result"},
	)

	rollbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "rollbacks_total",
			Help:      "Optimistic status changes reverted after a failed action.",
		},
		[]string{"action"},
	)

	fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of pending deposit fetches.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
	)

	requestsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "topmart_admin",
			Subsystem: "deposits",
			Name:      "requests",
			Help:      "Deposit requests currently held by the workflow, by status.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		fetches,
		staleResponses,
		mutations,
		rollbacks,
		fetchDuration,
		requestsByStatus,
	)
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordFetch counts a fetch and observes its duration
func RecordFetch(result string, seconds float64) {
	fetches.WithLabelValues(result).Inc()
	fetchDuration.Observe(seconds)
}

func RecordStaleResponse() {
	staleResponses.Inc()
}

func RecordMutation(action, result string) {
	mutations.WithLabelValues(action, result).Inc()
}

func RecordRollback(action string) {
	rollbacks.WithLabelValues(action).Inc()
}

// SetRequestCounts publishes the per-status totals
func SetRequestCounts(pending, approved, rejected int) {
	requestsByStatus.WithLabelValues("pending").Set(float64(pending))
	requestsByStatus.WithLabelValues("approved").Set(float64(approved))
	requestsByStatus.WithLabelValues("rejected").Set(float64(rejected))
}
