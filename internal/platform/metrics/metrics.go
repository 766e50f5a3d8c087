// Package metrics provides observability for the wizard engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine and transport.
type Metrics struct {
	// Hydration call latencies by upstream source
	HydrationLatency *prometheus.HistogramVec

	// Hydration call outcomes by source and outcome (success/not_found/failure)
	HydrationOutcome *prometheus.CounterVec

	// Page submissions by task and result (persisted/invalid/rejected)
	Submissions *prometheus.CounterVec

	// HTTP request latency by route and status
	RequestLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		HydrationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caseflow_hydration_duration_seconds",
			Help:    "Duration of external hydration calls by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		HydrationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caseflow_hydration_outcomes_total",
			Help: "Hydration call outcomes by source",
		}, []string{"source", "outcome"}),

		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caseflow_page_submissions_total",
			Help: "Page submissions by task and result",
		}, []string{"task", "result"}),

		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caseflow_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "status"}),
	}
}

// ObserveHydration records one hydration call.
func (m *Metrics) ObserveHydration(source, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.HydrationLatency.WithLabelValues(source).Observe(d.Seconds())
	m.HydrationOutcome.WithLabelValues(source, outcome).Inc()
}

// IncrementSubmission records a page submission result.
func (m *Metrics) IncrementSubmission(task, result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(task, result).Inc()
}

// ObserveRequest records an HTTP request duration.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
