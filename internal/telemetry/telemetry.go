// Package telemetry exposes discovery counters and latency over Prometheus.
// It implements discovery.Observer.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records discovery outcomes. Safe for concurrent use.
type Metrics struct {
	runs               *prometheus.CounterVec
	generationFailures prometheus.Counter
	duration           prometheus.Histogram
}

// New creates the metric set and registers it on reg. Pass
// prometheus.DefaultRegisterer for process-wide metrics or a fresh registry
// in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "critpath",
			Name:      "discovery_runs_total",
			Help:      "Completed discovery runs by strategy.",
		}, []string{"strategy"}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "critpath",
			Name:      "generation_failures_total",
			Help:      "Generation or interpretation failures that triggered statistical fallback.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "critpath",
			Name:      "discovery_duration_seconds",
			Help:      "Wall time of one discovery run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.generationFailures, m.duration)
	return m
}

// ObserveDiscovery implements discovery.Observer.
func (m *Metrics) ObserveDiscovery(strategy string, elapsed time.Duration) {
	m.runs.WithLabelValues(strategy).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveGenerationFailure implements discovery.Observer.
func (m *Metrics) ObserveGenerationFailure() {
	m.generationFailures.Inc()
}
