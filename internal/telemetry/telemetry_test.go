package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"critpath/internal/discovery"
)

// Metrics must satisfy the engine's observer contract.
var _ discovery.Observer = (*Metrics)(nil)

func TestObserveDiscovery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDiscovery("llm", 100*time.Millisecond)
	m.ObserveDiscovery("statistical", 10*time.Millisecond)
	m.ObserveDiscovery("statistical", 10*time.Millisecond)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("llm")); got != 1 {
		t.Errorf("llm runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("statistical")); got != 2 {
		t.Errorf("statistical runs = %v, want 2", got)
	}
}

func TestObserveGenerationFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveGenerationFailure()
	m.ObserveGenerationFailure()

	if got := testutil.ToFloat64(m.generationFailures); got != 2 {
		t.Errorf("generation failures = %v, want 2", got)
	}
}
