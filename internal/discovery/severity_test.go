package discovery

import (
	"math"
	"testing"
)

func TestClassifySeverity_Base(t *testing.T) {
	tests := []struct {
		priority Priority
		want     float64
	}{
		{PriorityCritical, 0.9},
		{PriorityHigh, 0.7},
		{PriorityMedium, 0.5},
		{PriorityLow, 0.3},
		{Priority("bogus"), 0.3},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			got := ClassifySeverity(tt.priority, PathMetrics{})
			if got != tt.want {
				t.Errorf("ClassifySeverity(%s, zero) = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestClassifySeverity_Adjustments(t *testing.T) {
	tests := []struct {
		name string
		m    PathMetrics
		want float64
	}{
		{"high error rate", PathMetrics{ErrorRate: 0.2}, 0.4},
		{"moderate error rate", PathMetrics{ErrorRate: 0.06}, 0.35},
		{"high tail latency", PathMetrics{P99Latency: 6000}, 0.4},
		{"moderate tail latency", PathMetrics{P99Latency: 3000}, 0.35},
		{"high demand", PathMetrics{RequestCount: 20000}, 0.35},
		{"all adjustments", PathMetrics{ErrorRate: 0.2, P99Latency: 6000, RequestCount: 20000}, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySeverity(PriorityLow, tt.m)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ClassifySeverity(low, %+v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestClassifySeverity_Clamped(t *testing.T) {
	m := PathMetrics{ErrorRate: 0.5, P99Latency: 10000, RequestCount: 50000}
	got := ClassifySeverity(PriorityCritical, m)
	if got != 1.0 {
		t.Errorf("ClassifySeverity(critical, worst) = %v, want 1.0", got)
	}
}

// Severity must never decrease when a metric crosses further thresholds.
func TestClassifySeverity_Monotonic(t *testing.T) {
	errRates := []float64{0, 0.05, 0.06, 0.1, 0.11}
	prev := -1.0
	for _, e := range errRates {
		got := ClassifySeverity(PriorityMedium, PathMetrics{ErrorRate: e})
		if got < prev {
			t.Errorf("severity decreased at errorRate=%v: %v < %v", e, got, prev)
		}
		prev = got
	}

	p99s := []float64{0, 2000, 2001, 5000, 5001}
	prev = -1.0
	for _, p := range p99s {
		got := ClassifySeverity(PriorityMedium, PathMetrics{P99Latency: p})
		if got < prev {
			t.Errorf("severity decreased at p99=%v: %v < %v", p, got, prev)
		}
		prev = got
	}
}

func TestClassifySeverity_InRange(t *testing.T) {
	priorities := []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
	metrics := []PathMetrics{
		{},
		{ErrorRate: 1, P99Latency: 99999, RequestCount: 1 << 40},
		{ErrorRate: 0.07, P99Latency: 2500},
	}
	for _, p := range priorities {
		for _, m := range metrics {
			got := ClassifySeverity(p, m)
			if got < 0 || got > 1 {
				t.Errorf("ClassifySeverity(%s, %+v) = %v out of [0,1]", p, m, got)
			}
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		m    PathMetrics
		want Priority
	}{
		{"critical by demand and errors", PathMetrics{RequestCount: 20000, ErrorRate: 0.06}, PriorityCritical},
		{"critical by tail latency", PathMetrics{P99Latency: 5001}, PriorityCritical},
		{"high by demand", PathMetrics{RequestCount: 6000}, PriorityHigh},
		{"high by errors", PathMetrics{ErrorRate: 0.06}, PriorityHigh},
		{"high by tail latency", PathMetrics{P99Latency: 2001}, PriorityHigh},
		{"medium by demand", PathMetrics{RequestCount: 1001}, PriorityMedium},
		{"medium by latency", PathMetrics{AvgLatency: 501}, PriorityMedium},
		{"low otherwise", PathMetrics{}, PriorityLow},
		{"demand alone is not critical", PathMetrics{RequestCount: 20000}, PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPriority(tt.m); got != tt.want {
				t.Errorf("ClassifyPriority(%+v) = %q, want %q", tt.m, got, tt.want)
			}
		})
	}
}
