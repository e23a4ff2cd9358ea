// Package discovery implements the critical path discovery engine: a
// generation-backed primary strategy that asks a language model to propose
// end-to-end request flows, with a deterministic statistical fallback that
// guarantees a usable result, plus the shared metric aggregation and
// severity scoring both strategies feed into.
package discovery

import (
	"time"

	"critpath/internal/topology"
)

// Priority is the business priority of a critical path.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Strategy names recorded in path metadata.
const (
	DiscoveredByLLM         = "llm"
	DiscoveredByStatistical = "statistical"
)

// CandidatePath is an intermediate path proposal produced by either strategy,
// before metrics aggregation and assembly. Services[0] is the start service.
// Priority may be empty for generated candidates that did not declare one;
// the orchestrator derives it from metrics in that case.
type CandidatePath struct {
	Name        string
	Description string
	Services    []string
	Priority    Priority
	Severity    float64
}

// PathMetrics are the aggregated metrics of one path across its resolved
// services: entry-point demand, cumulative latency, and the worst hop error
// rate.
type PathMetrics struct {
	RequestCount int64   `json:"requestCount"`
	AvgLatency   float64 `json:"avgLatency"`
	ErrorRate    float64 `json:"errorRate"`
	P99Latency   float64 `json:"p99Latency"`
}

// PathEdge is one hop of a path.
type PathEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// PathMetadata records how and for which window a path was discovered.
type PathMetadata struct {
	DiscoveredBy string             `json:"discoveredBy"`
	TimeRange    topology.TimeRange `json:"timeRange"`
}

// CriticalPath is the assembled output record: a named, ordered sequence of
// services with its edges, aggregated metrics, and severity scoring. Edges
// always has exactly len(Services)-1 entries (zero for single-service paths).
// Instances are created fresh per discovery call and never mutated after
// assembly.
type CriticalPath struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Services     []string     `json:"services"`
	StartService string       `json:"startService"`
	EndService   string       `json:"endService"`
	Edges        []PathEdge   `json:"edges"`
	Metrics      PathMetrics  `json:"metrics"`
	Priority     Priority     `json:"priority"`
	Severity     float64      `json:"severity"`
	LastUpdated  time.Time    `json:"lastUpdated"`
	Metadata     PathMetadata `json:"metadata"`
}
