// Package topology defines the read-only service call statistics consumed by
// the discovery engine: per-service metrics aggregated over a time window,
// plus loading and fetching of topology snapshots.
package topology

import "time"

// TimeRange is the window a snapshot was aggregated over. It is echoed into
// discovery output metadata and not re-validated by the engine.
type TimeRange struct {
	StartTime time.Time `json:"startTime" yaml:"startTime"`
	EndTime   time.Time `json:"endTime" yaml:"endTime"`
}

// DependencyMetrics describes one outgoing edge of a service: aggregated call
// statistics toward a single downstream target.
type DependencyMetrics struct {
	TargetService string  `json:"targetService" yaml:"targetService"`
	CallCount     int64   `json:"callCount" yaml:"callCount"`
	ErrorRate     float64 `json:"errorRate" yaml:"errorRate"`
	AvgLatency    float64 `json:"avgLatency" yaml:"avgLatency"`
}

// ServiceMetrics is the aggregated call profile of one service over the
// snapshot window. ServiceName is the unique key. Latencies are milliseconds,
// ErrorRate is in [0,1]. Snapshots are owned by the collector that produced
// them; the engine treats them as immutable.
type ServiceMetrics struct {
	ServiceName  string              `json:"serviceName" yaml:"serviceName"`
	CallCount    int64               `json:"callCount" yaml:"callCount"`
	ErrorRate    float64             `json:"errorRate" yaml:"errorRate"`
	AvgLatency   float64             `json:"avgLatency" yaml:"avgLatency"`
	P99Latency   float64             `json:"p99Latency" yaml:"p99Latency"`
	Dependencies []DependencyMetrics `json:"dependencies" yaml:"dependencies"`
}

// Snapshot bundles the service metrics with the window they cover. This is
// the unit the CLI loads from disk or fetches from a collector.
type Snapshot struct {
	TimeRange TimeRange        `json:"timeRange" yaml:"timeRange"`
	Services  []ServiceMetrics `json:"services" yaml:"services"`
}
