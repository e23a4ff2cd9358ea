// Package store persists discovery results for dashboards and the CLI.
// The engine itself never writes here; only the command layer does, after a
// discovery completes.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"critpath/internal/discovery"
)

// DefaultDBPath is the default relative path for the SQLite DB.
// Resolve against cwd; Open() creates the parent dir (.critpath).
const DefaultDBPath = ".critpath/critpath.db"

// Run is one discovery invocation: the window it covered, the strategy that
// produced the result, and how many paths came out.
type Run struct {
	ID           int64
	CreatedAt    string
	StartTime    string
	EndTime      string
	DiscoveredBy string
	Source       string // snapshot file or collector URL
	PathCount    int
}

// PathRecord is one persisted critical path, flattened for storage.
type PathRecord struct {
	ID           int64
	RunID        int64
	PathID       string
	Name         string
	Description  string
	Services     []string
	StartService string
	EndService   string
	RequestCount int64
	AvgLatency   float64
	ErrorRate    float64
	P99Latency   float64
	Priority     string
	Severity     float64
	LastUpdated  string
}

// Store is the persistence facade. CLI and MCP code use only this interface;
// the implementation is SQLite or in-memory.
type Store interface {
	// CreateRun inserts a run and returns its id.
	CreateRun(run *Run) (int64, error)
	// GetRun returns the run by id, or an error if it does not exist.
	GetRun(id int64) (*Run, error)
	// ListRuns returns all runs, newest first.
	ListRuns() ([]*Run, error)
	// SavePath inserts one path record and returns its id.
	SavePath(rec *PathRecord) (int64, error)
	// ListPathsByRun returns all paths of a run in insertion order.
	ListPathsByRun(runID int64) ([]*PathRecord, error)
	// Close releases underlying resources.
	Close() error
}

// RecordFromPath flattens an assembled critical path for storage under the
// given run.
func RecordFromPath(runID int64, p discovery.CriticalPath) *PathRecord {
	return &PathRecord{
		RunID:        runID,
		PathID:       p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Services:     p.Services,
		StartService: p.StartService,
		EndService:   p.EndService,
		RequestCount: p.Metrics.RequestCount,
		AvgLatency:   p.Metrics.AvgLatency,
		ErrorRate:    p.Metrics.ErrorRate,
		P99Latency:   p.Metrics.P99Latency,
		Priority:     string(p.Priority),
		Severity:     p.Severity,
		LastUpdated:  p.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func marshalServices(services []string) (string, error) {
	data, err := json.Marshal(services)
	if err != nil {
		return "", fmt.Errorf("marshal services: %w", err)
	}
	return string(data), nil
}

func unmarshalServices(raw string) ([]string, error) {
	var services []string
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, fmt.Errorf("unmarshal services: %w", err)
	}
	return services, nil
}
