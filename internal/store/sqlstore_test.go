package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"critpath/internal/discovery"
	"critpath/internal/topology"
)

func openTestStore(t *testing.T) (*SqlStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "critpath.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleRun() *Run {
	return &Run{
		StartTime:    "2026-08-01T00:00:00Z",
		EndTime:      "2026-08-01T01:00:00Z",
		DiscoveredBy: "statistical",
		Source:       "topo.json",
		PathCount:    2,
	}
}

func TestSqlStore_RunRoundtrip(t *testing.T) {
	s, _ := openTestStore(t)

	id, err := s.CreateRun(sampleRun())
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.DiscoveredBy != "statistical" || got.Source != "topo.json" || got.PathCount != 2 {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.CreatedAt == "" {
		t.Error("createdAt not stamped")
	}
}

func TestSqlStore_GetRun_NotFound(t *testing.T) {
	s, _ := openTestStore(t)
	if _, err := s.GetRun(42); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestSqlStore_ListRuns_NewestFirst(t *testing.T) {
	s, _ := openTestStore(t)
	first, _ := s.CreateRun(sampleRun())
	second, _ := s.CreateRun(sampleRun())

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs not newest-first: %d, %d", runs[0].ID, runs[1].ID)
	}
}

func TestSqlStore_PathRoundtrip(t *testing.T) {
	s, _ := openTestStore(t)
	runID, _ := s.CreateRun(sampleRun())

	rec := &PathRecord{
		RunID:        runID,
		PathID:       "path-1",
		Name:         "Path 1 (gateway)",
		Description:  "High-traffic dependency chain starting at gateway",
		Services:     []string{"gateway", "orders", "payments"},
		StartService: "gateway",
		EndService:   "payments",
		RequestCount: 20000,
		AvgLatency:   300,
		ErrorRate:    0.02,
		P99Latency:   1500,
		Priority:     "critical",
		Severity:     0.9,
		LastUpdated:  "2026-08-01T01:00:00Z",
	}
	if _, err := s.SavePath(rec); err != nil {
		t.Fatalf("save path: %v", err)
	}

	recs, err := s.ListPathsByRun(runID)
	if err != nil {
		t.Fatalf("list paths: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 path, got %d", len(recs))
	}
	got := recs[0]
	if diff := cmp.Diff(rec.Services, got.Services); diff != "" {
		t.Errorf("services mismatch (-want +got):\n%s", diff)
	}
	if got.Priority != "critical" || got.Severity != 0.9 || got.RequestCount != 20000 {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestSqlStore_Reopen(t *testing.T) {
	s, path := openTestStore(t)
	runID, _ := s.CreateRun(sampleRun())
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, err := s2.GetRun(runID); err != nil {
		t.Errorf("run lost across reopen: %v", err)
	}
}

func TestRecordFromPath(t *testing.T) {
	p := discovery.CriticalPath{
		ID:           "path-2",
		Name:         "Checkout",
		Description:  "Order flow",
		Services:     []string{"gateway", "orders"},
		StartService: "gateway",
		EndService:   "orders",
		Metrics: discovery.PathMetrics{
			RequestCount: 100,
			AvgLatency:   20,
			ErrorRate:    0.5,
			P99Latency:   80,
		},
		Priority:    discovery.PriorityHigh,
		Severity:    0.7,
		LastUpdated: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Metadata: discovery.PathMetadata{
			DiscoveredBy: discovery.DiscoveredByLLM,
			TimeRange:    topology.TimeRange{},
		},
	}

	rec := RecordFromPath(7, p)
	if rec.RunID != 7 || rec.PathID != "path-2" || rec.Priority != "high" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.LastUpdated != "2026-08-01T12:00:00Z" {
		t.Errorf("lastUpdated = %q", rec.LastUpdated)
	}
	if rec.ErrorRate != 0.5 || rec.RequestCount != 100 {
		t.Errorf("metrics not flattened: %+v", rec)
	}
}
