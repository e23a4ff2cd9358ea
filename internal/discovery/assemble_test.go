package discovery

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"critpath/internal/topology"
)

func TestAssemblePath_Edges(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		want     []PathEdge
	}{
		{"three hops", []string{"a", "b", "c"}, []PathEdge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}},
		{"two hops", []string{"a", "b"}, []PathEdge{{Source: "a", Target: "b"}}},
		{"single service", []string{"a"}, []PathEdge{}},
		{"empty", nil, []PathEdge{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AssemblePath(CandidatePath{Services: tt.services}, "path-1", PathMetrics{}, DiscoveredByStatistical, topology.TimeRange{}, time.Now())
			if diff := cmp.Diff(tt.want, p.Edges); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
			if want := max(len(tt.services)-1, 0); len(p.Edges) != want {
				t.Errorf("len(edges) = %d, want %d", len(p.Edges), want)
			}
		})
	}
}

func TestAssemblePath_Endpoints(t *testing.T) {
	p := AssemblePath(CandidatePath{Services: []string{"a", "b", "c"}}, "path-1", PathMetrics{}, DiscoveredByLLM, topology.TimeRange{}, time.Now())
	if p.StartService != "a" || p.EndService != "c" {
		t.Errorf("endpoints = %q..%q, want a..c", p.StartService, p.EndService)
	}

	empty := AssemblePath(CandidatePath{}, "custom", PathMetrics{}, DiscoveredByStatistical, topology.TimeRange{}, time.Now())
	if empty.StartService != "unknown" || empty.EndService != "unknown" {
		t.Errorf("empty endpoints = %q..%q, want unknown..unknown", empty.StartService, empty.EndService)
	}
}

func TestAssemblePath_SeverityClamped(t *testing.T) {
	over := AssemblePath(CandidatePath{Severity: 1.4}, "path-1", PathMetrics{}, DiscoveredByLLM, topology.TimeRange{}, time.Now())
	if over.Severity != 1 {
		t.Errorf("severity = %v, want clamped to 1", over.Severity)
	}
	under := AssemblePath(CandidatePath{Severity: -0.2}, "path-1", PathMetrics{}, DiscoveredByLLM, topology.TimeRange{}, time.Now())
	if under.Severity != 0 {
		t.Errorf("severity = %v, want clamped to 0", under.Severity)
	}
}

func TestAssemblePath_Metadata(t *testing.T) {
	tr := topology.TimeRange{
		StartTime: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 1, 1, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC)
	p := AssemblePath(CandidatePath{Services: []string{"a"}}, "path-3", PathMetrics{}, DiscoveredByLLM, tr, now)

	if p.ID != "path-3" {
		t.Errorf("id = %q, want path-3", p.ID)
	}
	if p.Metadata.DiscoveredBy != DiscoveredByLLM {
		t.Errorf("discoveredBy = %q, want llm", p.Metadata.DiscoveredBy)
	}
	if !p.Metadata.TimeRange.StartTime.Equal(tr.StartTime) || !p.Metadata.TimeRange.EndTime.Equal(tr.EndTime) {
		t.Errorf("timeRange not echoed: %+v", p.Metadata.TimeRange)
	}
	if !p.LastUpdated.Equal(now) {
		t.Errorf("lastUpdated = %v, want %v", p.LastUpdated, now)
	}
}
