// Package mcp exposes the discovery engine over the Model Context Protocol
// so agent clients can run discoveries against snapshot files on disk.
package mcp

import (
	"context"
	"time"

	"critpath/internal/discovery"
	"critpath/internal/topology"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around one discovery orchestrator.
type Server struct {
	MCPServer *sdkmcp.Server
	orch      *discovery.Orchestrator
}

// NewServer creates an MCP server with the discovery tools registered.
func NewServer(orch *discovery.Orchestrator, version string) *Server {
	s := &Server{orch: orch}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "critpath", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "discover_critical_paths",
		Description: "Discover ranked critical request paths from a topology snapshot file (JSON or YAML).",
	}, s.handleDiscover)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_path",
		Description: "Build a single ad hoc path from an ordered service list. Metrics are zero-valued (no topology lookup).",
	}, s.handleAnalyze)
}

// --- Tool input/output types ---

type discoverInput struct {
	SnapshotPath string `json:"snapshot_path" jsonschema:"path to a topology snapshot file (JSON or YAML)"`
	StartTime    string `json:"start_time,omitempty" jsonschema:"RFC3339 window start; overrides the snapshot's own window"`
	EndTime      string `json:"end_time,omitempty" jsonschema:"RFC3339 window end; overrides the snapshot's own window"`
}

type discoverOutput struct {
	Paths        []discovery.CriticalPath `json:"paths"`
	DiscoveredBy string                   `json:"discovered_by,omitempty"`
}

type analyzeInput struct {
	Services []string `json:"services" jsonschema:"ordered service names, entry point first"`
}

type analyzeOutput struct {
	Path discovery.CriticalPath `json:"path"`
}

// --- Tool handlers ---

func (s *Server) handleDiscover(ctx context.Context, _ *sdkmcp.CallToolRequest, input discoverInput) (*sdkmcp.CallToolResult, discoverOutput, error) {
	snap, err := topology.LoadSnapshot(input.SnapshotPath)
	if err != nil {
		return nil, discoverOutput{}, err
	}

	tr := snap.TimeRange
	if input.StartTime != "" && input.EndTime != "" {
		start, err := time.Parse(time.RFC3339, input.StartTime)
		if err != nil {
			return nil, discoverOutput{}, err
		}
		end, err := time.Parse(time.RFC3339, input.EndTime)
		if err != nil {
			return nil, discoverOutput{}, err
		}
		tr = topology.TimeRange{StartTime: start, EndTime: end}
	}

	paths, err := s.orch.DiscoverCriticalPaths(ctx, snap.Services, tr)
	if err != nil {
		return nil, discoverOutput{}, err
	}

	out := discoverOutput{Paths: paths}
	if len(paths) > 0 {
		out.DiscoveredBy = paths[0].Metadata.DiscoveredBy
	}
	return nil, out, nil
}

func (s *Server) handleAnalyze(_ context.Context, _ *sdkmcp.CallToolRequest, input analyzeInput) (*sdkmcp.CallToolResult, analyzeOutput, error) {
	return nil, analyzeOutput{Path: s.orch.AnalyzePath(input.Services)}, nil
}
