package discovery

import (
	"time"

	"critpath/internal/topology"
)

// unknownService is the endpoint name used when a candidate reaches assembly
// with an empty service list.
const unknownService = "unknown"

// AssemblePath turns a scored candidate into the final output record. Edges
// are the consecutive pairs of the service list, so len(edges) is always
// len(services)-1 (zero for a single-service path). Severity is clamped to
// [0,1] as a final guard.
func AssemblePath(c CandidatePath, id string, m PathMetrics, discoveredBy string, tr topology.TimeRange, now time.Time) CriticalPath {
	edges := make([]PathEdge, 0, max(len(c.Services)-1, 0))
	for i := 0; i+1 < len(c.Services); i++ {
		edges = append(edges, PathEdge{Source: c.Services[i], Target: c.Services[i+1]})
	}

	start, end := unknownService, unknownService
	if len(c.Services) > 0 {
		start = c.Services[0]
		end = c.Services[len(c.Services)-1]
	}

	severity := c.Severity
	if severity < 0 {
		severity = 0
	}
	if severity > 1 {
		severity = 1
	}

	return CriticalPath{
		ID:           id,
		Name:         c.Name,
		Description:  c.Description,
		Services:     c.Services,
		StartService: start,
		EndService:   end,
		Edges:        edges,
		Metrics:      m,
		Priority:     c.Priority,
		Severity:     severity,
		LastUpdated:  now,
		Metadata: PathMetadata{
			DiscoveredBy: discoveredBy,
			TimeRange:    tr,
		},
	}
}
