package discovery

import (
	"fmt"
	"sort"

	"critpath/internal/topology"
)

const (
	// maxEntryPoints bounds how many walks the fallback starts.
	maxEntryPoints = 5
	// maxPathLength is the cycle guard: a walk never exceeds this many hops.
	maxPathLength = 10
)

// StatisticalPaths is the deterministic fallback strategy. It finds entry
// points (services never appearing as a dependency target), takes the top
// five by call count, and greedily walks the highest-traffic dependency
// chain from each, classifying priority and severity from fixed thresholds.
// It is pure CPU work and never fails; an empty topology yields an empty
// result.
func StatisticalPaths(services []topology.ServiceMetrics) []CandidatePath {
	byName := make(map[string]*topology.ServiceMetrics, len(services))
	isTarget := make(map[string]bool)
	for i := range services {
		byName[services[i].ServiceName] = &services[i]
		for _, d := range services[i].Dependencies {
			isTarget[d.TargetService] = true
		}
	}

	var entries []*topology.ServiceMetrics
	for i := range services {
		if !isTarget[services[i].ServiceName] {
			entries = append(entries, &services[i])
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CallCount > entries[j].CallCount })
	if len(entries) > maxEntryPoints {
		entries = entries[:maxEntryPoints]
	}

	paths := make([]CandidatePath, 0, len(entries))
	for i, entry := range entries {
		chain := walkHighestTraffic(entry.ServiceName, byName)
		cand := classifyChain(chain, byName)
		cand.Name = fmt.Sprintf("Path %d (%s)", i+1, entry.ServiceName)
		cand.Description = fmt.Sprintf("High-traffic dependency chain starting at %s", entry.ServiceName)
		paths = append(paths, cand)
	}
	return paths
}

// walkHighestTraffic follows the unvisited downstream neighbor with the
// highest call count from each hop. First-encountered order breaks ties.
// The walk stops when no unvisited neighbor remains or at maxPathLength.
func walkHighestTraffic(start string, byName map[string]*topology.ServiceMetrics) []string {
	chain := []string{start}
	visited := map[string]bool{start: true}
	current := start

	for len(chain) < maxPathLength {
		svc := byName[current]
		if svc == nil {
			break
		}
		next := ""
		var nextCalls int64 = -1
		for _, d := range svc.Dependencies {
			if visited[d.TargetService] {
				continue
			}
			calls := int64(0)
			if t := byName[d.TargetService]; t != nil {
				calls = t.CallCount
			}
			if calls > nextCalls {
				next = d.TargetService
				nextCalls = calls
			}
		}
		if next == "" {
			break
		}
		chain = append(chain, next)
		visited[next] = true
		current = next
	}
	return chain
}

// classifyChain computes chain aggregates and applies the fixed priority
// thresholds; the first matching row wins. Services missing from the
// topology contribute zero to the aggregates.
func classifyChain(chain []string, byName map[string]*topology.ServiceMetrics) CandidatePath {
	var totalCalls int64
	var sumErr, sumLatency float64
	for _, name := range chain {
		if svc := byName[name]; svc != nil {
			totalCalls += svc.CallCount
			sumErr += svc.ErrorRate
			sumLatency += svc.AvgLatency
		}
	}
	avgErr := 0.0
	avgLatency := 0.0
	if len(chain) > 0 {
		avgErr = sumErr / float64(len(chain))
		avgLatency = sumLatency / float64(len(chain))
	}

	cand := CandidatePath{Services: chain}
	switch {
	case totalCalls > 10000 && avgErr > 0.01:
		cand.Priority = PriorityCritical
		cand.Severity = 0.9
	case totalCalls > 5000 || avgErr > 0.05:
		cand.Priority = PriorityHigh
		cand.Severity = 0.7
	case avgLatency > 1000:
		cand.Priority = PriorityMedium
		cand.Severity = 0.6
	default:
		cand.Priority = PriorityLow
		cand.Severity = 0.3
	}
	return cand
}
