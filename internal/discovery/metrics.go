package discovery

import "critpath/internal/topology"

// AggregateMetrics computes path-level metrics for an ordered service
// sequence. Service names are resolved against the topology by exact match;
// unresolved names are dropped from the computation only (they stay in the
// path's service list). With zero resolved services all metrics are zero.
//
// RequestCount is the call count of the first resolved service, an
// entry-point demand proxy. Latencies accumulate across hops, so AvgLatency
// and P99Latency are sums. ErrorRate is the max across services: one failing
// hop fails the path.
func AggregateMetrics(services []string, topo []topology.ServiceMetrics) PathMetrics {
	byName := make(map[string]*topology.ServiceMetrics, len(topo))
	for i := range topo {
		byName[topo[i].ServiceName] = &topo[i]
	}

	var m PathMetrics
	first := true
	for _, name := range services {
		svc := byName[name]
		if svc == nil {
			continue
		}
		if first {
			m.RequestCount = svc.CallCount
			first = false
		}
		m.AvgLatency += svc.AvgLatency
		m.P99Latency += svc.P99Latency
		if svc.ErrorRate > m.ErrorRate {
			m.ErrorRate = svc.ErrorRate
		}
	}
	return m
}
