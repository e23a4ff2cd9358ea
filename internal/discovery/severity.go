package discovery

// ClassifySeverity scores a path in [0,1] from its declared priority and
// observed metrics. The priority sets the base; error rate, tail latency,
// and demand each add an independent adjustment, and the sum is clamped.
func ClassifySeverity(priority Priority, m PathMetrics) float64 {
	severity := baseSeverity(priority)

	switch {
	case m.ErrorRate > 0.1:
		severity += 0.1
	case m.ErrorRate > 0.05:
		severity += 0.05
	}

	switch {
	case m.P99Latency > 5000:
		severity += 0.1
	case m.P99Latency > 2000:
		severity += 0.05
	}

	if m.RequestCount > 10000 {
		severity += 0.05
	}

	if severity > 1 {
		severity = 1
	}
	return severity
}

func baseSeverity(priority Priority) float64 {
	switch priority {
	case PriorityCritical:
		return 0.9
	case PriorityHigh:
		return 0.7
	case PriorityMedium:
		return 0.5
	default:
		return 0.3
	}
}

// ClassifyPriority derives a priority from metrics alone, for candidates
// that did not declare one. First matching branch wins.
func ClassifyPriority(m PathMetrics) Priority {
	switch {
	case (m.RequestCount > 10000 && m.ErrorRate > 0.05) || m.P99Latency > 5000:
		return PriorityCritical
	case m.RequestCount > 5000 || m.ErrorRate > 0.05 || m.P99Latency > 2000:
		return PriorityHigh
	case m.RequestCount > 1000 || m.AvgLatency > 500:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
