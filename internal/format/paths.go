package format

import (
	"fmt"
	"strings"

	"critpath/internal/discovery"
)

// PathTable renders discovered critical paths as a table.
func PathTable(m Mode, paths []discovery.CriticalPath) string {
	t := NewTable(m)
	t.Header("ID", "NAME", "PATH", "PRIORITY", "SEVERITY", "REQS", "ERR%", "P99 MS")
	t.Columns(
		ColumnConfig{Number: 3, Align: AlignLeft, MaxWidth: 60},
		ColumnConfig{Number: 5, Align: AlignRight},
		ColumnConfig{Number: 6, Align: AlignRight},
		ColumnConfig{Number: 7, Align: AlignRight},
		ColumnConfig{Number: 8, Align: AlignRight},
	)
	for _, p := range paths {
		t.Row(
			p.ID,
			Truncate(p.Name, 32),
			strings.Join(p.Services, " → "),
			string(p.Priority),
			fmt.Sprintf("%.2f", p.Severity),
			FmtCount(p.Metrics.RequestCount),
			fmt.Sprintf("%.2f", p.Metrics.ErrorRate*100),
			fmt.Sprintf("%.0f", p.Metrics.P99Latency),
		)
	}
	return t.String()
}

// FmtCount formats a call count with K/M suffix for readability.
func FmtCount(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%d", n)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
