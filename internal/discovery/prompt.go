package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"text/template"

	"critpath/internal/topology"
)

// topServiceLimit caps how many services the simplified prompt keeps when the
// topology is large: the top N by call count.
const topServiceLimit = 20

// promptService is the compact per-service projection embedded in the prompt.
// Dropping dependency metrics and keeping only target names cuts the payload
// by roughly 90% versus the raw snapshot.
type promptService struct {
	Name    string   `json:"name"`
	Calls   int64    `json:"calls"`
	Errors  float64  `json:"errors"`
	Latency float64  `json:"latency"`
	Deps    []string `json:"deps"`
}

const promptTemplate = `You are analyzing a microservice call topology to identify critical business paths.

Topology (per-service call statistics for the analysis window):
{{.Topology}}

Identify 5-10 critical end-to-end request paths. Focus on diverse business flows
(checkout, login, search, ...), not technical variants of the same flow.

Respond with ONLY a JSON object, no markdown, no explanation:
{"paths": [{"name": "...", "description": "...", "services": ["svc-a", "svc-b"], "priority": "critical|high|medium|low", "severity": 0.0}]}

Rules:
- services must be ordered from entry point to final dependency, using exact service names from the topology
- priority reflects business impact
- severity is a number between 0 and 1
`

var promptTmpl = template.Must(template.New("discover").Parse(promptTemplate))

// BuildPrompt serializes the topology into a generation instruction. When the
// topology has more services than topServiceLimit, only the top services by
// call count are included. Pure function, no side effects.
func BuildPrompt(services []topology.ServiceMetrics) (string, error) {
	view := make([]promptService, 0, len(services))
	for _, s := range services {
		deps := make([]string, 0, len(s.Dependencies))
		for _, d := range s.Dependencies {
			deps = append(deps, d.TargetService)
		}
		view = append(view, promptService{
			Name:    s.ServiceName,
			Calls:   s.CallCount,
			Errors:  s.ErrorRate,
			Latency: s.AvgLatency,
			Deps:    deps,
		})
	}

	if len(view) > topServiceLimit {
		sort.SliceStable(view, func(i, j int) bool { return view[i].Calls > view[j].Calls })
		view = view[:topServiceLimit]
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("marshal topology view: %w", err)
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, struct{ Topology string }{Topology: string(payload)}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
