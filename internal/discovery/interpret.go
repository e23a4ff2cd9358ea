package discovery

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// jsonFenceRE matches a fenced ```json block anywhere in the generated text,
// non-greedy so only the first block is taken. Models often wrap JSON this
// way despite being told not to.
var jsonFenceRE = regexp.MustCompile("(?s)```json\\s*(.*?)```")

type generatedPath struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Services    []string `json:"services"`
	Priority    string   `json:"priority"`
	Severity    float64  `json:"severity"`
}

type generatedPathList struct {
	Paths []generatedPath `json:"paths"`
}

// ParsePathResponse extracts and validates a candidate path list from
// generated text. Any failure here means the response is unusable; the
// orchestrator substitutes the statistical result and never surfaces the
// error to the caller.
func ParsePathResponse(text string) ([]CandidatePath, error) {
	raw := strings.TrimSpace(text)
	if m := jsonFenceRE.FindStringSubmatch(raw); m != nil {
		raw = strings.TrimSpace(m[1])
	}

	var list generatedPathList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("parse generated response: %w", err)
	}
	if list.Paths == nil {
		return nil, fmt.Errorf("generated response has no paths field")
	}

	out := make([]CandidatePath, 0, len(list.Paths))
	for i, p := range list.Paths {
		if err := validateGeneratedPath(p); err != nil {
			return nil, fmt.Errorf("generated path %d: %w", i, err)
		}
		out = append(out, CandidatePath{
			Name:        p.Name,
			Description: p.Description,
			Services:    p.Services,
			Priority:    Priority(p.Priority),
			Severity:    p.Severity,
		})
	}
	return out, nil
}

func validateGeneratedPath(p generatedPath) error {
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(p.Services) == 0 {
		return fmt.Errorf("missing services")
	}
	for _, s := range p.Services {
		if s == "" {
			return fmt.Errorf("empty service name")
		}
	}
	// Priority may be absent; the orchestrator derives one from metrics then.
	if p.Priority != "" && !Priority(p.Priority).Valid() {
		return fmt.Errorf("invalid priority %q", p.Priority)
	}
	if p.Severity < 0 || p.Severity > 1 {
		return fmt.Errorf("severity %v out of range", p.Severity)
	}
	return nil
}
