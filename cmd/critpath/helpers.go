package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"critpath/adapters/llm"
	"critpath/internal/config"
	"critpath/internal/discovery"
	"critpath/internal/logging"
	"critpath/internal/telemetry"
)

// buildOrchestrator wires the discovery engine from config. With no
// generator endpoint configured, the orchestrator runs purely statistical.
func buildOrchestrator(cfg *config.Config) (*discovery.Orchestrator, error) {
	var gen discovery.Generator
	if cfg.Generator.Endpoint != "" {
		key, err := config.ReadAPIKey(cfg.Generator.APIKeyPath)
		if err != nil {
			return nil, err
		}
		opts := []llm.Option{llm.WithLogger(logging.New("llm"))}
		if cfg.Generator.TimeoutSec > 0 {
			opts = append(opts, llm.WithTimeout(time.Duration(cfg.Generator.TimeoutSec)*time.Second))
		}
		client, err := llm.New(cfg.Generator.Endpoint, key, cfg.Generator.Model, opts...)
		if err != nil {
			return nil, err
		}
		gen = client
	}

	return discovery.NewOrchestrator(gen,
		discovery.WithLogger(logging.New("discovery")),
		discovery.WithObserver(telemetry.New(prometheus.DefaultRegisterer)),
	), nil
}

// splitServices parses a comma-separated service list, dropping empty parts.
func splitServices(arg string) ([]string, error) {
	var services []string
	for _, part := range strings.Split(arg, ",") {
		if s := strings.TrimSpace(part); s != "" {
			services = append(services, s)
		}
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("no service names in %q", arg)
	}
	return services, nil
}

// parseWindow parses --start/--end flags into a time range. Both or neither
// must be set.
func parseWindow(start, end string) (startTime, endTime time.Time, ok bool, err error) {
	if start == "" && end == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("--start and --end must be set together")
	}
	startTime, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse --start: %w", err)
	}
	endTime, err = time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("parse --end: %w", err)
	}
	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("--start must be before --end")
	}
	return startTime, endTime, true, nil
}
