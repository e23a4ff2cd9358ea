package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"critpath/internal/logging"
	"critpath/internal/topology"
)

// Generation parameters: low temperature and a bounded token budget keep the
// proposal step cheap and close to deterministic.
const (
	generationTaskType    = "critical-path-discovery"
	generationMaxTokens   = 2000
	generationTemperature = 0.1
)

// GenerateRequest is the single request shape the engine sends to a
// generation capability.
type GenerateRequest struct {
	Prompt      string
	TaskType    string
	MaxTokens   int
	Temperature float64
}

// Generator is the engine's only external dependency: a language generation
// capability. Implementations own their transport, auth, and deadlines; the
// orchestrator passes its context through and treats every failure mode the
// same way.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Observer receives discovery telemetry. All methods must be safe for
// concurrent use; a nil observer disables recording.
type Observer interface {
	ObserveDiscovery(strategy string, elapsed time.Duration)
	ObserveGenerationFailure()
}

// Orchestrator ties the engine together: build prompt, call generation,
// interpret, fall back to statistical discovery on any failure, then
// aggregate metrics, classify, and assemble each candidate. It holds no
// mutable state across calls, so concurrent discoveries need no
// coordination.
type Orchestrator struct {
	gen      Generator
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// OrchestratorOption configures the Orchestrator during construction.
type OrchestratorOption func(*Orchestrator)

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// WithObserver attaches a telemetry observer.
func WithObserver(obs Observer) OrchestratorOption {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates an Orchestrator around the given generator. A nil
// generator is allowed: every discovery then runs the statistical strategy.
func NewOrchestrator(gen Generator, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		gen: gen,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.New("discovery")
	}
	return o
}

// DiscoverCriticalPaths runs one discovery over the topology snapshot.
// It never fails for well-formed input: generation and interpretation
// failures degrade to the statistical result, and a topology with no entry
// points yields an empty list. The only surfaced error is a nil topology.
func (o *Orchestrator) DiscoverCriticalPaths(ctx context.Context, services []topology.ServiceMetrics, tr topology.TimeRange) ([]CriticalPath, error) {
	if services == nil {
		return nil, &DiscoveryError{Message: "discover critical paths: topology is nil"}
	}

	started := o.now()
	candidates, strategy := o.proposeCandidates(ctx, services)

	paths := make([]CriticalPath, 0, len(candidates))
	for i, cand := range candidates {
		metrics := AggregateMetrics(cand.Services, services)
		if cand.Priority == "" {
			cand.Priority = ClassifyPriority(metrics)
		}
		if strategy == DiscoveredByLLM {
			// Generated candidates are re-scored from observed metrics; the
			// statistical strategy already scored its chains from the
			// aggregate thresholds.
			cand.Severity = ClassifySeverity(cand.Priority, metrics)
		}
		id := fmt.Sprintf("path-%d", i+1)
		paths = append(paths, AssemblePath(cand, id, metrics, strategy, tr, o.now()))
	}

	if o.observer != nil {
		o.observer.ObserveDiscovery(strategy, o.now().Sub(started))
	}
	o.logger.InfoContext(ctx, "discovery complete",
		"strategy", strategy, "paths", len(paths), "services", len(services))
	return paths, nil
}

// proposeCandidates runs the primary generation strategy and falls back to
// statistical discovery on any failure: no generator, prompt rendering,
// generation call, interpretation, or an empty proposal list. Failures are
// absorbed here and never propagate.
func (o *Orchestrator) proposeCandidates(ctx context.Context, services []topology.ServiceMetrics) ([]CandidatePath, string) {
	if o.gen == nil {
		o.logger.DebugContext(ctx, "no generator configured, using statistical discovery")
		return StatisticalPaths(services), DiscoveredByStatistical
	}

	prompt, err := BuildPrompt(services)
	if err != nil {
		o.logger.WarnContext(ctx, "prompt build failed, using statistical discovery", "error", err)
		return StatisticalPaths(services), DiscoveredByStatistical
	}

	text, err := o.gen.Generate(ctx, GenerateRequest{
		Prompt:      prompt,
		TaskType:    generationTaskType,
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		o.generationFailed(ctx, "generation failed", err)
		return StatisticalPaths(services), DiscoveredByStatistical
	}

	candidates, err := ParsePathResponse(text)
	if err != nil {
		o.generationFailed(ctx, "response interpretation failed", err)
		return StatisticalPaths(services), DiscoveredByStatistical
	}
	if len(candidates) == 0 {
		o.generationFailed(ctx, "generation proposed no paths", nil)
		return StatisticalPaths(services), DiscoveredByStatistical
	}

	return candidates, DiscoveredByLLM
}

func (o *Orchestrator) generationFailed(ctx context.Context, msg string, err error) {
	if o.observer != nil {
		o.observer.ObserveGenerationFailure()
	}
	if err != nil {
		o.logger.WarnContext(ctx, msg+", using statistical discovery", "error", err)
		return
	}
	o.logger.WarnContext(ctx, msg+", using statistical discovery")
}

// AnalyzePath builds a single ad hoc path from a service list without any
// topology lookup. Metrics are zero-valued; this is a documented limitation
// of the operation, not an error.
func (o *Orchestrator) AnalyzePath(services []string) CriticalPath {
	var metrics PathMetrics
	cand := CandidatePath{
		Name:        "Custom Path",
		Description: "Ad hoc path analysis",
		Services:    services,
		Priority:    ClassifyPriority(metrics),
	}
	cand.Severity = ClassifySeverity(cand.Priority, metrics)
	return AssemblePath(cand, "custom", metrics, DiscoveredByStatistical, topology.TimeRange{}, o.now())
}
