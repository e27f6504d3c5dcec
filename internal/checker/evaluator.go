package checker

import (
	"context"
	"fmt"
	"sync"

	"maintbot/internal/index"
	"maintbot/internal/lexical"
	"maintbot/internal/metrics"
	"maintbot/internal/model"

	"go.uber.org/zap"
)

// Evaluator resolves a checker's snippet id against an indexed
// submission, dispatches to the metric or lexical engine and compares
// the result against the checker's policy. Evaluation is deterministic
// and pure; a failed check is a reported verdict, never a fault.
type Evaluator struct {
	metricRegistry *metrics.MetricRegistry
	logger         *zap.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(metricRegistry *metrics.MetricRegistry, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		metricRegistry: metricRegistry,
		logger:         logger,
	}
}

// Evaluate produces the verdict for one checker against one submission.
// Authoring faults (unresolvable or ambiguous snippet id, metric not
// applicable to the scope) yield a skipped verdict with a diagnostic
// instead of aborting the rest of the report.
func (e *Evaluator) Evaluate(ctx context.Context, cfg CheckerConfig, unit *model.SourceUnit) Verdict {
	verdict := Verdict{
		CheckerID:  cfg.ID,
		SnippetID:  cfg.SnippetID,
		Kind:       cfg.Kind,
		MetricName: cfg.MetricName,
		Hint:       cfg.Hint,
	}

	scope, err := index.Resolve(unit, cfg.SnippetID)
	if err != nil {
		// Unknown or ambiguous snippet ids are authoring faults; the
		// verdict records them without failing the submission.
		e.logger.Warn("Checker skipped: snippet id did not resolve",
			zap.String("checker", cfg.ID),
			zap.String("snippet_id", cfg.SnippetID),
			zap.Error(err))
		verdict.Skipped = true
		verdict.Diagnostic = err.Error()
		return verdict
	}

	switch cfg.Kind {
	case KindMetric:
		e.evaluateMetric(ctx, cfg, scope, &verdict)
	case KindBanned:
		identifiers := lexical.CollectIdentifiers(scope)
		verdict.MatchedWords = lexical.FindBanned(identifiers, cfg.Words)
		verdict.Passed = len(verdict.MatchedWords) == 0
	case KindRequired:
		identifiers := lexical.CollectIdentifiers(scope)
		verdict.MissingWords = lexical.FindMissing(identifiers, cfg.Words)
		verdict.Passed = len(verdict.MissingWords) == 0
	}

	return verdict
}

func (e *Evaluator) evaluateMetric(ctx context.Context, cfg CheckerConfig, scope model.Scope, verdict *Verdict) {
	metric, ok := e.metricRegistry.Get(cfg.MetricName)
	if !ok {
		// Registration validates metric names, so this is unreachable
		// for registered checkers; inline checkers can still hit it.
		verdict.Skipped = true
		verdict.Diagnostic = "unknown metric name: " + cfg.MetricName
		return
	}

	measurements, err := metric.Measure(ctx, scope)
	if err != nil {
		e.logger.Warn("Checker skipped: metric not applicable to scope",
			zap.String("checker", cfg.ID),
			zap.String("metric", cfg.MetricName),
			zap.String("snippet_id", cfg.SnippetID),
			zap.Error(err))
		verdict.Skipped = true
		verdict.Diagnostic = err.Error()
		return
	}

	verdict.Measurements = measurements
	verdict.Passed = true
	for _, m := range measurements {
		if m.Value < cfg.Low || m.Value > cfg.High {
			verdict.Passed = false
			verdict.FailingElements = append(verdict.FailingElements, m.Element)
		}
	}
}

// CheckerRegistry holds the configured checker collection in authored
// order and evaluates it against submissions
type CheckerRegistry struct {
	checkers       []CheckerConfig
	metricRegistry *metrics.MetricRegistry
	evaluator      *Evaluator
	logger         *zap.Logger
	mu             sync.RWMutex
}

// NewCheckerRegistry creates an empty checker registry
func NewCheckerRegistry(metricRegistry *metrics.MetricRegistry, logger *zap.Logger) *CheckerRegistry {
	return &CheckerRegistry{
		metricRegistry: metricRegistry,
		evaluator:      NewEvaluator(metricRegistry, logger),
		logger:         logger,
	}
}

// Register validates and adds a checker. Invalid configs are rejected
// here, before any submission is evaluated.
func (r *CheckerRegistry) Register(cfg CheckerConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.ID == "" {
		cfg.ID = defaultCheckerID(cfg, len(r.checkers)+1)
	}

	if err := cfg.Validate(r.metricRegistry); err != nil {
		return err
	}

	r.checkers = append(r.checkers, cfg)
	r.logger.Info("Registered checker",
		zap.String("checker", cfg.ID),
		zap.String("kind", string(cfg.Kind)),
		zap.String("snippet_id", cfg.SnippetID))
	return nil
}

// RegisterAll registers a whole collection, stopping at the first
// invalid config
func (r *CheckerRegistry) RegisterAll(configs []CheckerConfig) error {
	for _, cfg := range configs {
		if err := r.Register(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Checkers returns the registered configs in authored order
func (r *CheckerRegistry) Checkers() []CheckerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CheckerConfig, len(r.checkers))
	copy(result, r.checkers)
	return result
}

// EvaluateAll runs every checker against the shared read-only unit.
// Checkers are independent, so they run in parallel bounded by
// maxParallel; verdicts come back in configured order and no checker
// short-circuits the rest.
func (r *CheckerRegistry) EvaluateAll(ctx context.Context, unit *model.SourceUnit, maxParallel int) []Verdict {
	return EvaluateConfigs(ctx, r.evaluator, r.Checkers(), unit, maxParallel)
}

// EvaluateConfigs evaluates an explicit checker collection, used for
// inline per-request checkers as well as the registered set
func EvaluateConfigs(ctx context.Context, evaluator *Evaluator, configs []CheckerConfig, unit *model.SourceUnit, maxParallel int) []Verdict {
	if maxParallel < 1 {
		maxParallel = 1
	}

	verdicts := make([]Verdict, len(configs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallel)

	for i, cfg := range configs {
		wg.Add(1)
		go func(slot int, cfg CheckerConfig) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			verdicts[slot] = evaluator.Evaluate(ctx, cfg, unit)
		}(i, cfg)
	}

	wg.Wait()
	return verdicts
}

func defaultCheckerID(cfg CheckerConfig, position int) string {
	switch cfg.Kind {
	case KindMetric:
		return fmt.Sprintf("metric-%s-%d", cfg.MetricName, position)
	case KindBanned:
		return fmt.Sprintf("banned-words-%d", position)
	case KindRequired:
		return fmt.Sprintf("required-words-%d", position)
	}
	return fmt.Sprintf("checker-%d", position)
}
