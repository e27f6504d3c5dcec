package service

import (
	"context"
	"fmt"
	"os"

	"maintbot/internal/checker"
	"maintbot/internal/config"
	"maintbot/internal/index"
	"maintbot/internal/metrics"
	"maintbot/internal/report"

	"go.uber.org/zap"
)

// EvaluationService runs the full submission pipeline: build the code
// index once, evaluate every configured checker against the shared
// snapshot, aggregate the verdicts into a report. It is shared by the
// HTTP controller, the CLI and the MCP server.
type EvaluationService struct {
	indexer         *index.Indexer
	metricRegistry  *metrics.MetricRegistry
	checkerRegistry *checker.CheckerRegistry
	evaluator       *checker.Evaluator
	cfg             *config.Config
	logger          *zap.Logger
}

// NewEvaluationService builds the pipeline and loads the configured
// checker collection if the checker file exists
func NewEvaluationService(cfg *config.Config, logger *zap.Logger) (*EvaluationService, error) {
	indexer, err := index.NewIndexer(cfg.ParseTimeout(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer: %w", err)
	}

	metricRegistry := metrics.NewDefaultRegistry()
	checkerRegistry := checker.NewCheckerRegistry(metricRegistry, logger)

	service := &EvaluationService{
		indexer:         indexer,
		metricRegistry:  metricRegistry,
		checkerRegistry: checkerRegistry,
		evaluator:       checker.NewEvaluator(metricRegistry, logger),
		cfg:             cfg,
		logger:          logger,
	}

	if cfg.App.CheckerFile != "" {
		if _, statErr := os.Stat(cfg.App.CheckerFile); statErr == nil {
			configs, err := checker.LoadCheckerFile(cfg.App.CheckerFile)
			if err != nil {
				return nil, err
			}
			if err := checkerRegistry.RegisterAll(configs); err != nil {
				return nil, err
			}
			logger.Info("Loaded checker collection",
				zap.String("file", cfg.App.CheckerFile),
				zap.Int("checkers", len(configs)))
		} else {
			logger.Warn("Checker file not found, starting with no registered checkers",
				zap.String("file", cfg.App.CheckerFile))
		}
	}

	return service, nil
}

// RegisterCheckers adds checkers to the registered collection
func (s *EvaluationService) RegisterCheckers(configs []checker.CheckerConfig) error {
	return s.checkerRegistry.RegisterAll(configs)
}

// Checkers returns the registered checker collection
func (s *EvaluationService) Checkers() []checker.CheckerConfig {
	return s.checkerRegistry.Checkers()
}

// Languages returns the supported submission languages
func (s *EvaluationService) Languages() []string {
	return s.indexer.Languages()
}

// Evaluate runs one submission through the pipeline. Inline checkers,
// when present, are validated and evaluated instead of the registered
// collection. ParseError and InvalidConfigError abort with no report;
// unresolvable snippet ids inside the run are isolated per checker.
func (s *EvaluationService) Evaluate(ctx context.Context, submissionID, language string, source []byte, inline []checker.CheckerConfig) (*report.Report, error) {
	if submissionID == "" {
		submissionID = report.NewSubmissionID()
	}

	configs := s.checkerRegistry.Checkers()
	if len(inline) > 0 {
		for i := range inline {
			if inline[i].ID == "" {
				inline[i].ID = fmt.Sprintf("inline-%d", i+1)
			}
			if err := inline[i].Validate(s.metricRegistry); err != nil {
				return nil, err
			}
		}
		configs = inline
	}

	s.logger.Info("Evaluating submission",
		zap.String("submission_id", submissionID),
		zap.String("language", language),
		zap.Int("checkers", len(configs)))

	unit, err := s.indexer.Build(ctx, language, source)
	if err != nil {
		return nil, err
	}

	verdicts := checker.EvaluateConfigs(ctx, s.evaluator, configs, unit, s.cfg.App.MaxParallelCheckers)
	result := report.Aggregate(submissionID, language, verdicts)

	s.logger.Info("Evaluation complete",
		zap.String("submission_id", submissionID),
		zap.Int("passed", result.Summary.Passed),
		zap.Int("failed", result.Summary.Failed),
		zap.Int("skipped", result.Summary.Skipped))

	return result, nil
}
