package checker

import (
	"context"
	"errors"
	"testing"
	"time"

	"maintbot/internal/index"
	"maintbot/internal/metrics"
	"maintbot/internal/model"

	"go.uber.org/zap"
)

const scheduleFixture = `
namespace Methods
{
    public class ScheduleService
    {
        public bool IsAvailable(Doctor doctor, DateTime visitTime)
        {
            foreach (var schedule in doctor.Schedules)
            {
                if (schedule.Date == visitTime.Date)
                {
                    foreach (var slot in schedule.Slots)
                    {
                        if (slot.Time == visitTime && slot.IsFree)
                        {
                            return true;
                        }
                    }
                }
            }
            return false;
        }

        public void Reset()
        {
        }
    }

    public class Doctor
    {
        public List<Certificate> Certificates { get; set; }

        public bool HasCertificates()
        {
            return Certificates.Count > 0;
        }
    }
}
`

func indexFixture(t *testing.T, source string) *model.SourceUnit {
	t.Helper()
	indexer, err := index.NewIndexer(2*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create indexer: %v", err)
	}
	unit, err := indexer.Build(context.Background(), index.LanguageCSharp, []byte(source))
	if err != nil {
		t.Fatalf("Failed to index fixture: %v", err)
	}
	return unit
}

func newTestEvaluator() *Evaluator {
	return NewEvaluator(metrics.NewDefaultRegistry(), zap.NewNop())
}

func TestEvaluate_MetricCheckerFailsAboveThreshold(t *testing.T) {
	unit := indexFixture(t, scheduleFixture)
	evaluator := newTestEvaluator()

	cfg := CheckerConfig{
		ID:         "cc-isavailable",
		SnippetID:  "Methods.ScheduleService.IsAvailable",
		Kind:       KindMetric,
		MetricName: metrics.MetricCyclomaticComplexity,
		Low:        1,
		High:       4,
		Hint:       "Extract the slot search into its own method",
	}

	verdict := evaluator.Evaluate(context.Background(), cfg, unit)
	if verdict.Skipped {
		t.Fatalf("Checker unexpectedly skipped: %s", verdict.Diagnostic)
	}
	if verdict.Passed {
		t.Fatal("Expected checker to fail, complexity is above the range")
	}
	if len(verdict.Measurements) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(verdict.Measurements))
	}
	// Two foreach, two if, one &&: complexity 6
	if verdict.Measurements[0].Value != 6 {
		t.Fatalf("Expected complexity 6, got %g", verdict.Measurements[0].Value)
	}
	if verdict.Hint != cfg.Hint {
		t.Fatalf("Hint not carried into verdict: %q", verdict.Hint)
	}
}

func TestEvaluate_UnitScopeNamesFailingMethod(t *testing.T) {
	unit := indexFixture(t, scheduleFixture)
	evaluator := newTestEvaluator()

	cfg := CheckerConfig{
		ID:         "cc-all",
		SnippetID:  model.SnippetIDAllCode,
		Kind:       KindMetric,
		MetricName: metrics.MetricCyclomaticComplexity,
		Low:        1,
		High:       5,
	}

	verdict := evaluator.Evaluate(context.Background(), cfg, unit)
	if verdict.Passed {
		t.Fatal("Expected checker to fail, one method is above the range")
	}
	if len(verdict.FailingElements) != 1 {
		t.Fatalf("Expected exactly one failing element, got %v", verdict.FailingElements)
	}
	if verdict.FailingElements[0] != "Methods.ScheduleService.IsAvailable" {
		t.Fatalf("Unexpected failing element: %s", verdict.FailingElements[0])
	}
	// One measurement per method across the whole submission
	if len(verdict.Measurements) != 3 {
		t.Fatalf("Expected 3 measurements, got %d", len(verdict.Measurements))
	}
}

func TestEvaluate_ClassMetricOnMethodScopeIsSkipped(t *testing.T) {
	unit := indexFixture(t, scheduleFixture)
	evaluator := newTestEvaluator()

	cfg := CheckerConfig{
		ID:         "wmc-on-method",
		SnippetID:  "Methods.ScheduleService.IsAvailable",
		Kind:       KindMetric,
		MetricName: metrics.MetricWeightedMethodsPerClass,
		Low:        1,
		High:       10,
	}

	verdict := evaluator.Evaluate(context.Background(), cfg, unit)
	if !verdict.Skipped {
		t.Fatal("Expected skipped verdict for class metric on a method snippet")
	}
	if verdict.Diagnostic == "" {
		t.Fatal("Skipped verdict must carry a diagnostic")
	}
}

func TestEvaluate_UnknownSnippetIsIsolated(t *testing.T) {
	unit := indexFixture(t, scheduleFixture)
	evaluator := newTestEvaluator()

	configs := []CheckerConfig{
		{
			ID:         "nom-ghost",
			SnippetID:  "Methods.Ghost",
			Kind:       KindMetric,
			MetricName: metrics.MetricNumberOfMethods,
			Low:        1,
			High:       5,
		},
		{
			ID:        "required-certs",
			SnippetID: "Methods.Doctor",
			Kind:      KindRequired,
			Words:     []string{"Certificates", "HasCertificates"},
		},
	}

	verdicts := EvaluateConfigs(context.Background(), evaluator, configs, unit, 4)
	if len(verdicts) != 2 {
		t.Fatalf("Expected 2 verdicts, got %d", len(verdicts))
	}
	if !verdicts[0].Skipped {
		t.Fatalf("Expected first checker skipped, got %+v", verdicts[0])
	}
	if verdicts[0].CheckerID != "nom-ghost" {
		t.Fatalf("Verdicts must preserve configured order, got %s first", verdicts[0].CheckerID)
	}
	if verdicts[1].Skipped || !verdicts[1].Passed {
		t.Fatalf("Second checker should still evaluate and pass, got %+v", verdicts[1])
	}
}

func TestEvaluate_BannedAndRequiredWords(t *testing.T) {
	source := `
namespace Methods
{
    public class Doctor
    {
        public List<Certificate> certificateList { get; set; }

        public bool HasCertificates()
        {
            return certificateList.Count > 0;
        }
    }
}
`
	unit := indexFixture(t, source)
	evaluator := newTestEvaluator()

	banned := CheckerConfig{
		ID:        "banned-generic",
		SnippetID: "Methods.Doctor",
		Kind:      KindBanned,
		Words:     []string{"info", "set", "list"},
		Hint:      "Name collections after what they hold",
	}
	verdict := evaluator.Evaluate(context.Background(), banned, unit)
	if verdict.Passed {
		t.Fatal("Expected banned checker to fail on certificateList")
	}
	if len(verdict.MatchedWords) != 1 || verdict.MatchedWords[0].Word != "list" {
		t.Fatalf("Unexpected matches: %v", verdict.MatchedWords)
	}
	if verdict.MatchedWords[0].Identifier != "certificateList" {
		t.Fatalf("Match should name the offending identifier, got %s", verdict.MatchedWords[0].Identifier)
	}

	required := CheckerConfig{
		ID:        "required-certs",
		SnippetID: "Methods.Doctor",
		Kind:      KindRequired,
		Words:     []string{"Certificates", "HasCertificates"},
	}
	verdict = evaluator.Evaluate(context.Background(), required, unit)
	if !verdict.Passed {
		t.Fatalf("Expected required checker to pass, missing %v", verdict.MissingWords)
	}
}

func TestRegistry_RegisterValidatesAndAssignsIDs(t *testing.T) {
	registry := NewCheckerRegistry(metrics.NewDefaultRegistry(), zap.NewNop())

	err := registry.Register(CheckerConfig{
		SnippetID:  "ALL_CODE",
		Kind:       KindMetric,
		MetricName: metrics.MetricCyclomaticComplexity,
		Low:        1,
		High:       6,
	})
	if err != nil {
		t.Fatalf("Failed to register valid checker: %v", err)
	}

	checkers := registry.Checkers()
	if len(checkers) != 1 {
		t.Fatalf("Expected 1 registered checker, got %d", len(checkers))
	}
	if checkers[0].ID == "" {
		t.Fatal("Registration must assign an id when none is given")
	}

	cases := []CheckerConfig{
		{SnippetID: "", Kind: KindMetric, MetricName: metrics.MetricNumberOfMethods, Low: 1, High: 2},
		{SnippetID: "ALL_CODE", Kind: KindMetric, MetricName: "NoSuchMetric", Low: 1, High: 2},
		{SnippetID: "ALL_CODE", Kind: KindMetric, MetricName: metrics.MetricNumberOfMethods, Low: 5, High: 2},
		{SnippetID: "ALL_CODE", Kind: KindBanned},
		{SnippetID: "ALL_CODE", Kind: KindBanned, Words: []string{"set", ""}},
		{SnippetID: "ALL_CODE", Kind: "mystery"},
	}
	for i, cfg := range cases {
		err := registry.Register(cfg)
		var invalid *InvalidConfigError
		if err == nil {
			t.Fatalf("Case %d: expected registration to fail", i)
		}
		if !errors.As(err, &invalid) {
			t.Fatalf("Case %d: expected InvalidConfigError, got %v", i, err)
		}
	}

	if len(registry.Checkers()) != 1 {
		t.Fatal("Rejected configs must not be registered")
	}
}

func TestEvaluateAll_PreservesConfiguredOrder(t *testing.T) {
	unit := indexFixture(t, scheduleFixture)
	registry := NewCheckerRegistry(metrics.NewDefaultRegistry(), zap.NewNop())

	ids := []string{"first", "second", "third", "fourth"}
	for _, id := range ids {
		err := registry.Register(CheckerConfig{
			ID:         id,
			SnippetID:  "ALL_CODE",
			Kind:       KindMetric,
			MetricName: metrics.MetricCyclomaticComplexity,
			Low:        1,
			High:       10,
		})
		if err != nil {
			t.Fatalf("Failed to register %s: %v", id, err)
		}
	}

	verdicts := registry.EvaluateAll(context.Background(), unit, 2)
	if len(verdicts) != len(ids) {
		t.Fatalf("Expected %d verdicts, got %d", len(ids), len(verdicts))
	}
	for i, id := range ids {
		if verdicts[i].CheckerID != id {
			t.Fatalf("Verdict %d is %s, want %s", i, verdicts[i].CheckerID, id)
		}
	}
}
