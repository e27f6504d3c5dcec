package metrics

import (
	"context"

	"maintbot/internal/model"
)

// MetricCyclomaticComplexity is the configured name of the cyclomatic
// complexity metric
const MetricCyclomaticComplexity = "CyclomaticComplexity"

// MetricWeightedMethodsPerClass is the configured name of the WMC metric
const MetricWeightedMethodsPerClass = "WeightedMethodsPerClass"

// CyclomaticComplexityMetric measures 1 + decision points per method.
// Under a class or ALL_CODE scope the value is reported for every
// contained method, so a range checker passes only if every method is
// in range. This closes the bypass where refactoring one flagged
// method into a new overly complex one elsewhere would go unnoticed.
type CyclomaticComplexityMetric struct{}

// NewCyclomaticComplexityMetric creates a new cyclomatic complexity metric
func NewCyclomaticComplexityMetric() *CyclomaticComplexityMetric {
	return &CyclomaticComplexityMetric{}
}

func (m *CyclomaticComplexityMetric) Name() string {
	return MetricCyclomaticComplexity
}

func (m *CyclomaticComplexityMetric) Category() MetricCategory {
	return CategoryComplexity
}

func (m *CyclomaticComplexityMetric) Level() MetricLevel {
	return LevelMethod
}

func (m *CyclomaticComplexityMetric) Description() string {
	return "Cyclomatic complexity - count of independent decision paths through a method, decision points + 1"
}

func (m *CyclomaticComplexityMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	var result []Measurement
	for _, ref := range scope.Methods() {
		result = append(result, Measurement{
			Element: ref.Address(),
			Value:   float64(ref.Method.Complexity()),
		})
	}
	return result, nil
}

// WMCMetric measures Weighted Methods per Class - the sum of cyclomatic
// complexity over the class's directly declared methods
type WMCMetric struct{}

// NewWMCMetric creates a new WMC metric
func NewWMCMetric() *WMCMetric {
	return &WMCMetric{}
}

func (m *WMCMetric) Name() string {
	return MetricWeightedMethodsPerClass
}

func (m *WMCMetric) Category() MetricCategory {
	return CategoryComplexity
}

func (m *WMCMetric) Level() MetricLevel {
	return LevelClass
}

func (m *WMCMetric) Description() string {
	return "Weighted Methods per Class - sum of cyclomatic complexity of all directly declared methods"
}

func (m *WMCMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	if scope.Kind == model.ScopeMethod {
		return nil, errScopeTooNarrow(m.Name())
	}

	var result []Measurement
	for _, class := range scope.Classes() {
		result = append(result, Measurement{
			Element: class.FullName(),
			Value:   float64(class.GetWMC()),
		})
	}
	return result, nil
}
