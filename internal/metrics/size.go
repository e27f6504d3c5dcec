package metrics

import (
	"context"

	"maintbot/internal/model"
)

// MetricNumberOfMethods is the configured name of the method count metric
const MetricNumberOfMethods = "NumberOfMethods"

// NOMMetric measures Number of Methods declared directly on a class,
// constructors excluded
type NOMMetric struct{}

// NewNOMMetric creates a new NOM metric
func NewNOMMetric() *NOMMetric {
	return &NOMMetric{}
}

func (m *NOMMetric) Name() string {
	return MetricNumberOfMethods
}

func (m *NOMMetric) Category() MetricCategory {
	return CategorySize
}

func (m *NOMMetric) Level() MetricLevel {
	return LevelClass
}

func (m *NOMMetric) Description() string {
	return "Number of Methods - count of methods declared directly on the class, constructors excluded"
}

func (m *NOMMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	if scope.Kind == model.ScopeMethod {
		return nil, errScopeTooNarrow(m.Name())
	}

	var result []Measurement
	for _, class := range scope.Classes() {
		result = append(result, Measurement{
			Element: class.FullName(),
			Value:   float64(class.GetNOM()),
		})
	}
	return result, nil
}
