package metrics

import (
	"context"

	"maintbot/internal/model"
)

// MetricStereotypeRatio is the configured name of the advisory
// stereotype ratio metric
const MetricStereotypeRatio = "StereotypeRatio"

// StereotypeRatioMetric is an advisory cohesion ratio: own-field
// accesses divided by all accesses (own-field plus calls on other
// objects). Values near 1.0 suggest a domain class working on its own
// state; values near 0.0 suggest a coordinator/service delegating to
// collaborators. The classification itself is a heuristic judgment, so
// this stays a raw ratio rather than a classifier.
type StereotypeRatioMetric struct{}

// NewStereotypeRatioMetric creates a new stereotype ratio metric
func NewStereotypeRatioMetric() *StereotypeRatioMetric {
	return &StereotypeRatioMetric{}
}

func (m *StereotypeRatioMetric) Name() string {
	return MetricStereotypeRatio
}

func (m *StereotypeRatioMetric) Category() MetricCategory {
	return CategoryCohesion
}

func (m *StereotypeRatioMetric) Level() MetricLevel {
	return LevelClass
}

func (m *StereotypeRatioMetric) Description() string {
	return "Stereotype ratio - share of own-field accesses among all accesses; low values indicate a coordinator"
}

func (m *StereotypeRatioMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	if scope.Kind == model.ScopeMethod {
		return nil, errScopeTooNarrow(m.Name())
	}

	var result []Measurement
	for _, class := range scope.Classes() {
		own := 0
		external := 0
		for _, method := range class.Methods {
			own += method.OwnFieldAccesses
			external += method.ExternalCalls
		}

		// A class touching nothing at all is treated as fully cohesive
		ratio := 1.0
		if own+external > 0 {
			ratio = float64(own) / float64(own+external)
		}

		result = append(result, Measurement{
			Element: class.FullName(),
			Value:   ratio,
		})
	}
	return result, nil
}
