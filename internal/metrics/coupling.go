package metrics

import (
	"context"

	"maintbot/internal/model"
)

// MetricAfferentCoupling is the configured name of the afferent coupling metric
const MetricAfferentCoupling = "AfferentCoupling"

// MetricEfferentCoupling is the configured name of the efferent coupling metric
const MetricEfferentCoupling = "EfferentCoupling"

// Coupling is measured against the submission snapshot only: both
// directions count classes declared in the same submission, so library
// types like List or Dictionary never contribute.
//
// ReferencedTypes is keyed by simple name, so a reference to a class
// sharing the measured class's own name is indistinguishable from a
// self-reference and is excluded. A.Doctor referencing B.Doctor
// therefore does not count toward either direction.

// AfferentCouplingMetric counts distinct other classes in the
// submission that reference the class's type
type AfferentCouplingMetric struct{}

// NewAfferentCouplingMetric creates a new afferent coupling metric
func NewAfferentCouplingMetric() *AfferentCouplingMetric {
	return &AfferentCouplingMetric{}
}

func (m *AfferentCouplingMetric) Name() string {
	return MetricAfferentCoupling
}

func (m *AfferentCouplingMetric) Category() MetricCategory {
	return CategoryCoupling
}

func (m *AfferentCouplingMetric) Level() MetricLevel {
	return LevelClass
}

func (m *AfferentCouplingMetric) Description() string {
	return "Afferent coupling - number of classes in the submission depending on this class"
}

func (m *AfferentCouplingMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	if scope.Kind == model.ScopeMethod {
		return nil, errScopeTooNarrow(m.Name())
	}

	var result []Measurement
	for _, class := range scope.Classes() {
		count := 0
		for _, other := range scope.Unit.Classes {
			// Same-name classes are skipped as presumed self-references
			if other == class || other.Name == class.Name {
				continue
			}
			if other.ReferencedTypes[class.Name] {
				count++
			}
		}
		result = append(result, Measurement{
			Element: class.FullName(),
			Value:   float64(count),
		})
	}
	return result, nil
}

// EfferentCouplingMetric counts distinct other classes in the
// submission that the class references through field types, parameter
// types, return types and instantiations
type EfferentCouplingMetric struct{}

// NewEfferentCouplingMetric creates a new efferent coupling metric
func NewEfferentCouplingMetric() *EfferentCouplingMetric {
	return &EfferentCouplingMetric{}
}

func (m *EfferentCouplingMetric) Name() string {
	return MetricEfferentCoupling
}

func (m *EfferentCouplingMetric) Category() MetricCategory {
	return CategoryCoupling
}

func (m *EfferentCouplingMetric) Level() MetricLevel {
	return LevelClass
}

func (m *EfferentCouplingMetric) Description() string {
	return "Efferent coupling - number of classes in the submission this class depends on"
}

func (m *EfferentCouplingMetric) Measure(ctx context.Context, scope model.Scope) ([]Measurement, error) {
	if scope.Kind == model.ScopeMethod {
		return nil, errScopeTooNarrow(m.Name())
	}

	var result []Measurement
	for _, class := range scope.Classes() {
		count := 0
		for _, other := range scope.Unit.Classes {
			// Same-name classes are skipped as presumed self-references
			if other == class || other.Name == class.Name {
				continue
			}
			if class.ReferencedTypes[other.Name] {
				count++
			}
		}
		result = append(result, Measurement{
			Element: class.FullName(),
			Value:   float64(count),
		})
	}
	return result, nil
}
