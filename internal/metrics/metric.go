package metrics

import (
	"context"
	"fmt"

	"maintbot/internal/model"
)

// MetricCategory groups related metrics
type MetricCategory string

const (
	CategorySize       MetricCategory = "size"
	CategoryComplexity MetricCategory = "complexity"
	CategoryCoupling   MetricCategory = "coupling"
	CategoryCohesion   MetricCategory = "cohesion"
)

// MetricLevel is the structural level a metric is defined on
type MetricLevel string

const (
	// LevelMethod metrics produce one value per method. Under a class
	// or ALL_CODE scope they are measured per contained method.
	LevelMethod MetricLevel = "method"

	// LevelClass metrics produce one value per class. Under ALL_CODE
	// they are measured per contained class; a method-form snippet id
	// is a configuration error for them.
	LevelClass MetricLevel = "class"
)

// Measurement is one measured element inside a scope
type Measurement struct {
	Element string  `json:"element"`
	Value   float64 `json:"value"`
}

// Metric computes a named structural metric over a resolved scope
type Metric interface {
	// Name returns the unique identifier for this metric
	Name() string

	// Category returns the category this metric belongs to
	Category() MetricCategory

	// Level returns whether the metric is method- or class-level
	Level() MetricLevel

	// Measure computes the metric for every applicable element in the scope
	Measure(ctx context.Context, scope model.Scope) ([]Measurement, error)

	// Description returns a human-readable description
	Description() string
}

// MetricRegistry manages all available metrics
type MetricRegistry struct {
	metrics map[string]Metric
}

// NewMetricRegistry creates an empty metric registry
func NewMetricRegistry() *MetricRegistry {
	return &MetricRegistry{
		metrics: make(map[string]Metric),
	}
}

// NewDefaultRegistry creates a registry with all built-in metrics registered
func NewDefaultRegistry() *MetricRegistry {
	registry := NewMetricRegistry()

	registry.Register(NewCyclomaticComplexityMetric())
	registry.Register(NewWMCMetric())
	registry.Register(NewNOMMetric())
	registry.Register(NewAfferentCouplingMetric())
	registry.Register(NewEfferentCouplingMetric())
	registry.Register(NewStereotypeRatioMetric())

	return registry
}

// Register adds a metric to the registry
func (r *MetricRegistry) Register(metric Metric) {
	r.metrics[metric.Name()] = metric
}

// Get retrieves a metric by name
func (r *MetricRegistry) Get(name string) (Metric, bool) {
	metric, ok := r.metrics[name]
	return metric, ok
}

// GetAll returns all registered metrics
func (r *MetricRegistry) GetAll() []Metric {
	result := make([]Metric, 0, len(r.metrics))
	for _, metric := range r.metrics {
		result = append(result, metric)
	}
	return result
}

// errScopeTooNarrow reports a class-level metric asked about a single method
func errScopeTooNarrow(metricName string) error {
	return fmt.Errorf("metric %s is class-level and cannot be measured on a single method", metricName)
}
