package metrics

import (
	"context"
	"testing"

	"maintbot/internal/model"
)

// testUnit builds a small two-class submission by hand:
// Registry depends on Entry (field + parameter), Entry depends on nothing.
func testUnit() *model.SourceUnit {
	entry := &model.ClassModel{
		Namespace: "App",
		Name:      "Entry",
		Methods: []*model.MethodModel{
			{Name: "Describe", DecisionPoints: 0},
		},
		ReferencedTypes: map[string]bool{"String": true},
	}

	registry := &model.ClassModel{
		Namespace: "App",
		Name:      "Registry",
		Methods: []*model.MethodModel{
			{Name: "Registry", IsConstructor: true, DecisionPoints: 0},
			{Name: "Add", DecisionPoints: 1},
			{Name: "Find", DecisionPoints: 3},
		},
		ReferencedTypes: map[string]bool{"Entry": true, "List": true},
	}

	return &model.SourceUnit{
		Language: "csharp",
		Classes:  []*model.ClassModel{registry, entry},
	}
}

func classScope(unit *model.SourceUnit, name string) model.Scope {
	classes := unit.GetClassesByFullName(name)
	return model.Scope{Kind: model.ScopeClass, Unit: unit, Class: classes[0]}
}

func TestWMC_SumsDirectlyDeclaredMethods(t *testing.T) {
	unit := testUnit()
	metric := NewWMCMetric()

	measurements, err := metric.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to measure WMC: %v", err)
	}
	if len(measurements) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(measurements))
	}

	// Constructor CC 1 + Add CC 2 + Find CC 4
	if measurements[0].Value != 7 {
		t.Fatalf("Expected WMC 7, got %g", measurements[0].Value)
	}

	// Adding a method to an unrelated class must not change it
	unit.Classes[1].Methods = append(unit.Classes[1].Methods, &model.MethodModel{Name: "Extra", DecisionPoints: 5})
	measurements, err = metric.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to re-measure WMC: %v", err)
	}
	if measurements[0].Value != 7 {
		t.Fatalf("WMC changed to %g after modifying an unrelated class", measurements[0].Value)
	}
}

func TestNOM_ExcludesConstructors(t *testing.T) {
	unit := testUnit()
	metric := NewNOMMetric()

	measurements, err := metric.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to measure NOM: %v", err)
	}
	if measurements[0].Value != 2 {
		t.Fatalf("Expected NOM 2, got %g", measurements[0].Value)
	}
}

func TestCoupling_SubmissionSnapshotOnly(t *testing.T) {
	unit := testUnit()

	efferent := NewEfferentCouplingMetric()
	measurements, err := efferent.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to measure efferent coupling: %v", err)
	}
	// Registry references Entry and List; only Entry is declared here
	if measurements[0].Value != 1 {
		t.Fatalf("Expected Ce 1 for Registry, got %g", measurements[0].Value)
	}

	afferent := NewAfferentCouplingMetric()
	measurements, err = afferent.Measure(context.Background(), classScope(unit, "App.Entry"))
	if err != nil {
		t.Fatalf("Failed to measure afferent coupling: %v", err)
	}
	if measurements[0].Value != 1 {
		t.Fatalf("Expected Ca 1 for Entry, got %g", measurements[0].Value)
	}

	measurements, err = afferent.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to measure afferent coupling: %v", err)
	}
	if measurements[0].Value != 0 {
		t.Fatalf("Expected Ca 0 for Registry, got %g", measurements[0].Value)
	}
}

func TestCoupling_SameNameAcrossNamespaces(t *testing.T) {
	// References are keyed by simple name, so a same-named class in
	// another namespace reads as a self-reference and never couples.
	clinicDoctor := &model.ClassModel{
		Namespace:       "Clinic",
		Name:            "Doctor",
		ReferencedTypes: map[string]bool{"Doctor": true},
	}
	hospitalDoctor := &model.ClassModel{
		Namespace:       "Hospital",
		Name:            "Doctor",
		ReferencedTypes: map[string]bool{},
	}
	unit := &model.SourceUnit{
		Language: "csharp",
		Classes:  []*model.ClassModel{clinicDoctor, hospitalDoctor},
	}

	efferent := NewEfferentCouplingMetric()
	measurements, err := efferent.Measure(context.Background(), classScope(unit, "Clinic.Doctor"))
	if err != nil {
		t.Fatalf("Failed to measure efferent coupling: %v", err)
	}
	if measurements[0].Value != 0 {
		t.Fatalf("Expected Ce 0 for same-name reference, got %g", measurements[0].Value)
	}

	afferent := NewAfferentCouplingMetric()
	measurements, err = afferent.Measure(context.Background(), classScope(unit, "Hospital.Doctor"))
	if err != nil {
		t.Fatalf("Failed to measure afferent coupling: %v", err)
	}
	if measurements[0].Value != 0 {
		t.Fatalf("Expected Ca 0 for same-name reference, got %g", measurements[0].Value)
	}
}

func TestCyclomaticComplexity_PerMethodUnderUnitScope(t *testing.T) {
	unit := testUnit()
	metric := NewCyclomaticComplexityMetric()

	measurements, err := metric.Measure(context.Background(), model.Scope{Kind: model.ScopeUnit, Unit: unit})
	if err != nil {
		t.Fatalf("Failed to measure complexity: %v", err)
	}
	if len(measurements) != 4 {
		t.Fatalf("Expected one measurement per method, got %d", len(measurements))
	}
	for _, m := range measurements {
		if m.Value < 1 {
			t.Fatalf("Complexity of %s is %g, want >= 1", m.Element, m.Value)
		}
	}
}

func TestClassMetric_RejectsMethodScope(t *testing.T) {
	unit := testUnit()
	registry := unit.Classes[0]
	scope := model.Scope{
		Kind:       model.ScopeMethod,
		Unit:       unit,
		Method:     registry.Methods[1],
		OwnerClass: registry,
	}

	for _, metric := range []Metric{NewWMCMetric(), NewNOMMetric(), NewAfferentCouplingMetric(), NewEfferentCouplingMetric()} {
		if _, err := metric.Measure(context.Background(), scope); err == nil {
			t.Fatalf("Metric %s accepted a method scope", metric.Name())
		}
	}
}

func TestStereotypeRatio(t *testing.T) {
	unit := testUnit()
	registry := unit.Classes[0]
	registry.Methods[1].OwnFieldAccesses = 3
	registry.Methods[1].ExternalCalls = 1

	metric := NewStereotypeRatioMetric()
	measurements, err := metric.Measure(context.Background(), classScope(unit, "App.Registry"))
	if err != nil {
		t.Fatalf("Failed to measure stereotype ratio: %v", err)
	}
	if measurements[0].Value != 0.75 {
		t.Fatalf("Expected ratio 0.75, got %g", measurements[0].Value)
	}

	// A class touching nothing is fully cohesive
	measurements, err = metric.Measure(context.Background(), classScope(unit, "App.Entry"))
	if err != nil {
		t.Fatalf("Failed to measure stereotype ratio: %v", err)
	}
	if measurements[0].Value != 1.0 {
		t.Fatalf("Expected ratio 1.0 for idle class, got %g", measurements[0].Value)
	}
}

func TestDefaultRegistry_KnowsAllMetricNames(t *testing.T) {
	registry := NewDefaultRegistry()

	names := []string{
		MetricCyclomaticComplexity,
		MetricWeightedMethodsPerClass,
		MetricNumberOfMethods,
		MetricAfferentCoupling,
		MetricEfferentCoupling,
		MetricStereotypeRatio,
	}
	for _, name := range names {
		if _, ok := registry.Get(name); !ok {
			t.Fatalf("Metric %s not registered", name)
		}
	}
}
