package checker

import (
	"fmt"

	"maintbot/internal/lexical"
	"maintbot/internal/metrics"
)

// CheckerKind distinguishes the two checker families
type CheckerKind string

const (
	KindMetric   CheckerKind = "metric"
	KindBanned   CheckerKind = "banned"
	KindRequired CheckerKind = "required"
)

// CheckerConfig is one configured rule: a snippet address plus either a
// metric threshold range or a word set, and a static author-provided
// hint shown on failure.
type CheckerConfig struct {
	ID        string      `json:"id"`
	SnippetID string      `json:"snippet_id"`
	Kind      CheckerKind `json:"kind"`

	// Metric checkers: inclusive threshold range
	MetricName string  `json:"metric_name,omitempty"`
	Low        float64 `json:"low,omitempty"`
	High       float64 `json:"high,omitempty"`

	// Lexical checkers: case-insensitive word set
	Words []string `json:"words,omitempty"`

	Hint string `json:"hint,omitempty"`
}

// Verdict is the outcome of evaluating one checker against one
// submission. Produced fresh per evaluation and never mutated after.
type Verdict struct {
	CheckerID  string      `json:"checker_id"`
	SnippetID  string      `json:"snippet_id"`
	Kind       CheckerKind `json:"kind"`
	MetricName string      `json:"metric_name,omitempty"`

	Passed bool `json:"passed"`

	// Skipped marks an authoring fault (snippet id did not resolve,
	// metric not applicable to the resolved scope). It is surfaced
	// distinctly from a failed maintainability check and does not
	// prevent other checkers from evaluating.
	Skipped    bool   `json:"skipped,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`

	// Metric checkers: measured value per element in scope, plus the
	// addresses of elements outside the threshold range
	Measurements    []metrics.Measurement `json:"measurements,omitempty"`
	FailingElements []string              `json:"failing_elements,omitempty"`

	// Lexical checkers
	MatchedWords []lexical.Match `json:"matched_words,omitempty"`
	MissingWords []string        `json:"missing_words,omitempty"`

	Hint string `json:"hint,omitempty"`
}

// InvalidConfigError rejects a malformed checker at registration time,
// before any submission is evaluated
type InvalidConfigError struct {
	CheckerID string
	Reason    string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid checker config %s: %s", e.CheckerID, e.Reason)
}

// Validate checks the structural invariants of a config: a known kind
// and snippet id, low <= high and a registered metric name for metric
// checkers, a non-empty word set for lexical checkers.
func (c *CheckerConfig) Validate(registry *metrics.MetricRegistry) error {
	if c.SnippetID == "" {
		return &InvalidConfigError{CheckerID: c.ID, Reason: "snippet id is empty"}
	}

	switch c.Kind {
	case KindMetric:
		if _, ok := registry.Get(c.MetricName); !ok {
			return &InvalidConfigError{CheckerID: c.ID, Reason: fmt.Sprintf("unknown metric name: %s", c.MetricName)}
		}
		if c.Low > c.High {
			return &InvalidConfigError{CheckerID: c.ID, Reason: fmt.Sprintf("threshold low %g > high %g", c.Low, c.High)}
		}
	case KindBanned, KindRequired:
		if len(c.Words) == 0 {
			return &InvalidConfigError{CheckerID: c.ID, Reason: "word set is empty"}
		}
		for _, word := range c.Words {
			if word == "" {
				return &InvalidConfigError{CheckerID: c.ID, Reason: "word set contains an empty word"}
			}
		}
	default:
		return &InvalidConfigError{CheckerID: c.ID, Reason: fmt.Sprintf("unknown checker kind: %s", c.Kind)}
	}

	return nil
}
