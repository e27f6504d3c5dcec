package report

import (
	"encoding/json"
	"strings"
	"testing"

	"maintbot/internal/checker"
)

func sampleVerdicts() []checker.Verdict {
	return []checker.Verdict{
		{CheckerID: "cc-all", SnippetID: "ALL_CODE", Kind: checker.KindMetric, Passed: true},
		{
			CheckerID:       "cc-isavailable",
			SnippetID:       "Methods.ScheduleService.IsAvailable",
			Kind:            checker.KindMetric,
			Passed:          false,
			FailingElements: []string{"Methods.ScheduleService.IsAvailable"},
			Hint:            "Extract the slot search into its own method",
		},
		{
			CheckerID:  "nom-ghost",
			SnippetID:  "Methods.Ghost",
			Kind:       checker.KindMetric,
			Skipped:    true,
			Diagnostic: "unknown snippet id: Methods.Ghost",
		},
		{CheckerID: "required-certs", SnippetID: "Methods.Doctor", Kind: checker.KindRequired, Passed: true},
	}
}

func TestAggregate_SummaryAndOrder(t *testing.T) {
	verdicts := sampleVerdicts()
	r := Aggregate("sub-1", "csharp", verdicts)

	if r.Summary.Total != 4 || r.Summary.Passed != 2 || r.Summary.Failed != 1 || r.Summary.Skipped != 1 {
		t.Fatalf("Unexpected summary: %+v", r.Summary)
	}
	if r.GeneratedAt.IsZero() {
		t.Fatal("Report must carry a generation timestamp")
	}

	for i, verdict := range verdicts {
		if r.Verdicts[i].CheckerID != verdict.CheckerID {
			t.Fatalf("Verdict %d is %s, want %s", i, r.Verdicts[i].CheckerID, verdict.CheckerID)
		}
	}
}

func TestGenerate_Text(t *testing.T) {
	r := Aggregate("sub-1", "csharp", sampleVerdicts())

	out, err := NewGenerator().Generate(r, "text")
	if err != nil {
		t.Fatalf("Failed to generate text report: %v", err)
	}

	for _, want := range []string{
		"[PASS] cc-all",
		"[FAIL] cc-isavailable",
		"[SKIP] nom-ghost",
		"hint: Extract the slot search into its own method",
		"skipped: unknown snippet id: Methods.Ghost",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("Text report missing %q:\n%s", want, out)
		}
	}
}

func TestGenerate_JSON(t *testing.T) {
	r := Aggregate("sub-1", "csharp", sampleVerdicts())

	out, err := NewGenerator().Generate(r, "json")
	if err != nil {
		t.Fatalf("Failed to generate json report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Generated json does not round-trip: %v", err)
	}
	if decoded.SubmissionID != "sub-1" || len(decoded.Verdicts) != 4 {
		t.Fatalf("Unexpected decoded report: %+v", decoded)
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	r := Aggregate("sub-1", "csharp", nil)

	if _, err := NewGenerator().Generate(r, "xml"); err == nil {
		t.Fatal("Expected error for unsupported format")
	}
}

func TestNewSubmissionID_Unique(t *testing.T) {
	if NewSubmissionID() == NewSubmissionID() {
		t.Fatal("Submission ids must be unique")
	}
}
