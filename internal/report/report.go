package report

import (
	"time"

	"maintbot/internal/checker"

	"github.com/google/uuid"
)

// Summary counts verdicts by outcome
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Report is the complete maintainability report for one submission:
// the verdicts of every configured checker, in configured order.
// Read-only once built.
type Report struct {
	SubmissionID string            `json:"submission_id"`
	Language     string            `json:"language"`
	Verdicts     []checker.Verdict `json:"verdicts"`
	Summary      Summary           `json:"summary"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// NewSubmissionID mints an id for callers that did not supply one
func NewSubmissionID() string {
	return uuid.NewString()
}

// Aggregate combines all checker verdicts for a submission into one
// report. Verdicts keep the configured checker order; there is no
// short-circuiting, so a submission gets its complete multi-issue
// report in one pass.
func Aggregate(submissionID, language string, verdicts []checker.Verdict) *Report {
	summary := Summary{Total: len(verdicts)}
	for _, verdict := range verdicts {
		switch {
		case verdict.Skipped:
			summary.Skipped++
		case verdict.Passed:
			summary.Passed++
		default:
			summary.Failed++
		}
	}

	return &Report{
		SubmissionID: submissionID,
		Language:     language,
		Verdicts:     verdicts,
		Summary:      summary,
		GeneratedAt:  time.Now().UTC(),
	}
}
