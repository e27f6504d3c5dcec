package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Generator renders reports for the CLI and MCP surfaces
type Generator struct{}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a report in the requested format
func (g *Generator) Generate(r *Report, format string) (string, error) {
	switch format {
	case "json":
		return g.generateJSON(r)
	case "text", "":
		return g.generateText(r), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateText(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Maintainability report for submission %s (%s)\n", r.SubmissionID, r.Language))
	sb.WriteString(fmt.Sprintf("Checkers: %d total, %d passed, %d failed, %d skipped\n\n",
		r.Summary.Total, r.Summary.Passed, r.Summary.Failed, r.Summary.Skipped))

	for _, verdict := range r.Verdicts {
		status := "PASS"
		if verdict.Skipped {
			status = "SKIP"
		} else if !verdict.Passed {
			status = "FAIL"
		}
		sb.WriteString(fmt.Sprintf("[%s] %s (%s on %s)\n", status, verdict.CheckerID, verdict.Kind, verdict.SnippetID))

		if verdict.Skipped {
			sb.WriteString(fmt.Sprintf("       skipped: %s\n", verdict.Diagnostic))
			continue
		}

		for _, m := range verdict.Measurements {
			sb.WriteString(fmt.Sprintf("       %s = %g\n", m.Element, m.Value))
		}
		for _, match := range verdict.MatchedWords {
			sb.WriteString(fmt.Sprintf("       banned word %q found in %q\n", match.Word, match.Identifier))
		}
		for _, word := range verdict.MissingWords {
			sb.WriteString(fmt.Sprintf("       required word %q not found\n", word))
		}
		if !verdict.Passed && verdict.Hint != "" {
			sb.WriteString(fmt.Sprintf("       hint: %s\n", verdict.Hint))
		}
	}

	return sb.String()
}
