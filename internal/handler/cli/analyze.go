package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"maintbot/internal/report"
	"maintbot/internal/service"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		sourceFile   string
		checkersFile string
		language     string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate one submission",
		Long:  "Indexes a source file, runs every configured checker against it and prints the maintainability report",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(sourceFile)
			if err != nil {
				return fmt.Errorf("reading source file: %w", err)
			}

			if checkersFile != "" {
				h.cfg.App.CheckerFile = checkersFile
			}

			evaluation, err := service.NewEvaluationService(h.cfg, h.logger)
			if err != nil {
				return fmt.Errorf("initializing evaluation service: %w", err)
			}

			result, err := evaluation.Evaluate(context.Background(), "", language, source, nil)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			generator := report.NewGenerator()
			output, err := generator.Generate(result, format)
			if err != nil {
				return err
			}
			fmt.Println(output)

			// Summary to stderr so the report stays pipeable
			fmt.Fprintf(os.Stderr, "\nEvaluation complete: %d passed, %d failed, %d skipped\n",
				result.Summary.Passed, result.Summary.Failed, result.Summary.Skipped)

			if result.Summary.Failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFile, "source", "s", "", "Path to the submission source file (required)")
	cmd.Flags().StringVarP(&checkersFile, "checkers", "k", "", "Path to the checker collection file")
	cmd.Flags().StringVarP(&language, "language", "l", "csharp", "Submission language (csharp, java)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	cmd.MarkFlagRequired("source")

	return cmd
}
