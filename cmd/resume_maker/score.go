package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resumeforge/resume-maker/internal/observability"
	"github.com/resumeforge/resume-maker/internal/resume"
	"github.com/resumeforge/resume-maker/internal/schemas"
	"github.com/resumeforge/resume-maker/internal/scoring"
	"github.com/resumeforge/resume-maker/internal/types"
)

var (
	scoreInput  string
	scoreJob    string
	scorePretty bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume JSON file with the local heuristic engine",
	Long:  `Run the offline ATS heuristics against structured resume data from a local JSON file, optionally matching keywords against a job description text file.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "Path to resume sections JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description text file (optional)")
	scoreCmd.Flags().BoolVar(&scorePretty, "pretty", false, "Human-readable output instead of JSON")
	_ = scoreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(scoreInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", scoreInput, err)
	}
	if err := schemas.ValidateResumeSections(raw); err != nil {
		return err
	}

	var sections types.Sections
	if err := json.Unmarshal(raw, &sections); err != nil {
		return fmt.Errorf("failed to parse %s: %w", scoreInput, err)
	}

	jobDescription := ""
	if scoreJob != "" {
		jd, err := os.ReadFile(scoreJob)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", scoreJob, err)
		}
		jobDescription = string(jd)
	}

	res := &types.Resume{
		ID:     uuid.New(),
		Status: types.StatusParsed,
		Data:   sections,
	}
	resume.Normalize(res)

	result, err := scoring.NewLocalEngine().Score(context.Background(), res, jobDescription)
	if err != nil {
		return err
	}

	if scorePretty {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintResumeSummary(res)
		printer.PrintScoreResult(result)
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
