package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resumeforge/resume-maker/internal/export"
	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/resume"
	"github.com/resumeforge/resume-maker/internal/schemas"
	"github.com/resumeforge/resume-maker/internal/types"
)

var (
	renderInput    string
	renderTemplate string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to HTML or PDF",
	Long:  `Render structured resume data from a local JSON file using one of the built-in templates. The output format follows the output file extension: .html or .pdf (PDF requires Chrome).`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to resume sections JSON (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", render.DefaultTemplateID, "Template ID")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "resume.html", "Output path (.html or .pdf)")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(renderInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", renderInput, err)
	}
	if err := schemas.ValidateResumeSections(raw); err != nil {
		return err
	}

	var sections types.Sections
	if err := json.Unmarshal(raw, &sections); err != nil {
		return fmt.Errorf("failed to parse %s: %w", renderInput, err)
	}

	res := &types.Resume{
		ID:         uuid.New(),
		Status:     types.StatusParsed,
		TemplateID: renderTemplate,
		Data:       sections,
	}
	resume.Normalize(res)

	renderer := render.NewRenderer()

	switch strings.ToLower(filepath.Ext(renderOutput)) {
	case ".pdf":
		pdf, err := export.New(renderer).ExportPDF(context.Background(), res, renderTemplate)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderOutput, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOutput, err)
		}
	default:
		html, err := renderer.Render(res, renderTemplate)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderOutput, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOutput, err)
		}
	}

	fmt.Printf("Wrote %s\n", renderOutput)
	return nil
}
