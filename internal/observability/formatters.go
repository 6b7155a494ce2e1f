// Package observability provides formatted output utilities for CLI commands.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/resumeforge/resume-maker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable CLI mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreResult outputs a human-readable summary of an ATS evaluation.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:   %.1f / 100\n", result.TotalScore))
	sb.WriteString(fmt.Sprintf("Rating:  %s\n", result.Rating))
	sb.WriteString(fmt.Sprintf("Engine:  %s\n", result.ScoringMethod))
	if result.JobDescriptionProvided {
		sb.WriteString("Matched against job description\n")
	}

	if len(result.Breakdown) > 0 {
		sb.WriteString("\nBreakdown:\n")
		for _, name := range sortedKeys(result.Breakdown) {
			sb.WriteString(fmt.Sprintf("  %-20s %.1f\n", name, result.Breakdown[name]))
		}
	}

	appendList(&sb, "Strengths", result.Strengths)
	appendList(&sb, "Weaknesses", result.Weaknesses)
	appendList(&sb, "Missing keywords", result.MissingKeywords)
	appendList(&sb, "Recommendations", result.Recommendations)

	p.printBox("ATS Evaluation", strings.TrimRight(sb.String(), "\n"))
}

// PrintResumeSummary outputs what the structured data contains, so a user
// can sanity-check a parse at a glance.
func (p *Printer) PrintResumeSummary(res *types.Resume) {
	if res == nil {
		return
	}

	var sb strings.Builder
	if name := res.Data.ContactInfo.Name; name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("Status:     %s\n", res.Status))
	sb.WriteString(fmt.Sprintf("Template:   %s\n", res.TemplateID))
	sb.WriteString(fmt.Sprintf("Experience: %d entries\n", len(res.Data.Experience)))
	sb.WriteString(fmt.Sprintf("Education:  %d entries\n", len(res.Data.Education)))
	sb.WriteString(fmt.Sprintf("Projects:   %d entries\n", len(res.Data.Projects)))
	sb.WriteString(fmt.Sprintf("Skills:     %d categories\n", len(res.Data.Skills)))

	p.printBox("Resume", strings.TrimRight(sb.String(), "\n"))
}

func appendList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + title + ":\n")
	for i, item := range items {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
			break
		}
		sb.WriteString("  - " + item + "\n")
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
