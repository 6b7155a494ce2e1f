package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/types"
)

func TestPrintScoreResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreResult(&types.ScoreResult{
		TotalScore:    82.5,
		Rating:        "good",
		ScoringMethod: "local",
		Breakdown: map[string]float64{
			"contact":  20,
			"sections": 25,
		},
		Strengths:              []string{"quantified bullets", "clear sections"},
		MissingKeywords:        []string{"kubernetes", "terraform", "aws", "gcp", "azure", "helm", "argo"},
		JobDescriptionProvided: true,
	})

	out := buf.String()
	assert.Contains(t, out, "ATS Evaluation")
	assert.Contains(t, out, "82.5 / 100")
	assert.Contains(t, out, "good")
	assert.Contains(t, out, "contact")
	assert.Contains(t, out, "quantified bullets")
	// Long lists are truncated.
	assert.Contains(t, out, "and 2 more")

	// Breakdown keys come out sorted.
	assert.Less(t, strings.Index(out, "contact"), strings.Index(out, "sections"))
}

func TestPrintScoreResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResumeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeSummary(&types.Resume{
		Status:     types.StatusParsed,
		TemplateID: "classic",
		Data: types.Sections{
			ContactInfo: types.ContactInfo{Name: "Ada Lovelace"},
			Experience:  []types.ExperienceEntry{{ID: "a"}, {ID: "b"}},
			Skills:      map[string][]string{"Languages": {"Go"}},
		},
	})

	out := buf.String()
	require.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "PARSED")
	assert.Contains(t, out, "Experience: 2 entries")
	assert.Contains(t, out, "Skills:     1 categories")
}
