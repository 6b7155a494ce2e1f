//go:build integration

package export

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/types"
)

// Requires Chrome/Chromium on the host. Set TEST_CHROME=1 to run.

func TestIntegration_ExportPDF(t *testing.T) {
	if os.Getenv("TEST_CHROME") == "" {
		t.Skip("TEST_CHROME not set, skipping browser integration test")
	}

	e := New(render.NewRenderer())
	res := &types.Resume{
		Data: types.Sections{
			ContactInfo: types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
			Experience: []types.ExperienceEntry{
				{ID: "e1", Title: "Engineer", Company: "Acme", Bullets: []string{"Built things"}},
			},
		},
	}

	pdf, err := e.ExportPDF(t.Context(), res, "classic")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a complete PDF document")
}
