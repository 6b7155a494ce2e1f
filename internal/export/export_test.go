package export

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/types"
)

func TestExportPDF_UnknownTemplateFailsBeforeBrowser(t *testing.T) {
	e := New(render.NewRenderer())
	res := &types.Resume{Data: types.Sections{ContactInfo: types.ContactInfo{Name: "Jane"}}}

	_, err := e.ExportPDF(t.Context(), res, "holographic")

	var unknownErr *render.ErrUnknownTemplate
	require.ErrorAs(t, err, &unknownErr)
}

func TestExportError_Unwrap(t *testing.T) {
	cause := errors.New("chrome not found")
	err := &ExportError{Message: "pdf rendering failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "chrome not found")
}
