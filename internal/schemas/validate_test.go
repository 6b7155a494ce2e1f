package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/types"
)

func TestValidateResumeSections_ValidDocument(t *testing.T) {
	sections := types.Sections{
		ContactInfo: types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Experience: []types.ExperienceEntry{
			{ID: "e1", Title: "Engineer", Bullets: []string{"Did things"}},
		},
		Skills:          map[string][]string{"Languages": {"Go"}},
		SkillCategories: []string{"Languages"},
	}
	data, err := json.Marshal(sections)
	require.NoError(t, err)

	assert.NoError(t, ValidateResumeSections(data))
}

func TestValidateResumeSections_EmptyObject(t *testing.T) {
	assert.NoError(t, ValidateResumeSections([]byte(`{}`)))
}

func TestValidateResumeSections_WrongTypes(t *testing.T) {
	err := ValidateResumeSections([]byte(`{"experience": "not an array"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, verr.Error(), "experience")
}

func TestValidateResumeSections_UnknownFieldRejected(t *testing.T) {
	err := ValidateResumeSections([]byte(`{"salary_expectation": 100000}`))

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateResumeSections_InvalidJSON(t *testing.T) {
	err := ValidateResumeSections([]byte(`{not json`))
	assert.Error(t, err)
}
