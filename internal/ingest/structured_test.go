package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/parsing"
)

const sampleResumeText = `Jane Doe
jane@example.com | 555-0100
Berlin, Germany
linkedin.com/in/janedoe

SUMMARY
Backend engineer focused on payment systems.

EXPERIENCE
Senior Engineer  Jan 2020 - Present
Acme Corp
• Built a Go payments service
• Reduced p99 latency by 45%

EDUCATION
BSc Computer Science  2012-2016
State University

SKILLS
Languages: Go, Python
Datastores: Postgres, Redis`

func TestBuildSections_FullDocument(t *testing.T) {
	s := BuildSections(parsing.DefaultConfig(), sampleResumeText)

	assert.Equal(t, "Jane Doe", s.ContactInfo.Name)
	assert.Equal(t, "jane@example.com", s.ContactInfo.Email)
	assert.Equal(t, "555-0100", s.ContactInfo.Phone)
	assert.Equal(t, "Berlin, Germany", s.ContactInfo.Location)
	assert.Equal(t, "linkedin.com/in/janedoe", s.ContactInfo.LinkedIn)

	assert.Equal(t, "Backend engineer focused on payment systems.", s.Summary)

	require.Len(t, s.Experience, 1)
	exp := s.Experience[0]
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "Senior Engineer", exp.Title)
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "Jan 2020", exp.StartDate)
	assert.Equal(t, "Present", exp.EndDate)
	assert.Equal(t, []string{"Built a Go payments service", "Reduced p99 latency by 45%"}, exp.Bullets)

	require.Len(t, s.Education, 1)
	edu := s.Education[0]
	assert.Equal(t, "BSc Computer Science", edu.Degree)
	assert.Equal(t, "State University", edu.School)
	assert.Equal(t, "2012", edu.StartDate)
	assert.Equal(t, "2016", edu.EndDate)

	assert.Equal(t, []string{"Languages", "Datastores"}, s.SkillCategories)
	assert.Equal(t, []string{"Go", "Python"}, s.Skills["Languages"])
	assert.Equal(t, []string{"Postgres", "Redis"}, s.Skills["Datastores"])
}

func TestBuildSections_EmptyText(t *testing.T) {
	s := BuildSections(parsing.DefaultConfig(), "")

	assert.False(t, s.HasStructuredData())
	assert.NotNil(t, s.Experience)
	assert.NotNil(t, s.Skills)
}

func TestBuildSections_BareSkillListGetsGenericCategory(t *testing.T) {
	s := BuildSections(parsing.DefaultConfig(), "SKILLS\nGo, Python, Postgres")

	assert.Equal(t, []string{"Skills"}, s.SkillCategories)
	assert.Equal(t, []string{"Go", "Python", "Postgres"}, s.Skills["Skills"])
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		input string
		start string
		end   string
	}{
		{"2020-2022", "2020", "2022"},
		{"Jan 2020 - Present", "Jan 2020", "Present"},
		{"2019 to 2021", "2019", "2021"},
		{"Mar 2021", "Mar 2021", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		start, end := splitDateRange(tt.input)
		assert.Equal(t, tt.start, start, "input %q", tt.input)
		assert.Equal(t, tt.end, end, "input %q", tt.input)
	}
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText(MimeText, []byte("hello resume"))
	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", []byte{})
	var unsupported *ErrUnsupportedFileType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.Mime)
}

func TestSupportedMime(t *testing.T) {
	assert.True(t, SupportedMime(MimePDF))
	assert.True(t, SupportedMime(MimeDocx))
	assert.True(t, SupportedMime(MimeText))
	assert.False(t, SupportedMime("application/zip"))
}
