package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText_SectionWithEntryHeader(t *testing.T) {
	text := "EXPERIENCE\n• Software Engineer  2020-2022"

	doc := ParseText(DefaultConfig(), text)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "EXPERIENCE", doc.Sections[0].Heading)
	assert.Equal(t, "EXPERIENCE", doc.Sections[0].Canonical)

	require.Len(t, doc.Sections[0].Entries, 1)
	entry := doc.Sections[0].Entries[0]
	assert.Equal(t, "Software Engineer", entry.Title)
	assert.Equal(t, "2020-2022", entry.Date)
}

func TestParseText_PreambleBeforeFirstSection(t *testing.T) {
	text := "Jane Doe\njane@example.com\n\nEDUCATION\nState University"

	doc := ParseText(DefaultConfig(), text)

	assert.Equal(t, []string{"Jane Doe", "jane@example.com"}, doc.Preamble)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "EDUCATION", doc.Sections[0].Canonical)
	require.Len(t, doc.Sections[0].Entries, 1)
	assert.Equal(t, []string{"State University"}, doc.Sections[0].Entries[0].Lines)
}

func TestParseText_BulletsAndLooseLines(t *testing.T) {
	text := `EXPERIENCE
Senior Engineer  Jan 2021 - Present
Acme Corp, Remote
• Shipped the billing rewrite
- Cut deploy time by 40%
EDUCATION
BSc Computer Science  2016-2020`

	doc := ParseText(DefaultConfig(), text)

	require.Len(t, doc.Sections, 2)

	exp := doc.Sections[0]
	require.Len(t, exp.Entries, 1)
	assert.Equal(t, "Senior Engineer", exp.Entries[0].Title)
	assert.Equal(t, "Jan 2021 - Present", exp.Entries[0].Date)
	assert.Equal(t, []string{"Acme Corp, Remote"}, exp.Entries[0].Lines)
	assert.Equal(t, []string{"Shipped the billing rewrite", "Cut deploy time by 40%"}, exp.Entries[0].Bullets)

	edu := doc.Sections[1]
	require.Len(t, edu.Entries, 1)
	assert.Equal(t, "BSc Computer Science", edu.Entries[0].Title)
	assert.Equal(t, "2016-2020", edu.Entries[0].Date)
}

func TestParseText_HeaderSynonyms(t *testing.T) {
	tests := []struct {
		line      string
		canonical string
	}{
		{"WORK HISTORY", "EXPERIENCE"},
		{"Work Experience", "EXPERIENCE"},
		{"Technical Skills", "SKILLS"},
		{"Skills:", "SKILLS"},
		{"PROFESSIONAL SUMMARY", "SUMMARY"},
		{"Volunteering", "VOLUNTEER"},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		canonical, ok := cfg.matchSectionHeader(tt.line)
		assert.True(t, ok, "expected %q to be a section header", tt.line)
		assert.Equal(t, tt.canonical, canonical, "line %q", tt.line)
	}
}

func TestParseText_ProseNotMistakenForHeader(t *testing.T) {
	line := "Gained valuable experience working with distributed teams across education technology"
	_, ok := DefaultConfig().matchSectionHeader(line)
	assert.False(t, ok)
}

func TestParseText_EmptyInput(t *testing.T) {
	doc := ParseText(DefaultConfig(), "")
	assert.Empty(t, doc.Preamble)
	assert.Empty(t, doc.Sections)
}

func TestDocument_SectionLookup(t *testing.T) {
	doc := ParseText(DefaultConfig(), "SKILLS\nGo, Postgres")
	require.NotNil(t, doc.Section("SKILLS"))
	assert.Nil(t, doc.Section("EXPERIENCE"))
}
