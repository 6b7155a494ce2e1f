package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/types"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func structuredResume() *types.Resume {
	return &types.Resume{
		TemplateID: "classic",
		Data: types.Sections{
			ContactInfo: types.ContactInfo{
				Name:  "Jane Doe",
				Email: "jane@example.com",
				Phone: "555-0100",
			},
			Summary: "Backend engineer with eight years of experience.",
			Experience: []types.ExperienceEntry{
				{
					ID:        "exp-1",
					Title:     "Senior Engineer",
					Company:   "Acme Corp",
					StartDate: "2020-01",
					EndDate:   "present",
					Bullets:   []string{"Shipped the billing rewrite", "Cut deploy time by 40%"},
				},
			},
			Education: []types.EducationEntry{
				{ID: "edu-1", School: "State University", Degree: "BSc", Field: "Computer Science", EndDate: "2016-05", GPA: "3.8"},
			},
			Skills: map[string][]string{
				"Languages":  {"Go", "Python"},
				"Datastores": {"Postgres", "Redis"},
			},
			SkillCategories: []string{"Languages", "Datastores"},
		},
	}
}

func TestRender_AllTemplates(t *testing.T) {
	r := NewRenderer()
	res := structuredResume()

	for _, id := range TemplateIDs {
		t.Run(id, func(t *testing.T) {
			html, err := r.Render(res, id)
			require.NoError(t, err)

			doc := parseHTML(t, html)
			assert.Equal(t, "Jane Doe", doc.Find("h1").Text())
			assert.Contains(t, html, "jane@example.com")
		})
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(structuredResume(), "neon")

	var unknownErr *ErrUnknownTemplate
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "neon", unknownErr.TemplateID)
}

func TestRender_EmptyTemplateIDUsesDefault(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render(structuredResume(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestRender_MissingSectionsOmitted(t *testing.T) {
	r := NewRenderer()
	res := structuredResume()
	res.Data.Projects = nil
	res.Data.Volunteer = nil

	html, err := r.Render(res, "classic")
	require.NoError(t, err)

	doc := parseHTML(t, html)
	headings := doc.Find("h2").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.NotContains(t, headings, "Projects")
	assert.NotContains(t, headings, "Volunteer")
	assert.Contains(t, headings, "Experience")
	assert.Contains(t, headings, "Education")
}

func TestRender_SectionOrderFixed(t *testing.T) {
	r := NewRenderer()
	res := structuredResume()
	res.Data.Projects = []types.ProjectEntry{{ID: "p1", Name: "CLI tool"}}

	html, err := r.Render(res, "modern")
	require.NoError(t, err)

	doc := parseHTML(t, html)
	headings := doc.Find("h2").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"Summary", "Experience", "Education", "Projects", "Skills"}, headings)
}

func TestRender_DatesNormalized(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render(structuredResume(), "classic")
	require.NoError(t, err)

	assert.Contains(t, html, "Jan 2020 - Present")
}

func TestRender_SkillCategoryOrderPreserved(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render(structuredResume(), "minimal")
	require.NoError(t, err)

	assert.Less(t, strings.Index(html, "Languages"), strings.Index(html, "Datastores"))
	assert.Contains(t, html, "Go, Python")
}

func TestRender_StructuredPathTakesPrecedence(t *testing.T) {
	r := NewRenderer()
	res := structuredResume()
	// Raw text present alongside structured data must be ignored.
	res.RawText = "EXPERIENCE\n• Ghost Entry  1999-2000"

	html, err := r.Render(res, "classic")
	require.NoError(t, err)

	assert.NotContains(t, html, "Ghost Entry")
	assert.Contains(t, html, "Senior Engineer")
}

func TestRender_FallbackFromRawText(t *testing.T) {
	r := NewRenderer()
	res := &types.Resume{
		RawText: "Jane Doe\njane@example.com\n\nEXPERIENCE\n• Software Engineer  2020-2022\n• Built internal tooling",
	}

	html, err := r.Render(res, "classic")
	require.NoError(t, err)

	doc := parseHTML(t, html)
	assert.Equal(t, "Jane Doe", doc.Find("h1").Text())
	assert.Equal(t, "EXPERIENCE", doc.Find("section.fallback h2").Text())
	assert.Contains(t, doc.Find(".entry-title").Text(), "Software Engineer")
	assert.Contains(t, doc.Find(".entry-dates").Text(), "2020-2022")
	assert.Contains(t, doc.Find("li").Text(), "Built internal tooling")
}

func TestRender_EscapesUserContent(t *testing.T) {
	r := NewRenderer()
	res := structuredResume()
	res.Data.ContactInfo.Name = `<script>alert("x")</script>`

	html, err := r.Render(res, "compact")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}
