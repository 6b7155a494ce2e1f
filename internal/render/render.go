package render

import (
	"embed"
	"html/template"
	"sort"
	"strings"

	"github.com/resumeforge/resume-maker/internal/parsing"
	"github.com/resumeforge/resume-maker/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// TemplateIDs is the fixed set of visual templates, in display order.
var TemplateIDs = []string{"classic", "modern", "minimal", "compact"}

// DefaultTemplateID is used when a resume has no template selected.
const DefaultTemplateID = "classic"

// IsValidTemplate reports whether id names one of the fixed templates.
func IsValidTemplate(id string) bool {
	for _, t := range TemplateIDs {
		if t == id {
			return true
		}
	}
	return false
}

// TemplateData is the view model passed to the HTML templates.
type TemplateData struct {
	Contact      types.ContactInfo
	ContactParts []string
	Summary      string
	Experience   []Entry
	Education    []Entry
	Projects     []Entry
	Volunteer    []Entry
	SkillGroups  []SkillGroup
	Fallback     []FallbackSection
}

// Entry is the rendered view of one experience/education/project record.
type Entry struct {
	Title       string
	Subtitle    string
	Dates       string
	Description string
	Meta        string
	Bullets     []string
}

// SkillGroup is one skill category and its skills, in display order.
type SkillGroup struct {
	Category string
	Skills   []string
}

// FallbackSection mirrors a heuristically parsed text section.
type FallbackSection struct {
	Heading string
	Entries []FallbackEntry
}

// FallbackEntry is one parsed entry on the text-fallback path.
type FallbackEntry struct {
	Title   string
	Date    string
	Lines   []string
	Bullets []string
}

// Renderer renders resumes into the fixed template set.
type Renderer struct {
	tmpl      *template.Template
	parserCfg *parsing.Config
}

// NewRenderer parses the embedded templates. It panics on a malformed
// embedded template, which can only happen at build time.
func NewRenderer() *Renderer {
	tmpl := template.Must(
		template.New("resume").
			Funcs(template.FuncMap{"join": strings.Join}).
			ParseFS(templateFS, "templates/*.html.tmpl"),
	)
	return &Renderer{tmpl: tmpl, parserCfg: parsing.DefaultConfig()}
}

// Render produces the HTML for a resume in the given template. Structured
// data takes precedence; the raw-text heuristic path is used only when no
// structured fields exist. Missing sections are omitted entirely.
func (r *Renderer) Render(res *types.Resume, templateID string) (string, error) {
	if templateID == "" {
		templateID = DefaultTemplateID
	}
	if !IsValidTemplate(templateID) {
		return "", &ErrUnknownTemplate{TemplateID: templateID}
	}

	data := r.buildTemplateData(res)

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, templateID, data); err != nil {
		return "", &RenderError{Message: "failed to execute template " + templateID, Cause: err}
	}
	return out.String(), nil
}

func (r *Renderer) buildTemplateData(res *types.Resume) *TemplateData {
	if res.Data.HasStructuredData() {
		return buildStructuredData(&res.Data)
	}
	return r.buildFallbackData(res.RawText)
}

func buildStructuredData(s *types.Sections) *TemplateData {
	data := &TemplateData{
		Contact:      s.ContactInfo,
		ContactParts: contactParts(s.ContactInfo),
		Summary:      strings.TrimSpace(s.Summary),
	}

	for _, e := range s.Experience {
		data.Experience = append(data.Experience, Entry{
			Title:       e.Title,
			Subtitle:    joinNonEmpty([]string{e.Company, e.Location}, ", "),
			Dates:       FormatDateRange(e.StartDate, e.EndDate),
			Description: e.Description,
			Bullets:     e.Bullets,
			Meta:        technologiesMeta(e.Technologies),
		})
	}

	for _, e := range s.Education {
		title := e.Degree
		if e.Field != "" {
			title = joinNonEmpty([]string{e.Degree, e.Field}, " in ")
		}
		meta := ""
		if e.GPA != "" {
			meta = "GPA: " + e.GPA
		}
		data.Education = append(data.Education, Entry{
			Title:    title,
			Subtitle: e.School,
			Dates:    FormatDateRange(e.StartDate, e.EndDate),
			Meta:     meta,
		})
	}

	for _, p := range s.Projects {
		data.Projects = append(data.Projects, Entry{
			Title:       p.Name,
			Subtitle:    joinNonEmpty([]string{p.Role, p.URL}, " — "),
			Dates:       FormatDateRange(p.StartDate, p.EndDate),
			Description: p.Description,
			Bullets:     p.Bullets,
			Meta:        technologiesMeta(p.Technologies),
		})
	}

	for _, v := range s.Volunteer {
		data.Volunteer = append(data.Volunteer, Entry{
			Title:       v.Role,
			Subtitle:    v.Organization,
			Dates:       FormatDateRange(v.StartDate, v.EndDate),
			Description: v.Description,
		})
	}

	data.SkillGroups = skillGroups(s)

	return data
}

// buildFallbackData maps the heuristic text parse onto the template view.
func (r *Renderer) buildFallbackData(rawText string) *TemplateData {
	data := &TemplateData{}
	if strings.TrimSpace(rawText) == "" {
		return data
	}

	doc := parsing.ParseText(r.parserCfg, rawText)

	if len(doc.Preamble) > 0 {
		data.Contact.Name = doc.Preamble[0]
		data.ContactParts = doc.Preamble[1:]
	}

	for _, sec := range doc.Sections {
		fs := FallbackSection{Heading: sec.Heading}
		for _, e := range sec.Entries {
			fs.Entries = append(fs.Entries, FallbackEntry{
				Title:   e.Title,
				Date:    FormatDate(e.Date),
				Lines:   e.Lines,
				Bullets: e.Bullets,
			})
		}
		if len(fs.Entries) > 0 {
			data.Fallback = append(data.Fallback, fs)
		}
	}

	return data
}

// skillGroups orders categories by SkillCategories when present,
// falling back to sorted category names for a stable display.
func skillGroups(s *types.Sections) []SkillGroup {
	if len(s.Skills) == 0 {
		return nil
	}

	order := s.SkillCategories
	if len(order) == 0 {
		for cat := range s.Skills {
			order = append(order, cat)
		}
		sort.Strings(order)
	}

	var groups []SkillGroup
	seen := make(map[string]bool)
	for _, cat := range order {
		skills, ok := s.Skills[cat]
		if !ok || len(skills) == 0 || seen[cat] {
			continue
		}
		seen[cat] = true
		groups = append(groups, SkillGroup{Category: cat, Skills: skills})
	}
	return groups
}

func contactParts(c types.ContactInfo) []string {
	var parts []string
	for _, p := range []string{c.Email, c.Phone, c.Location, c.LinkedIn, c.GitHub} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func technologiesMeta(techs []string) string {
	if len(techs) == 0 {
		return ""
	}
	return "Technologies: " + strings.Join(techs, ", ")
}
