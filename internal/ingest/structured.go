package ingest

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/resumeforge/resume-maker/internal/parsing"
	"github.com/resumeforge/resume-maker/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[\d][\d\s().-]{6,}\d`)
	// rangeSeparator splits "2020-2022", "Jan 2020 - Present", "2019 to 2021".
	rangeSeparator = regexp.MustCompile(`\s*[–—-]\s*|\s+to\s+`)
)

// BuildSections maps heuristically parsed text onto the structured resume
// model. Best-effort: unrecognized content is dropped rather than failing.
func BuildSections(cfg *parsing.Config, text string) types.Sections {
	doc := parsing.ParseText(cfg, text)

	s := types.Sections{
		Experience: []types.ExperienceEntry{},
		Education:  []types.EducationEntry{},
		Projects:   []types.ProjectEntry{},
		Volunteer:  []types.VolunteerEntry{},
		Skills:     map[string][]string{},
	}

	s.ContactInfo = contactFromPreamble(doc.Preamble)

	for _, sec := range doc.Sections {
		switch sec.Canonical {
		case "SUMMARY":
			s.Summary = joinSectionText(&sec)
		case "EXPERIENCE":
			for _, e := range sec.Entries {
				if e.IsEmpty() {
					continue
				}
				start, end := splitDateRange(e.Date)
				entry := types.ExperienceEntry{
					ID:        uuid.NewString(),
					Title:     e.Title,
					StartDate: start,
					EndDate:   end,
					Bullets:   e.Bullets,
				}
				if len(e.Lines) > 0 {
					entry.Company = e.Lines[0]
					entry.Description = strings.Join(e.Lines[1:], " ")
				}
				s.Experience = append(s.Experience, entry)
			}
		case "EDUCATION":
			for _, e := range sec.Entries {
				if e.IsEmpty() {
					continue
				}
				start, end := splitDateRange(e.Date)
				entry := types.EducationEntry{
					ID:        uuid.NewString(),
					Degree:    e.Title,
					StartDate: start,
					EndDate:   end,
				}
				if len(e.Lines) > 0 {
					entry.School = e.Lines[0]
				}
				s.Education = append(s.Education, entry)
			}
		case "PROJECTS":
			for _, e := range sec.Entries {
				if e.IsEmpty() {
					continue
				}
				start, end := splitDateRange(e.Date)
				entry := types.ProjectEntry{
					ID:          uuid.NewString(),
					Name:        e.Title,
					StartDate:   start,
					EndDate:     end,
					Bullets:     e.Bullets,
					Description: strings.Join(e.Lines, " "),
				}
				s.Projects = append(s.Projects, entry)
			}
		case "VOLUNTEER":
			for _, e := range sec.Entries {
				if e.IsEmpty() {
					continue
				}
				start, end := splitDateRange(e.Date)
				entry := types.VolunteerEntry{
					ID:        uuid.NewString(),
					Role:      e.Title,
					StartDate: start,
					EndDate:   end,
				}
				if len(e.Lines) > 0 {
					entry.Organization = e.Lines[0]
					entry.Description = strings.Join(e.Lines[1:], " ")
				}
				s.Volunteer = append(s.Volunteer, entry)
			}
		case "SKILLS":
			addSkillLines(&s, &sec)
		}
	}

	return s
}

// contactFromPreamble scans the lines before the first section header for
// contact details. The first line is taken as the candidate name.
func contactFromPreamble(preamble []string) types.ContactInfo {
	var c types.ContactInfo
	for i, line := range preamble {
		if i == 0 && !strings.Contains(line, "@") {
			c.Name = line
			continue
		}
		switch {
		case strings.Contains(line, "linkedin.com"):
			c.LinkedIn = line
		case strings.Contains(line, "github.com"):
			c.GitHub = line
		case emailPattern.MatchString(line):
			if c.Email == "" {
				c.Email = emailPattern.FindString(line)
			}
			if phone := phonePattern.FindString(emailPattern.ReplaceAllString(line, "")); phone != "" && c.Phone == "" {
				c.Phone = strings.TrimSpace(phone)
			}
		case phonePattern.MatchString(line):
			if c.Phone == "" {
				c.Phone = strings.TrimSpace(phonePattern.FindString(line))
			}
		case c.Location == "" && len(line) <= 60:
			c.Location = line
		}
	}
	return c
}

// addSkillLines interprets skill section lines. "Category: a, b" keeps the
// category; bare comma lists land in a generic "Skills" category.
func addSkillLines(s *types.Sections, sec *parsing.Section) {
	addGroup := func(category string, list string) {
		var skills []string
		for _, sk := range strings.Split(list, ",") {
			if sk = strings.TrimSpace(sk); sk != "" {
				skills = append(skills, sk)
			}
		}
		if len(skills) == 0 {
			return
		}
		if _, exists := s.Skills[category]; !exists {
			s.SkillCategories = append(s.SkillCategories, category)
		}
		s.Skills[category] = append(s.Skills[category], skills...)
	}

	for _, e := range sec.Entries {
		for _, line := range append(append([]string{}, e.Lines...), e.Bullets...) {
			if category, list, found := strings.Cut(line, ":"); found && !strings.Contains(category, ",") {
				addGroup(strings.TrimSpace(category), list)
			} else {
				addGroup("Skills", line)
			}
		}
	}
}

// splitDateRange breaks "Jan 2020 - Present" style ranges into start/end.
// A single date is treated as the start.
func splitDateRange(dates string) (string, string) {
	dates = strings.TrimSpace(dates)
	if dates == "" {
		return "", ""
	}
	parts := rangeSeparator.Split(dates, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return dates, ""
}

func joinSectionText(sec *parsing.Section) string {
	var lines []string
	for _, e := range sec.Entries {
		lines = append(lines, e.Lines...)
		lines = append(lines, e.Bullets...)
	}
	return strings.Join(lines, " ")
}
