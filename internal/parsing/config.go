// Package parsing provides the heuristic line-based parser that turns
// unstructured resume text into sections, entries, and bullet lists.
// The parser is best-effort pattern matching; its keyword and format
// assumptions are data in Config so they can be tested and extended
// without touching the parse loop.
package parsing

import "regexp"

// SectionVocabulary maps a canonical section name to the header keywords
// that identify it in free text.
type SectionVocabulary struct {
	Canonical string
	Keywords  []string
}

// Config holds the pattern data the heuristic parser matches against.
type Config struct {
	Sections      []SectionVocabulary
	BulletMarkers []string
	// EntryHeader matches lines like "Software Engineer  2020-2022":
	// a title, a gap of two or more spaces, and date text with a trailing
	// year or "present".
	EntryHeader *regexp.Regexp
	// MaxHeaderLen is the longest a line can be and still be considered
	// a section header. Longer lines are treated as prose.
	MaxHeaderLen int
}

// DefaultConfig returns the stock vocabulary used across the service.
func DefaultConfig() *Config {
	return &Config{
		Sections: []SectionVocabulary{
			{Canonical: "SUMMARY", Keywords: []string{"SUMMARY", "OBJECTIVE", "PROFILE", "ABOUT"}},
			{Canonical: "EXPERIENCE", Keywords: []string{"EXPERIENCE", "EMPLOYMENT", "WORK HISTORY"}},
			{Canonical: "EDUCATION", Keywords: []string{"EDUCATION", "ACADEMIC"}},
			{Canonical: "PROJECTS", Keywords: []string{"PROJECTS", "PORTFOLIO"}},
			{Canonical: "SKILLS", Keywords: []string{"SKILLS", "TECHNOLOGIES", "COMPETENCIES"}},
			{Canonical: "VOLUNTEER", Keywords: []string{"VOLUNTEER", "VOLUNTEERING", "COMMUNITY"}},
			{Canonical: "CERTIFICATIONS", Keywords: []string{"CERTIFICATIONS", "CERTIFICATES", "LICENSES"}},
		},
		BulletMarkers: []string{"•", "-", "*", "‣"},
		EntryHeader:   regexp.MustCompile(`^(.*\S)\s{2,}(\S.*(?:\d{4}|(?i:present)))$`),
		MaxHeaderLen:  48,
	}
}
