// Package types defines the shared data structures for the resume maker.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Status represents where a resume is in its processing lifecycle.
type Status string

// Resume lifecycle statuses. A resume only moves forward:
// UPLOADED -> PARSING -> {PARSED | ERROR} -> SCORING -> {SCORED | ERROR}.
const (
	StatusUploaded Status = "UPLOADED"
	StatusParsing  Status = "PARSING"
	StatusParsed   Status = "PARSED"
	StatusScoring  Status = "SCORING"
	StatusScored   Status = "SCORED"
	StatusError    Status = "ERROR"
)

// Terminal reports whether the status is one where background polling may stop.
func (s Status) Terminal() bool {
	return s == StatusParsed || s == StatusScored || s == StatusError
}

// Scorable reports whether a resume in this status may be scored.
// PARSED and SCORED (re-score) are the only scorable states.
func (s Status) Scorable() bool {
	return s == StatusParsed || s == StatusScored
}

// Resume is the top-level aggregate exchanged with clients and stored in the DB.
type Resume struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Status           Status    `json:"status"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	FileSize         int64     `json:"file_size,omitempty"`
	StorageKey       string    `json:"storage_key,omitempty"`
	TemplateID       string    `json:"template_id"`
	LatestScore      *float64  `json:"latest_score,omitempty"`
	RawText          string    `json:"raw_text,omitempty"`
	Data             Sections  `json:"data"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Sections holds the structured resume content.
type Sections struct {
	ContactInfo ContactInfo         `json:"contact_info"`
	Summary     string              `json:"summary,omitempty"`
	Experience  []ExperienceEntry   `json:"experience"`
	Education   []EducationEntry    `json:"education"`
	Projects    []ProjectEntry      `json:"projects"`
	Volunteer   []VolunteerEntry    `json:"volunteer"`
	Skills      map[string][]string `json:"skills"`
	// SkillCategories preserves the display order of skill categories,
	// since map iteration order is not stable.
	SkillCategories []string `json:"skill_categories,omitempty"`
}

// ContactInfo holds the candidate's contact details. All fields optional.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry is a single work-experience record.
type ExperienceEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// EducationEntry is a single education record.
type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school,omitempty"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	GPA       string `json:"gpa,omitempty"`
}

// ProjectEntry is a single project record.
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Role         string   `json:"role,omitempty"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// VolunteerEntry is a single volunteer-work record.
type VolunteerEntry struct {
	ID           string `json:"id"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// HasStructuredData reports whether any structured section is populated.
// When false, renderers fall back to the raw-text heuristic path.
func (s *Sections) HasStructuredData() bool {
	return s.ContactInfo != (ContactInfo{}) ||
		s.Summary != "" ||
		len(s.Experience) > 0 ||
		len(s.Education) > 0 ||
		len(s.Projects) > 0 ||
		len(s.Volunteer) > 0 ||
		len(s.Skills) > 0
}
