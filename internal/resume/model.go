package resume

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/types"
)

// ErrEntryNotFound indicates a section mutation referenced an unknown entry id.
type ErrEntryNotFound struct {
	Section string
	ID      string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Section, e.ID)
}

// Normalize fills safe defaults on a resume loaded from upstream so that
// downstream renderers and scorers never branch on nil. A missing or
// unrecognized status is treated as still-processing rather than failing.
func Normalize(res *types.Resume) {
	switch res.Status {
	case types.StatusUploaded, types.StatusParsing, types.StatusParsed,
		types.StatusScoring, types.StatusScored, types.StatusError:
	default:
		res.Status = types.StatusParsing
	}

	if res.TemplateID == "" || !render.IsValidTemplate(res.TemplateID) {
		res.TemplateID = render.DefaultTemplateID
	}

	if res.Data.Experience == nil {
		res.Data.Experience = []types.ExperienceEntry{}
	}
	if res.Data.Education == nil {
		res.Data.Education = []types.EducationEntry{}
	}
	if res.Data.Projects == nil {
		res.Data.Projects = []types.ProjectEntry{}
	}
	if res.Data.Volunteer == nil {
		res.Data.Volunteer = []types.VolunteerEntry{}
	}
	if res.Data.Skills == nil {
		res.Data.Skills = map[string][]string{}
	}
}

// indexOf finds the position of an entry id in a section slice.
func indexOf[E any](entries []E, id func(E) string, target string) int {
	for i, e := range entries {
		if id(e) == target {
			return i
		}
	}
	return -1
}

// AddExperience appends an entry, assigning a stable id when absent, and
// returns the entry id.
func AddExperience(s *types.Sections, e types.ExperienceEntry) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.Experience = append(s.Experience, e)
	return e.ID
}

// UpdateExperience replaces the entry with the same id in place, preserving
// array order and the identity of untouched entries.
func UpdateExperience(s *types.Sections, e types.ExperienceEntry) error {
	i := indexOf(s.Experience, func(x types.ExperienceEntry) string { return x.ID }, e.ID)
	if i < 0 {
		return &ErrEntryNotFound{Section: "experience", ID: e.ID}
	}
	s.Experience[i] = e
	return nil
}

// RemoveExperience deletes the entry with the given id, preserving the
// order of the remaining entries.
func RemoveExperience(s *types.Sections, id string) error {
	i := indexOf(s.Experience, func(x types.ExperienceEntry) string { return x.ID }, id)
	if i < 0 {
		return &ErrEntryNotFound{Section: "experience", ID: id}
	}
	s.Experience = append(s.Experience[:i], s.Experience[i+1:]...)
	return nil
}

// AddEducation appends an entry, assigning a stable id when absent.
func AddEducation(s *types.Sections, e types.EducationEntry) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.Education = append(s.Education, e)
	return e.ID
}

// UpdateEducation replaces the entry with the same id in place.
func UpdateEducation(s *types.Sections, e types.EducationEntry) error {
	i := indexOf(s.Education, func(x types.EducationEntry) string { return x.ID }, e.ID)
	if i < 0 {
		return &ErrEntryNotFound{Section: "education", ID: e.ID}
	}
	s.Education[i] = e
	return nil
}

// RemoveEducation deletes the entry with the given id.
func RemoveEducation(s *types.Sections, id string) error {
	i := indexOf(s.Education, func(x types.EducationEntry) string { return x.ID }, id)
	if i < 0 {
		return &ErrEntryNotFound{Section: "education", ID: id}
	}
	s.Education = append(s.Education[:i], s.Education[i+1:]...)
	return nil
}

// AddProject appends an entry, assigning a stable id when absent.
func AddProject(s *types.Sections, p types.ProjectEntry) string {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.Projects = append(s.Projects, p)
	return p.ID
}

// UpdateProject replaces the entry with the same id in place.
func UpdateProject(s *types.Sections, p types.ProjectEntry) error {
	i := indexOf(s.Projects, func(x types.ProjectEntry) string { return x.ID }, p.ID)
	if i < 0 {
		return &ErrEntryNotFound{Section: "projects", ID: p.ID}
	}
	s.Projects[i] = p
	return nil
}

// RemoveProject deletes the entry with the given id.
func RemoveProject(s *types.Sections, id string) error {
	i := indexOf(s.Projects, func(x types.ProjectEntry) string { return x.ID }, id)
	if i < 0 {
		return &ErrEntryNotFound{Section: "projects", ID: id}
	}
	s.Projects = append(s.Projects[:i], s.Projects[i+1:]...)
	return nil
}

// AddVolunteer appends an entry, assigning a stable id when absent.
func AddVolunteer(s *types.Sections, v types.VolunteerEntry) string {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.Volunteer = append(s.Volunteer, v)
	return v.ID
}

// UpdateVolunteer replaces the entry with the same id in place.
func UpdateVolunteer(s *types.Sections, v types.VolunteerEntry) error {
	i := indexOf(s.Volunteer, func(x types.VolunteerEntry) string { return x.ID }, v.ID)
	if i < 0 {
		return &ErrEntryNotFound{Section: "volunteer", ID: v.ID}
	}
	s.Volunteer[i] = v
	return nil
}

// RemoveVolunteer deletes the entry with the given id.
func RemoveVolunteer(s *types.Sections, id string) error {
	i := indexOf(s.Volunteer, func(x types.VolunteerEntry) string { return x.ID }, id)
	if i < 0 {
		return &ErrEntryNotFound{Section: "volunteer", ID: id}
	}
	s.Volunteer = append(s.Volunteer[:i], s.Volunteer[i+1:]...)
	return nil
}

// SetSkills replaces a skill category, creating it and appending to the
// category display order when new. An empty skill list removes the category.
func SetSkills(s *types.Sections, category string, skills []string) {
	if s.Skills == nil {
		s.Skills = map[string][]string{}
	}
	if len(skills) == 0 {
		delete(s.Skills, category)
		i := indexOf(s.SkillCategories, func(c string) string { return c }, category)
		if i >= 0 {
			s.SkillCategories = append(s.SkillCategories[:i], s.SkillCategories[i+1:]...)
		}
		return
	}
	if _, exists := s.Skills[category]; !exists {
		s.SkillCategories = append(s.SkillCategories, category)
	}
	s.Skills[category] = skills
}
