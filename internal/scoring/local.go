package scoring

import (
	"context"
	"regexp"
	"strings"

	"github.com/resumeforge/resume-maker/internal/types"
)

// Component weights for the local heuristic score.
const (
	contactWeight  = 0.20
	sectionsWeight = 0.30
	bulletsWeight  = 0.30
	keywordWeight  = 0.20
)

var (
	digitPattern = regexp.MustCompile(`\d`)
	wordPattern  = regexp.MustCompile(`[A-Za-z][A-Za-z+#.-]+`)
)

// actionVerbs are the leading words ATS heuristics reward in bullets.
var actionVerbs = map[string]bool{
	"built": true, "led": true, "designed": true, "developed": true,
	"implemented": true, "launched": true, "shipped": true, "created": true,
	"improved": true, "reduced": true, "increased": true, "migrated": true,
	"automated": true, "optimized": true, "delivered": true, "managed": true,
	"owned": true, "drove": true, "architected": true, "scaled": true,
	"cut": true, "grew": true, "established": true, "mentored": true,
}

// stopwords excluded from job-description keyword matching.
var stopwords = map[string]bool{
	"in": true, "on": true, "to": true, "at": true, "of": true, "we": true,
	"be": true, "an": true, "or": true, "as": true, "is": true, "it": true,
	"by": true, "if": true, "do": true, "us": true,
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "will": true, "our": true, "your": true, "this": true,
	"that": true, "have": true, "has": true, "from": true, "about": true,
	"who": true, "what": true, "their": true, "they": true, "them": true,
	"work": true, "working": true, "team": true, "role": true, "years": true,
	"experience": true, "ability": true, "strong": true, "skills": true,
}

// LocalEngine is the free scoring path: deterministic heuristics over the
// resume content. It fills only TotalScore and Rating.
type LocalEngine struct{}

// NewLocalEngine returns the heuristic scorer.
func NewLocalEngine() *LocalEngine {
	return &LocalEngine{}
}

// Score computes a 0-100 ATS compatibility estimate. The context parameter
// keeps the signature aligned with the AI engine; no I/O happens here.
func (e *LocalEngine) Score(_ context.Context, res *types.Resume, jobDescription string) (*types.ScoreResult, error) {
	text := flattenResume(res)
	if strings.TrimSpace(text) == "" {
		return nil, &ErrEmptyResume{}
	}

	components := []struct {
		weight float64
		score  float64
		used   bool
	}{
		{contactWeight, contactScore(&res.Data.ContactInfo), true},
		{sectionsWeight, sectionCoverageScore(&res.Data), true},
		{bulletsWeight, bulletQualityScore(&res.Data), true},
		{keywordWeight, keywordOverlapScore(text, jobDescription), jobDescription != ""},
	}

	total := 0.0
	weightUsed := 0.0
	for _, c := range components {
		if !c.used {
			continue
		}
		total += c.weight * c.score
		weightUsed += c.weight
	}
	// Renormalize when the keyword component is absent so a missing job
	// description does not cap the score.
	score := 0.0
	if weightUsed > 0 {
		score = 100 * total / weightUsed
	}
	score = clamp(score, 0, 100)

	return &types.ScoreResult{
		TotalScore:             score,
		Rating:                 types.RatingForScore(score),
		ScoringMethod:          types.ScoringMethodLocal,
		JobDescriptionProvided: jobDescription != "",
	}, nil
}

// contactScore rewards complete contact information. A profile link
// (LinkedIn or GitHub) counts as one slot.
func contactScore(c *types.ContactInfo) float64 {
	present := 0
	if c.Name != "" {
		present++
	}
	if c.Email != "" {
		present++
	}
	if c.Phone != "" {
		present++
	}
	if c.Location != "" {
		present++
	}
	if c.LinkedIn != "" || c.GitHub != "" {
		present++
	}
	return float64(present) / 5.0
}

// sectionCoverageScore rewards having the sections ATS parsers look for.
func sectionCoverageScore(s *types.Sections) float64 {
	present := 0
	if strings.TrimSpace(s.Summary) != "" {
		present++
	}
	if len(s.Experience) > 0 {
		present++
	}
	if len(s.Education) > 0 {
		present++
	}
	if len(s.Skills) > 0 {
		present++
	}
	return float64(present) / 4.0
}

// bulletQualityScore averages two signals over all experience and project
// bullets: leading action verbs and quantified outcomes (any digit).
func bulletQualityScore(s *types.Sections) float64 {
	var bullets []string
	for _, e := range s.Experience {
		bullets = append(bullets, e.Bullets...)
	}
	for _, p := range s.Projects {
		bullets = append(bullets, p.Bullets...)
	}
	if len(bullets) == 0 {
		return 0.0
	}

	verbHits := 0
	digitHits := 0
	for _, b := range bullets {
		fields := strings.Fields(strings.ToLower(b))
		if len(fields) > 0 && actionVerbs[strings.Trim(fields[0], ".,;:")] {
			verbHits++
		}
		if digitPattern.MatchString(b) {
			digitHits++
		}
	}

	n := float64(len(bullets))
	return (float64(verbHits)/n + float64(digitHits)/n) / 2.0
}

// keywordOverlapScore measures how many significant job-description words
// appear in the resume text. Whole-word matches only, so a short keyword
// never matches a fragment of a longer word. Case-insensitive, stopwords
// excluded.
func keywordOverlapScore(resumeText, jobDescription string) float64 {
	if jobDescription == "" {
		return 0.0
	}

	keywords := significantWords(jobDescription)
	if len(keywords) == 0 {
		return 0.0
	}

	resumeWords := significantWords(resumeText)
	matches := 0
	for kw := range keywords {
		if resumeWords[kw] {
			matches++
		}
	}
	return clamp(float64(matches)/float64(len(keywords)), 0, 1)
}

// significantWords extracts the lowercase word set of a text, minus stopwords.
func significantWords(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

// flattenResume produces the plain-text view of a resume used for keyword
// matching. Structured data wins; raw text is the fallback.
func flattenResume(res *types.Resume) string {
	if !res.Data.HasStructuredData() {
		return res.RawText
	}

	var b strings.Builder
	s := &res.Data
	for _, part := range []string{
		s.ContactInfo.Name, s.ContactInfo.Email, s.ContactInfo.Phone,
		s.ContactInfo.Location, s.ContactInfo.LinkedIn, s.ContactInfo.GitHub,
		s.Summary,
	} {
		writeLine(&b, part)
	}
	for _, e := range s.Experience {
		writeLine(&b, e.Title)
		writeLine(&b, e.Company)
		writeLine(&b, e.Description)
		for _, bl := range e.Bullets {
			writeLine(&b, bl)
		}
		writeLine(&b, strings.Join(e.Technologies, " "))
	}
	for _, e := range s.Education {
		writeLine(&b, e.School)
		writeLine(&b, e.Degree)
		writeLine(&b, e.Field)
	}
	for _, p := range s.Projects {
		writeLine(&b, p.Name)
		writeLine(&b, p.Description)
		for _, bl := range p.Bullets {
			writeLine(&b, bl)
		}
		writeLine(&b, strings.Join(p.Technologies, " "))
	}
	for _, v := range s.Volunteer {
		writeLine(&b, v.Organization)
		writeLine(&b, v.Role)
		writeLine(&b, v.Description)
	}
	for _, skills := range s.Skills {
		writeLine(&b, strings.Join(skills, " "))
	}
	return b.String()
}

func writeLine(b *strings.Builder, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	b.WriteString(s)
	b.WriteString("\n")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
