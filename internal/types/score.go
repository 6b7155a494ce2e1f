package types

// Scoring method identifiers recorded on every ScoreResult.
const (
	ScoringMethodLocal = "local"
	ScoringMethodAI    = "ai"
)

// ScoreResult is the outcome of an ATS compatibility scoring run.
// The local engine fills TotalScore and Rating only; the AI engine
// populates every field.
type ScoreResult struct {
	TotalScore             float64            `json:"total_score"`
	Rating                 string             `json:"rating"`
	Breakdown              map[string]float64 `json:"breakdown,omitempty"`
	Strengths              []string           `json:"strengths,omitempty"`
	Weaknesses             []string           `json:"weaknesses,omitempty"`
	MissingKeywords        []string           `json:"missing_keywords,omitempty"`
	Recommendations        []string           `json:"recommendations,omitempty"`
	ImprovedBullets        []string           `json:"improved_bullets,omitempty"`
	ScoringMethod          string             `json:"scoring_method"`
	JobDescriptionProvided bool               `json:"job_description_provided"`
}

// RatingForScore maps a 0-100 score to its categorical label.
func RatingForScore(score float64) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}
