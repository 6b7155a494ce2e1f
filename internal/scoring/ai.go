package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/resumeforge/resume-maker/internal/llm"
	"github.com/resumeforge/resume-maker/internal/types"
)

// AIEngine is the detailed scoring path backed by an LLM. It populates
// every ScoreResult field. No automatic retries: failures surface to the
// caller, and a retry is a new user-triggered request.
type AIEngine struct {
	client llm.Client
}

// NewAIEngine wraps an LLM client as a scoring engine.
func NewAIEngine(client llm.Client) *AIEngine {
	return &AIEngine{client: client}
}

// aiScorePayload is the JSON shape requested from the model.
type aiScorePayload struct {
	TotalScore      float64            `json:"total_score"`
	Rating          string             `json:"rating"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	MissingKeywords []string           `json:"missing_keywords"`
	Recommendations []string           `json:"recommendations"`
	ImprovedBullets []string           `json:"improved_bullets"`
}

// Score asks the model for a full ATS evaluation of the resume.
func (e *AIEngine) Score(ctx context.Context, res *types.Resume, jobDescription string) (*types.ScoreResult, error) {
	text := flattenResume(res)
	if strings.TrimSpace(text) == "" {
		return nil, &ErrEmptyResume{}
	}

	prompt := buildScorePrompt(text, jobDescription)

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &EngineError{Engine: "ai", Message: "generation failed", Cause: err}
	}

	result, err := parseAIResponse(raw)
	if err != nil {
		return nil, err
	}
	result.JobDescriptionProvided = jobDescription != ""
	return result, nil
}

// buildScorePrompt assembles the scoring instruction, resume text, and
// optional job description into a single prompt.
func buildScorePrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(`You are an ATS (Applicant Tracking System) evaluator. Score the resume below for ATS compatibility on a 0-100 scale and respond with JSON only, using this shape:
{
  "total_score": <number 0-100>,
  "rating": "excellent|good|fair|poor",
  "breakdown": {"contact_info": <0-100>, "sections": <0-100>, "bullet_quality": <0-100>, "keyword_match": <0-100>},
  "strengths": [<strings>],
  "weaknesses": [<strings>],
  "missing_keywords": [<strings>],
  "recommendations": [<strings>],
  "improved_bullets": [<strings, rewritten versions of the weakest bullets>]
}

`)
	if jobDescription != "" {
		b.WriteString("Target job description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No target job description was provided; score general ATS compatibility and leave missing_keywords focused on the resume's own field.\n\n")
	}
	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	return b.String()
}

// parseAIResponse decodes and sanitizes the model output into a ScoreResult.
func parseAIResponse(raw string) (*types.ScoreResult, error) {
	var payload aiScorePayload
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &payload); err != nil {
		return nil, &EngineError{
			Engine:  "ai",
			Message: fmt.Sprintf("invalid JSON in model response: %.80s", raw),
			Cause:   err,
		}
	}

	score := clamp(payload.TotalScore, 0, 100)
	rating := strings.ToLower(strings.TrimSpace(payload.Rating))
	switch rating {
	case "excellent", "good", "fair", "poor":
	default:
		rating = types.RatingForScore(score)
	}

	for k, v := range payload.Breakdown {
		payload.Breakdown[k] = clamp(v, 0, 100)
	}

	return &types.ScoreResult{
		TotalScore:      score,
		Rating:          rating,
		Breakdown:       payload.Breakdown,
		Strengths:       payload.Strengths,
		Weaknesses:      payload.Weaknesses,
		MissingKeywords: payload.MissingKeywords,
		Recommendations: payload.Recommendations,
		ImprovedBullets: payload.ImprovedBullets,
		ScoringMethod:   types.ScoringMethodAI,
	}, nil
}
