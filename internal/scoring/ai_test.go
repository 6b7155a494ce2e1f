package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/llm"
	"github.com/resumeforge/resume-maker/internal/types"
)

// fakeLLM returns a canned response for every GenerateJSON call.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

const validAIResponse = `{
	"total_score": 82,
	"rating": "good",
	"breakdown": {"contact_info": 90, "sections": 85, "bullet_quality": 75, "keyword_match": 80},
	"strengths": ["Quantified impact"],
	"weaknesses": ["No summary section"],
	"missing_keywords": ["kubernetes"],
	"recommendations": ["Add a summary"],
	"improved_bullets": ["Led migration of 12 services to Go"]
}`

func TestAIEngine_FullResult(t *testing.T) {
	fake := &fakeLLM{response: validAIResponse}
	engine := NewAIEngine(fake)

	result, err := engine.Score(t.Context(), fullResume(), "Go platform engineer")
	require.NoError(t, err)

	assert.Equal(t, 82.0, result.TotalScore)
	assert.Equal(t, "good", result.Rating)
	assert.Equal(t, types.ScoringMethodAI, result.ScoringMethod)
	assert.True(t, result.JobDescriptionProvided)
	assert.Equal(t, 90.0, result.Breakdown["contact_info"])
	assert.Equal(t, []string{"kubernetes"}, result.MissingKeywords)
	assert.Equal(t, []string{"Led migration of 12 services to Go"}, result.ImprovedBullets)
}

func TestAIEngine_PromptIncludesJobDescription(t *testing.T) {
	fake := &fakeLLM{response: validAIResponse}
	engine := NewAIEngine(fake)

	_, err := engine.Score(t.Context(), fullResume(), "Payments team lead")
	require.NoError(t, err)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Payments team lead")
	assert.Contains(t, fake.prompts[0], "Senior Engineer")
}

func TestAIEngine_ClampsAndDefaultsRating(t *testing.T) {
	fake := &fakeLLM{response: `{"total_score": 140, "rating": "stellar"}`}
	engine := NewAIEngine(fake)

	result, err := engine.Score(t.Context(), fullResume(), "")
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.TotalScore)
	assert.Equal(t, "excellent", result.Rating)
	assert.False(t, result.JobDescriptionProvided)
}

func TestAIEngine_FencedJSONAccepted(t *testing.T) {
	fake := &fakeLLM{response: "```json\n" + validAIResponse + "\n```"}
	engine := NewAIEngine(fake)

	result, err := engine.Score(t.Context(), fullResume(), "")
	require.NoError(t, err)
	assert.Equal(t, 82.0, result.TotalScore)
}

func TestAIEngine_InvalidJSON(t *testing.T) {
	fake := &fakeLLM{response: "I cannot score this resume."}
	engine := NewAIEngine(fake)

	_, err := engine.Score(t.Context(), fullResume(), "")
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "ai", engineErr.Engine)
}

func TestAIEngine_GenerationFailure(t *testing.T) {
	fake := &fakeLLM{err: errors.New("quota exceeded")}
	engine := NewAIEngine(fake)

	_, err := engine.Score(t.Context(), fullResume(), "")
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestAIEngine_EmptyResume(t *testing.T) {
	engine := NewAIEngine(&fakeLLM{response: validAIResponse})
	_, err := engine.Score(t.Context(), &types.Resume{}, "")
	var empty *ErrEmptyResume
	assert.ErrorAs(t, err, &empty)
}
