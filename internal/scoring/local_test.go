package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/types"
)

func fullResume() *types.Resume {
	return &types.Resume{
		Status: types.StatusParsed,
		Data: types.Sections{
			ContactInfo: types.ContactInfo{
				Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100",
				Location: "Berlin", LinkedIn: "linkedin.com/in/janedoe",
			},
			Summary: "Backend engineer focused on payment systems.",
			Experience: []types.ExperienceEntry{
				{
					ID: "e1", Title: "Senior Engineer", Company: "Acme",
					Bullets: []string{
						"Built a Go payments service handling 2M requests/day",
						"Reduced p99 latency by 45%",
					},
					Technologies: []string{"Go", "Postgres"},
				},
			},
			Education: []types.EducationEntry{{ID: "ed1", School: "State University", Degree: "BSc"}},
			Skills:    map[string][]string{"Languages": {"Go", "SQL"}},
		},
	}
}

func TestLocalEngine_FullResumeScoresHigh(t *testing.T) {
	result, err := NewLocalEngine().Score(t.Context(), fullResume(), "")
	require.NoError(t, err)

	assert.Greater(t, result.TotalScore, 80.0)
	assert.Equal(t, types.ScoringMethodLocal, result.ScoringMethod)
	assert.False(t, result.JobDescriptionProvided)

	// The local engine reports total and rating only.
	assert.Empty(t, result.Breakdown)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.Strengths)
}

func TestLocalEngine_RatingMatchesScore(t *testing.T) {
	result, err := NewLocalEngine().Score(t.Context(), fullResume(), "")
	require.NoError(t, err)
	assert.Equal(t, types.RatingForScore(result.TotalScore), result.Rating)
}

func TestLocalEngine_EmptyResume(t *testing.T) {
	_, err := NewLocalEngine().Score(t.Context(), &types.Resume{}, "")
	var empty *ErrEmptyResume
	assert.ErrorAs(t, err, &empty)
}

func TestLocalEngine_SparseResumeScoresLow(t *testing.T) {
	res := &types.Resume{
		Data: types.Sections{
			ContactInfo: types.ContactInfo{Name: "Jane Doe"},
		},
	}
	result, err := NewLocalEngine().Score(t.Context(), res, "")
	require.NoError(t, err)
	assert.Less(t, result.TotalScore, 30.0)
}

func TestLocalEngine_JobDescriptionOverlapRaisesScore(t *testing.T) {
	engine := NewLocalEngine()
	res := fullResume()

	matched, err := engine.Score(t.Context(), res, "Looking for a Go engineer with Postgres and payments background")
	require.NoError(t, err)
	assert.True(t, matched.JobDescriptionProvided)

	unmatched, err := engine.Score(t.Context(), res, "Seeking a Haskell compiler developer versed in category theory")
	require.NoError(t, err)

	assert.Greater(t, matched.TotalScore, unmatched.TotalScore)
}

func TestLocalEngine_RawTextFallback(t *testing.T) {
	res := &types.Resume{RawText: "Jane Doe\nEXPERIENCE\n• Built a Go service"}
	result, err := NewLocalEngine().Score(t.Context(), res, "Go developer wanted")
	require.NoError(t, err)
	assert.Greater(t, result.TotalScore, 0.0)
}

func TestBulletQualityScore(t *testing.T) {
	s := &types.Sections{
		Experience: []types.ExperienceEntry{{
			ID: "e1",
			// First bullet hits both signals, second hits neither.
			Bullets: []string{
				"Built a service processing 500k events",
				"Responsible for various maintenance duties",
			},
		}},
	}
	// One of two bullets hits each signal: (0.5 + 0.5) / 2.
	assert.InDelta(t, 0.5, bulletQualityScore(s), 0.001)
}

func TestKeywordOverlapScore_CaseInsensitive(t *testing.T) {
	score := keywordOverlapScore("experienced with GO and POSTGRES", "go postgres kubernetes")
	assert.InDelta(t, 2.0/3.0, score, 0.001)
}

func TestKeywordOverlapScore_WholeWordsOnly(t *testing.T) {
	// "go" appears inside "category" but not as a word of its own.
	score := keywordOverlapScore("category manager overseeing logistics", "go")
	assert.Zero(t, score)

	score = keywordOverlapScore("go developer, category lead", "go")
	assert.InDelta(t, 1.0, score, 0.001)
}
