//go:build integration

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/db"
	"github.com/resumeforge/resume-maker/internal/types"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL to run them.

func getTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	database, err := db.Connect(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background()))
	return database
}

func createParsedResume(t *testing.T, database *db.DB, userID uuid.UUID) *types.Resume {
	t.Helper()

	res := &types.Resume{
		UserID:           userID,
		Status:           types.StatusParsed,
		OriginalFilename: "resume.pdf",
		FileSize:         1024,
		TemplateID:       "classic",
		Data: types.Sections{
			ContactInfo: types.ContactInfo{Name: "Test User", Email: "test@example.com"},
		},
	}
	require.NoError(t, database.CreateResume(context.Background(), res))
	t.Cleanup(func() {
		_ = database.DeleteResume(context.Background(), userID, res.ID)
	})
	return res
}

func TestScoreResume_RefundsCreditWhenTransitionLost(t *testing.T) {
	ctx := context.Background()
	database := getTestDB(t)
	defer database.Close()

	userID := uuid.New()
	require.NoError(t, database.AddCredits(ctx, userID, 1))

	res := createParsedResume(t, database, userID)

	engine := &recordingEngine{}
	s := newTestServer()
	s.db = database
	s.aiEngine = engine

	// Another request moves the resume off PARSED between the fetch and
	// the scoring transition.
	require.NoError(t, database.SetStatus(ctx, res.ID, types.StatusError))

	rec := httptest.NewRecorder()
	s.scoreResume(rec, scoreRequest(`{"engine":"ai"}`), res)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, engine.calls)

	balance, err := database.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, balance, "credit should be refunded when no scoring ran")
}

func TestScoreResume_AIChargesOneCredit(t *testing.T) {
	ctx := context.Background()
	database := getTestDB(t)
	defer database.Close()

	userID := uuid.New()
	require.NoError(t, database.AddCredits(ctx, userID, 1))

	res := createParsedResume(t, database, userID)

	engine := &recordingEngine{result: &types.ScoreResult{
		TotalScore:    82,
		Rating:        types.RatingForScore(82),
		ScoringMethod: types.ScoringMethodAI,
	}}
	s := newTestServer()
	s.db = database
	s.aiEngine = engine

	rec := httptest.NewRecorder()
	s.scoreResume(rec, scoreRequest(`{"engine":"ai"}`), res)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, engine.calls)

	balance, err := database.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	stored, err := database.GetResume(ctx, userID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusScored, stored.Status)
	require.NotNil(t, stored.LatestScore)
	assert.InDelta(t, 82, *stored.LatestScore, 0.001)
}
