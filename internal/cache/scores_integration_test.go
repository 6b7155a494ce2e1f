//go:build integration

package cache

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-maker/internal/types"
)

// Requires a running Redis. Set TEST_REDIS_ADDR (e.g. localhost:6379).

func getTestCache(t *testing.T) *ScoreCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}

	c, err := New(context.Background(), addr, "")
	require.NoError(t, err)
	return c
}

func TestIntegration_ScoreCacheRoundTrip(t *testing.T) {
	c := getTestCache(t)
	defer c.Close()
	ctx := context.Background()
	id := uuid.New()

	miss, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, miss)

	result := &types.ScoreResult{
		TotalScore:    91,
		Rating:        "excellent",
		ScoringMethod: types.ScoringMethodAI,
		Breakdown:     map[string]float64{"sections": 95},
	}
	require.NoError(t, c.Put(ctx, id, result))

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 91.0, got.TotalScore)
	assert.Equal(t, 95.0, got.Breakdown["sections"])

	require.NoError(t, c.Invalidate(ctx, id))
	gone, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
