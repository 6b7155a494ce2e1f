// Package cache keeps the latest ScoreResult per resume in Redis. The
// database remains the source of truth for latest_score; the cache only
// avoids recomputing the detailed result view.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/resumeforge/resume-maker/internal/types"
)

// DefaultTTL bounds how long a cached score outlives the scoring run.
const DefaultTTL = 24 * time.Hour

// ScoreCache stores score results keyed by resume id.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, password string) (*ScoreCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &ScoreCache{client: client, ttl: DefaultTTL}, nil
}

// Close releases the Redis connection.
func (c *ScoreCache) Close() error {
	return c.client.Close()
}

func scoreKey(resumeID uuid.UUID) string {
	return "score:" + resumeID.String()
}

// Put caches a score result for the resume.
func (c *ScoreCache) Put(ctx context.Context, resumeID uuid.UUID, result *types.ScoreResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal score result: %w", err)
	}
	if err := c.client.Set(ctx, scoreKey(resumeID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}

// Get returns the cached score result, or nil on a cache miss.
func (c *ScoreCache) Get(ctx context.Context, resumeID uuid.UUID) (*types.ScoreResult, error) {
	payload, err := c.client.Get(ctx, scoreKey(resumeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached score: %w", err)
	}

	var result types.ScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached score: %w", err)
	}
	return &result, nil
}

// Invalidate drops the cached score, e.g. after a resume mutation.
func (c *ScoreCache) Invalidate(ctx context.Context, resumeID uuid.UUID) error {
	if err := c.client.Del(ctx, scoreKey(resumeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached score: %w", err)
	}
	return nil
}
