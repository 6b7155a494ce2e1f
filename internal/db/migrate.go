package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; every statement must be idempotent.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		status TEXT NOT NULL,
		original_filename TEXT NOT NULL DEFAULT '',
		file_size BIGINT NOT NULL DEFAULT 0,
		storage_key TEXT NOT NULL DEFAULT '',
		template_id TEXT NOT NULL DEFAULT 'classic',
		latest_score DOUBLE PRECISION,
		raw_text TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resumes_user_created
		ON resumes (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS credits (
		user_id UUID PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema if it does not already exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
