package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resumeforge/resume-maker/internal/types"
)

// ErrResumeNotFound indicates a resume id with no matching row.
type ErrResumeNotFound struct {
	ID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

const resumeColumns = `id, user_id, status, original_filename, file_size,
	storage_key, template_id, latest_score, raw_text, data, created_at, updated_at`

// CreateResume inserts a new resume and fills its id and timestamps.
func (db *DB) CreateResume(ctx context.Context, res *types.Resume) error {
	dataJSON, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal resume data: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, status, original_filename, file_size,
			storage_key, template_id, raw_text, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		res.UserID, res.Status, res.OriginalFilename, res.FileSize,
		res.StorageKey, res.TemplateID, res.RawText, dataJSON,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by id, scoped to its owner.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	res, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrResumeNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return res, nil
}

// ListResumes retrieves a user's resumes, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID, limit int) ([]types.Resume, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []types.Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *res)
	}
	return resumes, rows.Err()
}

// UpdateResumeData replaces the structured payload and raw text.
func (db *DB) UpdateResumeData(ctx context.Context, id uuid.UUID, data *types.Sections, rawText string) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal resume data: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET data = $1, raw_text = $2, updated_at = NOW() WHERE id = $3`,
		dataJSON, rawText, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// UpdateStatus moves a resume to a new lifecycle status. The expected
// current status guards against concurrent writers racing a transition.
func (db *DB) UpdateStatus(ctx context.Context, id uuid.UUID, from, to types.Status) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// SetStatus forces a lifecycle status without a current-status guard.
// Used for the ERROR terminal state, which is reachable from anywhere.
func (db *DB) SetStatus(ctx context.Context, id uuid.UUID, to types.Status) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = NOW() WHERE id = $2`,
		to, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// SetLatestScore records the score of a completed scoring run and moves
// the resume to SCORED. Re-scoring overwrites the previous value; no
// durable score history is kept.
func (db *DB) SetLatestScore(ctx context.Context, id uuid.UUID, score float64) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET latest_score = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		score, types.StatusScored, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set latest score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// SetTemplate records the selected visual template.
func (db *DB) SetTemplate(ctx context.Context, id uuid.UUID, templateID string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET template_id = $1, updated_at = NOW() WHERE id = $2`,
		templateID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// DeleteResume removes a resume, scoped to its owner.
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrResumeNotFound{ID: id}
	}
	return nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*types.Resume, error) {
	var res types.Resume
	var dataJSON []byte
	err := row.Scan(
		&res.ID, &res.UserID, &res.Status, &res.OriginalFilename, &res.FileSize,
		&res.StorageKey, &res.TemplateID, &res.LatestScore, &res.RawText,
		&dataJSON, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &res.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume data: %w", err)
		}
	}
	return &res, nil
}
