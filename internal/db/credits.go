package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ErrInsufficientCredits indicates a paid action was attempted with an
// empty credit balance.
type ErrInsufficientCredits struct {
	UserID uuid.UUID
}

func (e *ErrInsufficientCredits) Error() string {
	return fmt.Sprintf("insufficient credits for user %s", e.UserID)
}

// GetCredits returns the user's credit balance. Users without a ledger
// row have a zero balance.
func (db *DB) GetCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	var balance int
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT balance FROM credits WHERE user_id = $1), 0)`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return balance, nil
}

// ConsumeCredit atomically spends one credit. Returns ErrInsufficientCredits
// when the balance is zero, without modifying the ledger.
func (db *DB) ConsumeCredit(ctx context.Context, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE credits SET balance = balance - 1, updated_at = NOW()
		 WHERE user_id = $1 AND balance > 0`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to consume credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrInsufficientCredits{UserID: userID}
	}
	return nil
}

// AddCredits tops up a user's balance, creating the ledger row if needed.
func (db *DB) AddCredits(ctx context.Context, userID uuid.UUID, amount int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO credits (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET balance = credits.balance + $2, updated_at = NOW()`,
		userID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to add credits: %w", err)
	}
	return nil
}
