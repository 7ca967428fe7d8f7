package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/jackc/pgx/v5"
)

// GetBalance returns the cached balance, or models.ErrNotFound.
func (s *Store) GetBalance(ctx context.Context, subjectID string) (*models.BalanceRecord, error) {
	var r models.BalanceRecord
	err := s.db.QueryRow(ctx, `
		SELECT subject_id, points, transaction_count, updated_at
		FROM point_balances WHERE subject_id = $1
	`, subjectID).Scan(&r.SubjectId, &r.Points, &r.TransactionCount, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &r, nil
}

// ListBalances returns every cached balance.
func (s *Store) ListBalances(ctx context.Context) ([]models.BalanceRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT subject_id, points, transaction_count, updated_at
		FROM point_balances ORDER BY subject_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var records []models.BalanceRecord
	for rows.Next() {
		var r models.BalanceRecord
		if err := rows.Scan(&r.SubjectId, &r.Points, &r.TransactionCount, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read balances: %w", err)
	}
	return records, nil
}

// UpsertBalance inserts the cached balance or replaces the existing value. Last writer wins.
func (s *Store) UpsertBalance(ctx context.Context, r *models.BalanceRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO point_balances (subject_id, points, transaction_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subject_id) DO UPDATE
		SET points = EXCLUDED.points,
		    transaction_count = EXCLUDED.transaction_count,
		    updated_at = EXCLUDED.updated_at
	`, r.SubjectId, r.Points, r.TransactionCount, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}
	return nil
}
