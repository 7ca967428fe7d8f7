package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/jackc/pgx/v5"
)

// AppendTransaction inserts one ledger row. Existing rows are never touched.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.PointsTransaction) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO points_transactions
			(id, subject_id, amount, is_positive, category_id, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, tx.Id, tx.SubjectId, tx.Amount, tx.Sign == models.POSITIVE, tx.CategoryId, tx.Description, tx.CreatedBy, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// listQuery builds the ledger listing statement for a filter, newest first with id as tie-break.
func listQuery(subjectID string, filter models.TransactionFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`
		SELECT id, subject_id, amount, is_positive, category_id, description, created_by, created_at
		FROM points_transactions
		WHERE subject_id = $1`)
	args := []any{subjectID}

	add := func(cond string, v any) {
		args = append(args, v)
		fmt.Fprintf(&b, " AND "+cond, len(args))
	}
	if filter.Sign != nil {
		add("is_positive = $%d", *filter.Sign == models.POSITIVE)
	}
	if filter.CategoryId != nil {
		add("category_id = $%d", *filter.CategoryId)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at <= $%d", *filter.Until)
	}

	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

// ListTransactions returns a subject's ledger rows, newest first.
func (s *Store) ListTransactions(ctx context.Context, subjectID string, filter models.TransactionFilter) ([]models.PointsTransaction, error) {
	query, args := listQuery(subjectID, filter)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.PointsTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (models.PointsTransaction, error) {
	var (
		tx         models.PointsTransaction
		isPositive bool
	)
	err := row.Scan(&tx.Id, &tx.SubjectId, &tx.Amount, &isPositive, &tx.CategoryId, &tx.Description, &tx.CreatedBy, &tx.CreatedAt)
	if err != nil {
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}
	tx.Sign = models.NEGATIVE
	if isPositive {
		tx.Sign = models.POSITIVE
	}
	return tx, nil
}

// CountTransactions returns the number of ledger rows for a subject.
func (s *Store) CountTransactions(ctx context.Context, subjectID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM points_transactions WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListSubjects returns every subject that has at least one ledger row.
func (s *Store) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT subject_id FROM points_transactions ORDER BY subject_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subjects: %w", err)
	}
	return subjects, nil
}
