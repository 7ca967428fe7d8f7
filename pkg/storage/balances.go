package storage

import (
	"context"

	"github.com/chris/behavior-points/pkg/models"
)

// BalanceReader defines the interface for reading cached balances.
type BalanceReader interface {
	// GetBalance returns the cached record, or models.ErrNotFound when none exists.
	GetBalance(ctx context.Context, subjectID string) (*models.BalanceRecord, error)

	// ListBalances returns every cached record.
	ListBalances(ctx context.Context) ([]models.BalanceRecord, error)
}

// BalanceWriter is the only write path to the balance cache.
// Only the reconciliation engine may hold one.
type BalanceWriter interface {
	// UpsertBalance inserts the record if absent, otherwise overwrites it (last writer wins).
	UpsertBalance(ctx context.Context, record *models.BalanceRecord) error
}

// BalanceStore combines the reader and writer interfaces.
type BalanceStore interface {
	BalanceReader
	BalanceWriter
}
