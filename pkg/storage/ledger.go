package storage

import (
	"context"

	"github.com/chris/behavior-points/pkg/models"
)

// LedgerReader defines the interface for reading points transactions.
type LedgerReader interface {
	// ListTransactions returns a subject's transactions newest first, ties broken by id.
	// A zero filter returns every row.
	ListTransactions(ctx context.Context, subjectID string, filter models.TransactionFilter) ([]models.PointsTransaction, error)

	// CountTransactions returns the number of ledger rows for a subject.
	CountTransactions(ctx context.Context, subjectID string) (int64, error)

	// ListSubjects returns every subject that has at least one ledger row.
	ListSubjects(ctx context.Context) ([]string, error)
}

// LedgerWriter appends rows to the ledger. Only the ledger package may hold one.
type LedgerWriter interface {
	// AppendTransaction inserts exactly one new row. Existing rows are never touched.
	AppendTransaction(ctx context.Context, tx *models.PointsTransaction) error
}

// LedgerStore combines the reader and writer interfaces.
type LedgerStore interface {
	LedgerReader
	LedgerWriter
}
