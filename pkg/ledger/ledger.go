// Package ledger is the append-only record of point grants and deductions.
// It is the only writer of ledger rows and never modifies an existing row.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxListLimit caps a single listing.
	MaxListLimit = 500

	// MaxAmount is the largest amount a single transaction may carry.
	MaxAmount = 1_000_000
)

// Entry is a requested point change.
type Entry struct {
	SubjectId   string
	Amount      int64
	Sign        models.Sign
	CategoryId  *string
	Description string
}

// Ledger appends and lists points transactions.
type Ledger struct {
	Store storage.LedgerStore
	Now   func() time.Time
}

// New creates a Ledger.
func New(store storage.LedgerStore) *Ledger {
	return &Ledger{Store: store, Now: time.Now}
}

// Append records one new transaction attributed to the capability's actor.
// A store failure is returned as models.ErrLedgerWriteFailed.
func (l *Ledger) Append(ctx context.Context, c access.Capability, e Entry) (*models.PointsTransaction, error) {
	if !c.CanMutate() || !c.Permits(e.SubjectId) {
		return nil, fmt.Errorf("%w: cannot append to subject %s", models.ErrForbidden, e.SubjectId)
	}
	if e.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if e.Amount > MaxAmount {
		return nil, fmt.Errorf("%w: %d exceeds %d", models.ErrInvalidAmount, e.Amount, MaxAmount)
	}
	if !e.Sign.Valid() {
		return nil, models.ErrInvalidSign
	}

	tx := &models.PointsTransaction{
		Id:          uuid.New().String(),
		SubjectId:   e.SubjectId,
		Amount:      e.Amount,
		Sign:        e.Sign,
		CategoryId:  e.CategoryId,
		Description: e.Description,
		CreatedBy:   c.ActorID(),
		CreatedAt:   l.Now().UTC(),
	}

	if err := l.Store.AppendTransaction(ctx, tx); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"subject_id": tx.SubjectId,
			"actor_id":   tx.CreatedBy,
		}).Error("ledger append failed")
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerWriteFailed, err)
	}

	log.WithFields(log.Fields{
		"transaction_id": tx.Id,
		"subject_id":     tx.SubjectId,
		"amount":         tx.Amount,
		"sign":           tx.Sign,
		"actor_id":       tx.CreatedBy,
		"tier":           c.Tier(),
	}).Info("points transaction appended")
	return tx, nil
}

// ListFor returns a subject's transactions newest first.
func (l *Ledger) ListFor(ctx context.Context, c access.Capability, subjectID string, filter models.TransactionFilter) ([]models.PointsTransaction, error) {
	if !c.Permits(subjectID) {
		return nil, fmt.Errorf("%w: cannot read subject %s", models.ErrForbidden, subjectID)
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	txs, err := l.Store.ListTransactions(ctx, subjectID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
