// Package balance keeps the cached per-subject balance and rederives it from the ledger.
//
// Sync is the only path that writes a BalanceRecord. Read never recomputes.
package balance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Snapshot is a balance computed from one read of the full ledger.
type Snapshot struct {
	SubjectId    string
	Points       int64
	Transactions []models.PointsTransaction
}

// Engine recomputes balances and writes the cache.
type Engine struct {
	Ledger   storage.LedgerReader
	Balances storage.BalanceStore
	Now      func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(ledger storage.LedgerReader, balances storage.BalanceStore) *Engine {
	return &Engine{Ledger: ledger, Balances: balances, Now: time.Now}
}

func permit(c access.Capability, subjectID string) error {
	if !c.Permits(subjectID) {
		return fmt.Errorf("%w: subject %s", models.ErrForbidden, subjectID)
	}
	return nil
}

// Snapshot reads every ledger row for the subject and sums the signed amounts.
func (e *Engine) Snapshot(ctx context.Context, c access.Capability, subjectID string) (*Snapshot, error) {
	if err := permit(c, subjectID); err != nil {
		return nil, err
	}

	txs, err := e.Ledger.ListTransactions(ctx, subjectID, models.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	points, err := models.SignedSum(txs)
	if err != nil {
		return nil, err
	}
	return &Snapshot{SubjectId: subjectID, Points: points, Transactions: txs}, nil
}

// Recompute returns the balance implied by the ledger without touching the cache.
func (e *Engine) Recompute(ctx context.Context, c access.Capability, subjectID string) (int64, error) {
	snap, err := e.Snapshot(ctx, c, subjectID)
	if err != nil {
		return 0, err
	}
	return snap.Points, nil
}

// Sync brings the cached balance in line with the ledger.
//
// Without force, a cached record whose transaction count matches the ledger is
// returned as is. Otherwise the balance is recomputed and upserted. When the
// upsert fails the recomputed record is still returned, together with an error
// wrapping models.ErrCacheSyncFailed.
func (e *Engine) Sync(ctx context.Context, c access.Capability, subjectID string, force bool) (*models.BalanceRecord, error) {
	if err := permit(c, subjectID); err != nil {
		return nil, err
	}

	if !force {
		if cached, ok := e.current(ctx, subjectID); ok {
			return cached, nil
		}
	}

	snap, err := e.Snapshot(ctx, c, subjectID)
	if err != nil {
		return nil, err
	}

	record := &models.BalanceRecord{
		SubjectId:        subjectID,
		Points:           snap.Points,
		TransactionCount: int64(len(snap.Transactions)),
		UpdatedAt:        e.Now().UTC(),
	}

	fields := log.Fields{
		"subject_id": subjectID,
		"points":     record.Points,
		"actor_id":   c.ActorID(),
		"force":      force,
	}
	if err := e.Balances.UpsertBalance(ctx, record); err != nil {
		log.WithError(err).WithFields(fields).Warn("balance cache is stale")
		return record, fmt.Errorf("%w: %v", models.ErrCacheSyncFailed, err)
	}

	log.WithFields(fields).Info("balance synced")
	return record, nil
}

// current returns the cached record if it was computed from the ledger as it stands now.
func (e *Engine) current(ctx context.Context, subjectID string) (*models.BalanceRecord, bool) {
	cached, err := e.Balances.GetBalance(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.WithError(err).WithField("subject_id", subjectID).Warn("failed to read cached balance")
		}
		return nil, false
	}

	count, err := e.Ledger.CountTransactions(ctx, subjectID)
	if err != nil {
		log.WithError(err).WithField("subject_id", subjectID).Warn("failed to count ledger rows")
		return nil, false
	}
	return cached, count == cached.TransactionCount
}

// Read returns the cached balance. It returns models.ErrNotFound when no record exists yet.
func (e *Engine) Read(ctx context.Context, c access.Capability, subjectID string) (*models.BalanceRecord, error) {
	if err := permit(c, subjectID); err != nil {
		return nil, err
	}

	record, err := e.Balances.GetBalance(ctx, subjectID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}
	return record, nil
}

// SweepReport summarizes one reconciliation sweep.
type SweepReport struct {
	Subjects int `json:"subjects"`
	Synced   int `json:"synced"`
	Repaired int `json:"repaired"`
	Failed   int `json:"failed"`
}

// SweepAll force-syncs every subject known to the ledger or the cache.
// A failure for one subject is logged and the sweep continues.
func (e *Engine) SweepAll(ctx context.Context, c access.Capability) (SweepReport, error) {
	var report SweepReport
	if c.Tier() != access.Elevated {
		return report, fmt.Errorf("%w: sweep requires elevated access", models.ErrForbidden)
	}

	subjects, err := e.Ledger.ListSubjects(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list ledger subjects: %w", err)
	}
	cached, err := e.Balances.ListBalances(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list cached balances: %w", err)
	}

	previous := make(map[string]int64, len(cached))
	for _, r := range cached {
		previous[r.SubjectId] = r.Points
	}
	all := mergeSubjects(subjects, cached)
	report.Subjects = len(all)

	for _, subjectID := range all {
		record, err := e.Sync(ctx, c, subjectID, true)
		if err != nil {
			report.Failed++
			log.WithError(err).WithField("subject_id", subjectID).Error("reconciliation failed for subject")
			continue
		}
		report.Synced++
		if old, ok := previous[subjectID]; !ok || old != record.Points {
			report.Repaired++
			log.WithFields(log.Fields{
				"subject_id": subjectID,
				"cached":     old,
				"ledger":     record.Points,
			}).Warn("repaired balance drift")
		}
	}

	log.WithFields(log.Fields{
		"subjects": report.Subjects,
		"synced":   report.Synced,
		"repaired": report.Repaired,
		"failed":   report.Failed,
	}).Info("reconciliation sweep finished")
	return report, nil
}

func mergeSubjects(subjects []string, cached []models.BalanceRecord) []string {
	seen := make(map[string]struct{}, len(subjects)+len(cached))
	var out []string
	for _, id := range subjects {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, r := range cached {
		if _, ok := seen[r.SubjectId]; !ok {
			seen[r.SubjectId] = struct{}{}
			out = append(out, r.SubjectId)
		}
	}
	sort.Strings(out)
	return out
}
