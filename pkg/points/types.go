package points

import (
	"time"

	"github.com/chris/behavior-points/pkg/models"
)

// Scope tells the caller which subject an answer is about. Degraded is set when a
// read was narrowed to the caller's own subject.
type Scope struct {
	Subject  string
	Degraded bool
}

// ChangeRequest asks for one point grant or deduction.
type ChangeRequest struct {
	SubjectId   string
	Amount      int64
	Sign        models.Sign
	CategoryId  *string
	Description string
}

// ChangeResult is the outcome of the points pipeline. The transaction always stands
// once a result is returned; Warnings list the downstream steps that did not complete.
type ChangeResult struct {
	Transaction models.PointsTransaction
	Balance     *models.BalanceRecord
	Awards      []models.AwardRecord
	CacheStale  bool
	Warnings    []string
}

// TransactionList is a ledger listing.
type TransactionList struct {
	Scope        Scope
	Transactions []models.PointsTransaction
}

// BalanceView is a cached balance read.
type BalanceView struct {
	Scope   Scope
	Balance models.BalanceRecord
}

// SyncResult is the outcome of a reconciliation request.
type SyncResult struct {
	Scope      Scope
	Balance    models.BalanceRecord
	CacheStale bool
	Warnings   []string
}

// EvaluateResult is the outcome of an on-demand award evaluation.
type EvaluateResult struct {
	Scope      Scope
	Balance    models.BalanceRecord
	Awards     []models.AwardRecord
	CacheStale bool
	Warnings   []string
}

// AwardList lists the awards a subject holds.
type AwardList struct {
	Scope  Scope
	Awards []models.AwardRecord
}

// Inspection is the three-way comparison of cache, recomputed ledger total and raw rows.
// CachedPoints and Drift are nil when no cached record exists.
type Inspection struct {
	Scope        Scope
	CachedPoints *int64
	CachedAt     *time.Time
	CachedCount  *int64
	LedgerPoints int64
	Drift        *int64
	Transactions []models.PointsTransaction
}
