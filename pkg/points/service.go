// Package points runs the points pipeline and the read surfaces on top of the
// ledger, the balance engine and the awarder.
//
// Every call is authorized through the gateway first. Nothing here writes to a
// store directly.
package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/awards"
	"github.com/chris/behavior-points/pkg/balance"
	"github.com/chris/behavior-points/pkg/ledger"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/notify"
	"github.com/chris/behavior-points/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Service is the points API consumed by the HTTP handlers.
type Service interface {
	ChangePoints(ctx context.Context, token string, req ChangeRequest) (*ChangeResult, error)
	ListTransactions(ctx context.Context, token, subjectID string, filter models.TransactionFilter) (*TransactionList, error)
	ReadBalance(ctx context.Context, token, subjectID string) (*BalanceView, error)
	Sync(ctx context.Context, token, subjectID string, force bool) (*SyncResult, error)
	EvaluateAwards(ctx context.Context, token, subjectID string) (*EvaluateResult, error)
	ListAwards(ctx context.Context, token, subjectID string) (*AwardList, error)
	ListCatalog(ctx context.Context, token string) ([]models.CatalogItem, error)
	Inspect(ctx context.Context, token, subjectID string) (*Inspection, error)
}

// Authorizer issues capabilities for session tokens.
type Authorizer interface {
	Authorize(ctx context.Context, token string, op access.Operation, target string) (access.Capability, error)
}

// PointsService implements Service.
type PointsService struct {
	Gateway  Authorizer
	Ledger   *ledger.Ledger
	Balances *balance.Engine
	Awards   *awards.Awarder
}

// Make sure we conform to the interface
var _ Service = (*PointsService)(nil)

// NewService wires the pipeline over a single store.
func NewService(store storage.Storage, publisher notify.Publisher) *PointsService {
	return &PointsService{
		Gateway:  access.NewGateway(store),
		Ledger:   ledger.New(store),
		Balances: balance.NewEngine(store, store),
		Awards:   awards.NewAwarder(store, store, publisher),
	}
}

func scopeOf(c access.Capability) Scope {
	return Scope{Subject: c.Subject(), Degraded: c.Degraded()}
}

// ChangePoints appends a transaction, force-syncs the balance and evaluates awards on it.
// A ledger failure stops the pipeline; later failures become warnings.
func (s *PointsService) ChangePoints(ctx context.Context, token string, req ChangeRequest) (*ChangeResult, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.LedgerWrite, req.SubjectId)
	if err != nil {
		return nil, err
	}

	tx, err := s.Ledger.Append(ctx, c, ledger.Entry{
		SubjectId:   req.SubjectId,
		Amount:      req.Amount,
		Sign:        req.Sign,
		CategoryId:  req.CategoryId,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	result := &ChangeResult{Transaction: *tx}

	record, err := s.Balances.Sync(ctx, c, req.SubjectId, true)
	if err != nil {
		result.CacheStale = true
		result.Warnings = append(result.Warnings, err.Error())
	}
	if record == nil {
		result.Warnings = append(result.Warnings, "award evaluation skipped: balance unavailable")
		s.logPartial(result, tx)
		return result, nil
	}
	result.Balance = record

	awarded, err := s.Awards.Evaluate(ctx, c, req.SubjectId, record.Points)
	result.Awards = awarded
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}

	s.logPartial(result, tx)
	return result, nil
}

func (s *PointsService) logPartial(result *ChangeResult, tx *models.PointsTransaction) {
	if len(result.Warnings) == 0 {
		return
	}
	log.WithFields(log.Fields{
		"transaction_id": tx.Id,
		"subject_id":     tx.SubjectId,
		"cache_stale":    result.CacheStale,
		"warnings":       result.Warnings,
	}).Warn("points change partially applied")
}

// ListTransactions returns the subject's ledger, or the caller's own when degraded.
func (s *PointsService) ListTransactions(ctx context.Context, token, subjectID string, filter models.TransactionFilter) (*TransactionList, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.LedgerRead, subjectID)
	if err != nil {
		return nil, err
	}
	txs, err := s.Ledger.ListFor(ctx, c, c.Subject(), filter)
	if err != nil {
		return nil, err
	}
	return &TransactionList{Scope: scopeOf(c), Transactions: txs}, nil
}

// ReadBalance returns the cached balance without recomputing it.
func (s *PointsService) ReadBalance(ctx context.Context, token, subjectID string) (*BalanceView, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.BalanceRead, subjectID)
	if err != nil {
		return nil, err
	}
	record, err := s.Balances.Read(ctx, c, c.Subject())
	if err != nil {
		return nil, err
	}
	return &BalanceView{Scope: scopeOf(c), Balance: *record}, nil
}

// Sync reconciles the cached balance with the ledger.
func (s *PointsService) Sync(ctx context.Context, token, subjectID string, force bool) (*SyncResult, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.BalanceSync, subjectID)
	if err != nil {
		return nil, err
	}
	record, err := s.Balances.Sync(ctx, c, c.Subject(), force)
	if record == nil {
		return nil, err
	}

	result := &SyncResult{Scope: scopeOf(c), Balance: *record}
	if err != nil {
		result.CacheStale = true
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result, nil
}

// EvaluateAwards syncs the balance and evaluates awards against it.
func (s *PointsService) EvaluateAwards(ctx context.Context, token, subjectID string) (*EvaluateResult, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.AwardsEvaluate, subjectID)
	if err != nil {
		return nil, err
	}
	record, err := s.Balances.Sync(ctx, c, c.Subject(), false)
	if record == nil {
		return nil, err
	}

	result := &EvaluateResult{Scope: scopeOf(c), Balance: *record}
	if err != nil {
		result.CacheStale = true
		result.Warnings = append(result.Warnings, err.Error())
	}

	awarded, err := s.Awards.Evaluate(ctx, c, c.Subject(), record.Points)
	result.Awards = awarded
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			return nil, err
		}
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result, nil
}

// ListAwards returns the awards a subject holds.
func (s *PointsService) ListAwards(ctx context.Context, token, subjectID string) (*AwardList, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.AwardsRead, subjectID)
	if err != nil {
		return nil, err
	}
	held, err := s.Awards.ListFor(ctx, c, c.Subject())
	if err != nil {
		return nil, err
	}
	return &AwardList{Scope: scopeOf(c), Awards: held}, nil
}

// ListCatalog returns the medal and badge catalog.
func (s *PointsService) ListCatalog(ctx context.Context, token string) ([]models.CatalogItem, error) {
	if _, err := s.Gateway.Authorize(ctx, token, access.CatalogRead, ""); err != nil {
		return nil, err
	}
	return s.Awards.ListCatalog(ctx)
}

// Inspect compares the cached balance with a fresh recomputation and returns the raw
// rows behind it. It never writes.
func (s *PointsService) Inspect(ctx context.Context, token, subjectID string) (*Inspection, error) {
	c, err := s.Gateway.Authorize(ctx, token, access.BalanceInspect, subjectID)
	if err != nil {
		return nil, err
	}
	subject := c.Subject()

	snap, err := s.Balances.Snapshot(ctx, c, subject)
	if err != nil {
		return nil, err
	}

	result := &Inspection{
		Scope:        scopeOf(c),
		LedgerPoints: snap.Points,
		Transactions: snap.Transactions,
	}

	cached, err := s.Balances.Read(ctx, c, subject)
	switch {
	case errors.Is(err, models.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to read cached balance: %w", err)
	default:
		drift := cached.Points - snap.Points
		result.CachedPoints = &cached.Points
		result.CachedAt = &cached.UpdatedAt
		result.CachedCount = &cached.TransactionCount
		result.Drift = &drift
	}

	if result.Drift != nil && *result.Drift != 0 {
		log.WithFields(log.Fields{
			"subject_id": subject,
			"cached":     *result.CachedPoints,
			"ledger":     result.LedgerPoints,
			"actor_id":   c.ActorID(),
		}).Warn("balance drift detected")
	}
	return result, nil
}
