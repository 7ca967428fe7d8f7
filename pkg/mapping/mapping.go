package mapping

import (
	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/points"
)

// ToApiTransaction converts a domain PointsTransaction to an API Transaction.
func ToApiTransaction(tx *models.PointsTransaction) *api.Transaction {
	return &api.Transaction{
		Id:          tx.Id,
		SubjectId:   tx.SubjectId,
		Amount:      tx.Amount,
		Sign:        api.Sign(tx.Sign),
		CategoryId:  tx.CategoryId,
		Description: tx.Description,
		CreatedBy:   tx.CreatedBy,
		CreatedAt:   tx.CreatedAt,
	}
}

// ToApiTransactions converts a ledger listing, never returning nil.
func ToApiTransactions(txs []models.PointsTransaction) []api.Transaction {
	out := make([]api.Transaction, len(txs))
	for i := range txs {
		out[i] = *ToApiTransaction(&txs[i])
	}
	return out
}

// ToChangeRequest converts an API NewTransaction for the given subject into a pipeline request.
func ToChangeRequest(subjectID string, newTx *api.NewTransaction) points.ChangeRequest {
	return points.ChangeRequest{
		SubjectId:   subjectID,
		Amount:      newTx.Amount,
		Sign:        models.Sign(newTx.Sign),
		CategoryId:  newTx.CategoryId,
		Description: newTx.Description,
	}
}

// ToTransactionFilter converts listing query parameters to a ledger filter.
func ToTransactionFilter(params api.ListTransactionsParams) models.TransactionFilter {
	filter := models.TransactionFilter{
		CategoryId: params.CategoryId,
		Since:      params.Since,
		Until:      params.Until,
	}
	if params.Sign != nil {
		sign := models.Sign(*params.Sign)
		filter.Sign = &sign
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}
	return filter
}

// ToApiBalance converts a cached BalanceRecord to an API Balance.
func ToApiBalance(record *models.BalanceRecord) *api.Balance {
	return &api.Balance{
		SubjectId:        record.SubjectId,
		Points:           record.Points,
		TransactionCount: record.TransactionCount,
		UpdatedAt:        record.UpdatedAt,
	}
}

// ToApiAwards converts award records, never returning nil.
func ToApiAwards(awards []models.AwardRecord) []api.Award {
	out := make([]api.Award, len(awards))
	for i, a := range awards {
		out[i] = api.Award{
			Id:            a.Id,
			SubjectId:     a.SubjectId,
			CatalogItemId: a.CatalogItemId,
			Kind:          api.CatalogKind(a.Kind),
			AwardedAt:     a.AwardedAt,
		}
	}
	return out
}

// ToApiCatalog converts catalog items, never returning nil.
func ToApiCatalog(items []models.CatalogItem) []api.CatalogItem {
	out := make([]api.CatalogItem, len(items))
	for i, item := range items {
		out[i] = api.CatalogItem{
			Id:          item.Id,
			Kind:        api.CatalogKind(item.Kind),
			Name:        item.Name,
			Description: item.Description,
			MinPoints:   item.MinPoints,
			MaxPoints:   item.MaxPoints,
		}
	}
	return out
}

func warnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

// ToApiChangeResult converts the outcome of a points change.
func ToApiChangeResult(res *points.ChangeResult) *api.ChangeResult {
	out := &api.ChangeResult{
		Transaction: *ToApiTransaction(&res.Transaction),
		Awards:      ToApiAwards(res.Awards),
		CacheStale:  res.CacheStale,
		Warnings:    warnings(res.Warnings),
	}
	if res.Balance != nil {
		out.Balance = ToApiBalance(res.Balance)
	}
	return out
}

// ToApiSyncResult converts the outcome of a reconciliation.
func ToApiSyncResult(res *points.SyncResult) *api.SyncResult {
	return &api.SyncResult{
		Balance:    *ToApiBalance(&res.Balance),
		CacheStale: res.CacheStale,
		Warnings:   warnings(res.Warnings),
	}
}

// ToApiEvaluateResult converts the outcome of an award evaluation.
func ToApiEvaluateResult(res *points.EvaluateResult) *api.EvaluateResult {
	return &api.EvaluateResult{
		Balance:    *ToApiBalance(&res.Balance),
		Awards:     ToApiAwards(res.Awards),
		CacheStale: res.CacheStale,
		Warnings:   warnings(res.Warnings),
	}
}

// ToApiInspection converts a three-way balance comparison.
func ToApiInspection(in *points.Inspection) *api.Inspection {
	return &api.Inspection{
		SubjectId:              in.Scope.Subject,
		CachedPoints:           in.CachedPoints,
		CachedTransactionCount: in.CachedCount,
		CachedAt:               in.CachedAt,
		LedgerPoints:           in.LedgerPoints,
		Drift:                  in.Drift,
		Transactions:           ToApiTransactions(in.Transactions),
	}
}
