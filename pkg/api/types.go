// Package api holds the HTTP request and response types of the points service
// and the chi route registration for them.
package api

import (
	"time"
)

// Defines values for Sign.
const (
	Negative Sign = "negative"
	Positive Sign = "positive"
)

// Defines values for CatalogKind.
const (
	Badge CatalogKind = "badge"
	Medal CatalogKind = "medal"
)

// ScopeHeader is set on answers that were narrowed to the caller's own subject.
const ScopeHeader = "X-Access-Scope"

// Sign is the direction of a points transaction.
type Sign string

// CatalogKind distinguishes medals from badges.
type CatalogKind string

// NewTransaction is the body of a points grant or deduction.
type NewTransaction struct {
	Amount      int64   `json:"amount"`
	Sign        Sign    `json:"sign" validate:"required,oneof=positive negative"`
	CategoryId  *string `json:"category_id,omitempty" validate:"omitempty,notblank,max=64"`
	Description string  `json:"description" validate:"max=500"`
}

// Transaction defines model for Transaction.
type Transaction struct {
	Id          string    `json:"id"`
	SubjectId   string    `json:"subject_id"`
	Amount      int64     `json:"amount"`
	Sign        Sign      `json:"sign"`
	CategoryId  *string   `json:"category_id,omitempty"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Balance defines model for Balance.
type Balance struct {
	SubjectId        string    `json:"subject_id"`
	Points           int64     `json:"points"`
	TransactionCount int64     `json:"transaction_count"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Award defines model for Award.
type Award struct {
	Id            string      `json:"id"`
	SubjectId     string      `json:"subject_id"`
	CatalogItemId string      `json:"catalog_item_id"`
	Kind          CatalogKind `json:"kind"`
	AwardedAt     time.Time   `json:"awarded_at"`
}

// CatalogItem defines model for CatalogItem.
type CatalogItem struct {
	Id          string      `json:"id"`
	Kind        CatalogKind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	MinPoints   int64       `json:"min_points"`
	MaxPoints   *int64      `json:"max_points,omitempty"`
}

// ChangeResult is the answer to a points change. Warnings list the steps after the
// ledger append that did not complete.
type ChangeResult struct {
	Transaction Transaction `json:"transaction"`
	Balance     *Balance    `json:"balance,omitempty"`
	Awards      []Award     `json:"awards"`
	CacheStale  bool        `json:"cache_stale"`
	Warnings    []string    `json:"warnings"`
}

// SyncResult defines model for SyncResult.
type SyncResult struct {
	Balance    Balance  `json:"balance"`
	CacheStale bool     `json:"cache_stale"`
	Warnings   []string `json:"warnings"`
}

// EvaluateResult defines model for EvaluateResult.
type EvaluateResult struct {
	Balance    Balance  `json:"balance"`
	Awards     []Award  `json:"awards"`
	CacheStale bool     `json:"cache_stale"`
	Warnings   []string `json:"warnings"`
}

// Inspection compares the cached balance with the recomputed ledger total.
type Inspection struct {
	SubjectId              string        `json:"subject_id"`
	CachedPoints           *int64        `json:"cached_points,omitempty"`
	CachedTransactionCount *int64        `json:"cached_transaction_count,omitempty"`
	CachedAt               *time.Time    `json:"cached_at,omitempty"`
	LedgerPoints           int64         `json:"ledger_points"`
	Drift                  *int64        `json:"drift,omitempty"`
	Transactions           []Transaction `json:"transactions"`
}

// ValidationError is returned with status 400 when a request body fails validation.
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ListTransactionsParams defines parameters for ListTransactions.
type ListTransactionsParams struct {
	Sign       *Sign      `form:"sign,omitempty" json:"sign,omitempty"`
	CategoryId *string    `form:"category_id,omitempty" json:"category_id,omitempty"`
	Since      *time.Time `form:"since,omitempty" json:"since,omitempty"`
	Until      *time.Time `form:"until,omitempty" json:"until,omitempty"`
	Limit      *int       `form:"limit,omitempty" json:"limit,omitempty"`
}

// SyncBalanceParams defines parameters for SyncBalance.
type SyncBalanceParams struct {
	Force *bool `form:"force,omitempty" json:"force,omitempty"`
}
