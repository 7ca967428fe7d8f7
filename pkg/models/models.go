package models

import (
	"fmt"
	"math"
	"time"
)

// Sign defines the direction of a points transaction.
type Sign string

const (
	POSITIVE Sign = "positive"
	NEGATIVE Sign = "negative"
)

// Valid reports whether s is one of the known directions.
func (s Sign) Valid() bool {
	return s == POSITIVE || s == NEGATIVE
}

// PointsTransaction is one immutable row of the points ledger.
// Amount is always positive; the direction lives in Sign.
type PointsTransaction struct {
	Id          string    `json:"id" dynamodbav:"id"`
	SubjectId   string    `json:"subject_id" dynamodbav:"subject_id"`
	Amount      int64     `json:"amount" dynamodbav:"amount"`
	Sign        Sign      `json:"sign" dynamodbav:"sign"`
	CategoryId  *string   `json:"category_id,omitempty" dynamodbav:"category_id,omitempty"`
	Description string    `json:"description" dynamodbav:"description"`
	CreatedBy   string    `json:"created_by" dynamodbav:"created_by"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	// SortKey orders rows of one subject by creation time; only the DynamoDB store uses it.
	SortKey string `json:"-" dynamodbav:"sk,omitempty"`
}

// SignedAmount returns the amount with the transaction's direction applied.
func (t PointsTransaction) SignedAmount() int64 {
	if t.Sign == NEGATIVE {
		return -t.Amount
	}
	return t.Amount
}

// SignedSum is the balance implied by a set of ledger rows. Order does not matter.
// A total outside the int64 range is reported as ErrBalanceOverflow.
func SignedSum(txs []PointsTransaction) (int64, error) {
	var total int64
	for _, tx := range txs {
		v := tx.SignedAmount()
		if (v > 0 && total > math.MaxInt64-v) || (v < 0 && total < math.MinInt64-v) {
			return 0, fmt.Errorf("%w: transaction %s", ErrBalanceOverflow, tx.Id)
		}
		total += v
	}
	return total, nil
}

// BalanceRecord is the cached current total for one subject.
type BalanceRecord struct {
	SubjectId string `json:"subject_id" dynamodbav:"subject_id"`
	Points    int64  `json:"points" dynamodbav:"points"`
	// TransactionCount is the number of ledger rows the cached value was computed from.
	TransactionCount int64     `json:"transaction_count" dynamodbav:"transaction_count"`
	UpdatedAt        time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// CatalogKind distinguishes medals from badges.
type CatalogKind string

const (
	MEDAL CatalogKind = "medal"
	BADGE CatalogKind = "badge"
)

// CatalogItem is an admin-managed medal or badge unlocked by a points range.
// A nil MaxPoints means the range is unbounded above.
type CatalogItem struct {
	Id          string      `json:"id" dynamodbav:"id"`
	Kind        CatalogKind `json:"kind" dynamodbav:"kind"`
	Name        string      `json:"name" dynamodbav:"name"`
	Description string      `json:"description" dynamodbav:"description"`
	MinPoints   int64       `json:"min_points" dynamodbav:"min_points"`
	MaxPoints   *int64      `json:"max_points,omitempty" dynamodbav:"max_points,omitempty"`
}

// Qualifies reports whether points falls inside the item's inclusive range.
func (c CatalogItem) Qualifies(points int64) bool {
	if points < c.MinPoints {
		return false
	}
	return c.MaxPoints == nil || points <= *c.MaxPoints
}

// AwardRecord is a granted medal or badge. At most one exists per (SubjectId, CatalogItemId).
type AwardRecord struct {
	Id            string      `json:"id" dynamodbav:"id"`
	SubjectId     string      `json:"subject_id" dynamodbav:"subject_id"`
	CatalogItemId string      `json:"catalog_item_id" dynamodbav:"catalog_item_id"`
	Kind          CatalogKind `json:"kind" dynamodbav:"kind"`
	AwardedAt     time.Time   `json:"awarded_at" dynamodbav:"awarded_at"`
}

// Role is the caller classification supplied by the identity provider.
type Role string

const (
	STUDENT Role = "student"
	PARENT  Role = "parent"
	TEACHER Role = "teacher"
	ADMIN   Role = "admin"
)

// Profile is the trusted role record for a user.
type Profile struct {
	UserId string `json:"user_id" dynamodbav:"user_id"`
	Role   Role   `json:"role" dynamodbav:"role"`
}

// Session is an authenticated session issued by the identity provider.
// Only a bcrypt hash of the token secret is stored.
type Session struct {
	Id         string    `json:"id" dynamodbav:"id"`
	UserId     string    `json:"user_id" dynamodbav:"user_id"`
	SecretHash string    `json:"-" dynamodbav:"secret_hash"`
	ExpiresAt  time.Time `json:"expires_at" dynamodbav:"expires_at"`
	Revoked    bool      `json:"revoked" dynamodbav:"revoked"`
}

// Notification is the structured event emitted once per newly awarded item.
type Notification struct {
	Id        string      `json:"id" dynamodbav:"id"`
	SubjectId string      `json:"subject_id" dynamodbav:"subject_id"`
	Kind      CatalogKind `json:"kind" dynamodbav:"kind"`
	ItemId    string      `json:"item_id" dynamodbav:"item_id"`
	Message   string      `json:"message" dynamodbav:"message"`
	CreatedAt time.Time   `json:"created_at" dynamodbav:"created_at"`
}

// TransactionFilter narrows a ledger listing. Zero values mean "no constraint".
type TransactionFilter struct {
	Sign       *Sign
	CategoryId *string
	Since      *time.Time
	Until      *time.Time
	Limit      int
}

// Matches reports whether tx passes every set constraint except Limit.
func (f TransactionFilter) Matches(tx PointsTransaction) bool {
	if f.Sign != nil && tx.Sign != *f.Sign {
		return false
	}
	if f.CategoryId != nil && (tx.CategoryId == nil || *tx.CategoryId != *f.CategoryId) {
		return false
	}
	if f.Since != nil && tx.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && tx.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}
