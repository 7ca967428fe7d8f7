package models

import "errors"

var (
	// ErrUnauthenticated is returned when the caller has no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when an authenticated caller is not entitled to the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAmount is returned for zero, negative or malformed point amounts.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrBalanceOverflow is returned when a subject's ledger total does not fit in an int64.
	ErrBalanceOverflow = errors.New("balance out of range")

	// ErrInvalidSign is returned when a transaction direction is neither positive nor negative.
	ErrInvalidSign = errors.New("sign must be positive or negative")

	// ErrLedgerWriteFailed is returned when the store rejects a ledger append.
	ErrLedgerWriteFailed = errors.New("ledger write failed")

	// ErrCacheSyncFailed means the ledger is correct but the cached balance could not be written.
	ErrCacheSyncFailed = errors.New("balance cache sync failed")

	// ErrAwardEvaluationFailed means awards could not be evaluated; ledger and cache are unaffected.
	ErrAwardEvaluationFailed = errors.New("award evaluation failed")

	// ErrNotificationFailed means an award was recorded but its notification was not emitted.
	ErrNotificationFailed = errors.New("award notification failed")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)
