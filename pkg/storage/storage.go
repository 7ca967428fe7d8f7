package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// narrow interfaces (LedgerStore, BalanceStore, AwardStore, ...) so that each
// table keeps a single writer.
type Storage interface {
	LedgerStore
	BalanceStore
	AwardStore
	CatalogReader
	SessionStore
	NotificationSink
}
