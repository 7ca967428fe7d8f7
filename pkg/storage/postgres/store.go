package postgres

import (
	"context"

	"github.com/chris/behavior-points/pkg/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements the Storage interface using PostgreSQL.
type Store struct {
	db DB
}

// New creates a new Store.
func New(db DB) *Store {
	return &Store{db: db}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
