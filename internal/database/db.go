package database

import (
	"context"
	"database/sql"
)

// DB is the narrow storage surface the repositories depend on. The pgx pool
// implements it; tests swap in fakes without touching pgx.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	// SQLDB exposes the database/sql view of the pool for the migration
	// runner.
	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
