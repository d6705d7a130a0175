package db

import (
	"context"
	"database/sql"
)

// DBTX is what the repositories run queries against. Passing the *sql.DB
// gives autocommit reads and writes; passing the *sql.Tx from WithinTx puts
// an activity and its completion entries in one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
