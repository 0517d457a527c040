package repository

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Loader code passes its transaction; read paths pass the pooled handle.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
