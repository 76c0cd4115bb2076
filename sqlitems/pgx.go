package sqlitems

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/domonda/go-listcontainer/propertypath"
)

const postgresDriver = "pgx"

// sqlOpen is replaced in tests.
var sqlOpen = sql.Open

// OpenPostgres opens a database/sql connection pool to Postgres
// using the pgx driver and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sqlOpen(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PgxRows adapts native pgx rows to the Rows interface.
// Column names are the names of the field descriptions.
func PgxRows(rows pgx.Rows) Rows {
	return pgxRows{rows}
}

type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Columns() ([]string, error) {
	fields := r.rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}
	return columns, nil
}

func (r pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }

func (r pgxRows) Close() error {
	r.rows.Close()
	return nil
}

func (r pgxRows) Next() bool { return r.rows.Next() }

func (r pgxRows) Err() error { return r.rows.Err() }

// PgxQuerier is implemented by *pgx.Conn, *pgxpool.Pool, and pgx.Tx.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryPgxItems executes query with a native pgx connection
// and scans the result with ScanItems.
func QueryPgxItems[T any](ctx context.Context, conn PgxQuerier, resolver *propertypath.Resolver, query string, args ...any) ([]T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return ScanItems[T](ctx, PgxRows(rows), resolver)
}
