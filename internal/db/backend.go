//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ExecResult holds the outcome of a data-definition or data-manipulation
// statement.
type ExecResult struct {
	RowsAffected int64
	Elapsed      time.Duration
}

// SelectResult holds the outcome of a row-returning statement. Result
// rows are counted, not retained; the harness never keeps a dataset copy.
type SelectResult struct {
	Rows    int64
	Elapsed time.Duration
}

// Backend is the narrow statement-execution contract the harness issues
// work through: execute a statement, return rows and timing, report
// failures classified into the harness error kinds.
type Backend interface {
	// Exec runs a statement that does not return rows.
	Exec(ctx context.Context, sql string, args ...any) (ExecResult, error)

	// Select runs a row-returning statement and drains the result,
	// returning the row count and elapsed wall-clock time.
	Select(ctx context.Context, sql string, args ...any) (SelectResult, error)
}

// querier is satisfied by both *pgxpool.Pool and *pgx.Conn.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgBackend adapts a pgx pool or connection to the Backend contract.
type PgBackend struct {
	db querier
}

// NewBackend wraps a pgx pool or single connection.
func NewBackend(db interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}) *PgBackend {
	return &PgBackend{db: db}
}

// Exec implements Backend.
func (b *PgBackend) Exec(ctx context.Context, sql string, args ...any) (ExecResult, error) {
	start := time.Now()
	tag, err := b.db.Exec(ctx, sql, args...)
	elapsed := time.Since(start)
	if err != nil {
		return ExecResult{Elapsed: elapsed}, Classify(err)
	}
	return ExecResult{
		RowsAffected: tag.RowsAffected(),
		Elapsed:      elapsed,
	}, nil
}

// Select implements Backend.
func (b *PgBackend) Select(ctx context.Context, sql string, args ...any) (SelectResult, error) {
	start := time.Now()
	rows, err := b.db.Query(ctx, sql, args...)
	if err != nil {
		return SelectResult{Elapsed: time.Since(start)}, Classify(err)
	}

	var count int64
	for rows.Next() {
		count++
	}
	rows.Close()
	elapsed := time.Since(start)

	if err := rows.Err(); err != nil {
		return SelectResult{Rows: count, Elapsed: elapsed}, Classify(err)
	}
	return SelectResult{Rows: count, Elapsed: elapsed}, nil
}
