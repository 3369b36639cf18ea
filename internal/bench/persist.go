//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run records also persist to the backend so separate bench and compare
// invocations share history. The table is append-only; rows are never
// updated.
const createRunTableSQL = `
CREATE TABLE IF NOT EXISTS bench_run (
    id           TEXT PRIMARY KEY,
    query_id     TEXT NOT NULL,
    variant_id   TEXT NOT NULL,
    started_at   TIMESTAMPTZ NOT NULL,
    elapsed_us   BIGINT NOT NULL,
    row_count    BIGINT NOT NULL,
    warmed_up    BOOLEAN NOT NULL,
    ran_stale    BOOLEAN NOT NULL,
    failed       BOOLEAN NOT NULL,
    failure_kind TEXT NOT NULL DEFAULT ''
)`

// SaveRun appends one run record to the backend.
func SaveRun(ctx context.Context, pool *pgxpool.Pool, r Run) error {
	if _, err := pool.Exec(ctx, createRunTableSQL); err != nil {
		return fmt.Errorf("failed to create run table: %w", err)
	}

	_, err := pool.Exec(ctx, `
        INSERT INTO bench_run
            (id, query_id, variant_id, started_at, elapsed_us, row_count,
             warmed_up, ran_stale, failed, failure_kind)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, r.ID, r.QueryID, r.VariantID, r.StartedAt, r.Elapsed.Microseconds(),
		r.Rows, r.WarmedUp, r.RanStale, r.Failed, r.FailureKind)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	return nil
}

// LoadRuns reads all persisted runs into a fresh store. A database that
// has never recorded a run yields an empty store.
func LoadRuns(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, createRunTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create run table: %w", err)
	}

	rows, err := pool.Query(ctx, `
        SELECT id, query_id, variant_id, started_at, elapsed_us, row_count,
               warmed_up, ran_stale, failed, failure_kind
        FROM bench_run
        ORDER BY started_at
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	defer rows.Close()

	store := NewStore()
	for rows.Next() {
		var r Run
		var elapsedUs int64
		if err := rows.Scan(&r.ID, &r.QueryID, &r.VariantID, &r.StartedAt,
			&elapsedUs, &r.Rows, &r.WarmedUp, &r.RanStale, &r.Failed,
			&r.FailureKind); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(elapsedUs) * time.Microsecond
		store.Append(r)
	}
	return store, rows.Err()
}

// DropRuns drops the persisted run table.
func DropRuns(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS bench_run`)
	return err
}
