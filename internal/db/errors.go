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
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds for statement execution failures. Callers match with
// errors.Is; the original backend error stays in the chain.
var (
	// ErrBackendUnavailable marks transient connection-level failures.
	// These are the only errors the retry helper will retry.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrConstraintViolation marks a declared data constraint failure.
	// During generation this signals a bad distribution rule and is fatal.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrVariantConflict marks a collision with an existing physical
	// object (duplicate table, index, or view name).
	ErrVariantConflict = errors.New("variant conflict")

	// ErrQueryTimeout marks an execution that exceeded its ceiling.
	ErrQueryTimeout = errors.New("query timeout")
)

// SQLSTATE classes and codes the harness cares about.
const (
	sqlstateClassConnection = "08"
	sqlstateClassConstraint = "23"
	sqlstateQueryCanceled   = "57014"
	sqlstateDuplicateTable  = "42P07"
	sqlstateDuplicateObject = "42710"
	sqlstateDuplicateIndex  = "42P11"
)

// Classify wraps err with the harness error kind it belongs to.
// Errors that fit no kind are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrQueryTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, sqlstateClassConnection):
			return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		case strings.HasPrefix(pgErr.Code, sqlstateClassConstraint):
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		case pgErr.Code == sqlstateQueryCanceled:
			return fmt.Errorf("%w: %v", ErrQueryTimeout, err)
		case pgErr.Code == sqlstateDuplicateTable,
			pgErr.Code == sqlstateDuplicateObject,
			pgErr.Code == sqlstateDuplicateIndex:
			return fmt.Errorf("%w: %v", ErrVariantConflict, err)
		}
		return err
	}

	// Network-level failures surface as net errors before pgx can
	// produce a PgError.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return err
}
