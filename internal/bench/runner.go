package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-bench/internal/db"
	"github.com/pgEdge/pgedge-bench/internal/logging"
	"github.com/pgEdge/pgedge-bench/internal/variant"
)

// RunnerConfig holds runner tuning knobs.
type RunnerConfig struct {
	// WarmUp runs one discarded execution before the measured one.
	// Off by default; recorded on every run so comparisons only pair
	// runs with matching policy.
	WarmUp bool

	// Timeout is the per-execution ceiling. Zero means no ceiling.
	Timeout time.Duration

	// Retry bounds retries of transient backend failures.
	Retry db.RetryPolicy
}

// Runner executes logical queries bound to variants and appends
// immutable run records. Runs against a single backend are serialized:
// concurrent runs would corrupt cache-warmth measurements.
type Runner struct {
	backend  db.Backend
	variants *variant.Manager
	store    *Store
	cfg      RunnerConfig

	// mu enforces at most one in-flight run per backend.
	mu sync.Mutex
}

// NewRunner creates a runner recording into store.
func NewRunner(backend db.Backend, variants *variant.Manager, store *Store, cfg RunnerConfig) *Runner {
	return &Runner{
		backend:  backend,
		variants: variants,
		store:    store,
		cfg:      cfg,
	}
}

// Run executes the logical query bound to the named variant and records
// the measurement. The variant must be Applied; use ForceRun for a
// Stale variant.
func (r *Runner) Run(ctx context.Context, queryID, variantID string) (Run, error) {
	return r.run(ctx, queryID, variantID, false)
}

// ForceRun is Run, but permits a Stale variant. The resulting record is
// tagged as run against stale data.
func (r *Runner) ForceRun(ctx context.Context, queryID, variantID string) (Run, error) {
	return r.run(ctx, queryID, variantID, true)
}

func (r *Runner) run(ctx context.Context, queryID, variantID string, force bool) (Run, error) {
	v, err := r.variants.Get(variantID)
	if err != nil {
		return Run{}, err
	}
	if v.QueryID != queryID {
		return Run{}, fmt.Errorf("variant %q targets query %q, not %q", variantID, v.QueryID, queryID)
	}

	state := v.State()
	stale := false
	switch state {
	case variant.Applied:
	case variant.Stale:
		if !force {
			return Run{}, fmt.Errorf("variant %q is stale; force the run to measure it anyway", variantID)
		}
		stale = true
	default:
		return Run{}, &variant.StateError{VariantID: variantID, From: state, Op: "run"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	run := Run{
		ID:        uuid.NewString(),
		QueryID:   queryID,
		VariantID: variantID,
		StartedAt: time.Now().UTC(),
		WarmedUp:  r.cfg.WarmUp,
		RanStale:  stale,
	}

	if r.cfg.WarmUp {
		if err := r.execute(ctx, v.QueryText, nil); err != nil {
			// A failed warm-up means the measured execution cannot be
			// trusted either; record the failure.
			return r.recordFailure(run, err)
		}
	}

	var result db.SelectResult
	if err := r.execute(ctx, v.QueryText, &result); err != nil {
		return r.recordFailure(run, err)
	}

	run.Elapsed = result.Elapsed
	run.Rows = result.Rows
	r.store.Append(run)

	logging.Info().
		Str("run", run.ID).
		Str("query", queryID).
		Str("variant", variantID).
		Dur("elapsed", run.Elapsed).
		Int64("rows", run.Rows).
		Bool("warmed_up", run.WarmedUp).
		Bool("ran_stale", run.RanStale).
		Msg("Benchmark run complete")

	return run, nil
}

// execute runs statement once under the configured ceiling, retrying
// transient backend failures. Timing comes from the final attempt only.
func (r *Runner) execute(ctx context.Context, statement string, out *db.SelectResult) error {
	return r.cfg.Retry.Do(ctx, func() error {
		execCtx := ctx
		if r.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			execCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
			defer cancel()
		}
		res, err := r.backend.Select(execCtx, statement)
		if err != nil {
			return err
		}
		if out != nil {
			*out = res
		}
		return nil
	})
}

// recordFailure appends a failed run (no cost value) and returns it with
// the error. Timeouts are runs that failed, not harness failures.
func (r *Runner) recordFailure(run Run, err error) (Run, error) {
	run.Failed = true
	run.FailureKind = failureKind(err)
	r.store.Append(run)

	logging.Warn().
		Err(err).
		Str("run", run.ID).
		Str("query", run.QueryID).
		Str("variant", run.VariantID).
		Str("failure_kind", run.FailureKind).
		Msg("Benchmark run failed")

	return run, fmt.Errorf("run %s: %w", run.ID, err)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, db.ErrQueryTimeout):
		return "query_timeout"
	case errors.Is(err, db.ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, db.ErrConstraintViolation):
		return "constraint_violation"
	default:
		return "error"
	}
}
