package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-bench/internal/apps"
	"github.com/pgEdge/pgedge-bench/internal/bench"
	"github.com/pgEdge/pgedge-bench/internal/db"
	"github.com/pgEdge/pgedge-bench/internal/logging"
	"github.com/pgEdge/pgedge-bench/internal/variant"
)

var (
	benchQuery   string
	benchVariant string
	benchWarmUp  bool
	benchTimeout int
	benchKeep    bool
	benchForce   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Apply a variant, run its logical query, record the measurement",
	Long: `Apply the named physical-design variant, execute the logical query
bound to it, and record the measured wall-clock cost. The run record is
appended to the bench_run table; use 'compare' to derive before/after
reports from recorded runs.

The variant is dropped again after the run so the backend returns to its
base physical design; pass --keep to leave it applied.

Example:
  pgedge-bench bench --query revenue_per_category --variant rpc_baseline
  pgedge-bench bench --query revenue_per_category --variant rpc_category_idx`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchQuery, "query", "",
		"logical query id")
	benchCmd.Flags().StringVar(&benchVariant, "variant", "",
		"variant id to benchmark")
	benchCmd.Flags().BoolVar(&benchWarmUp, "warm-up", false,
		"run one discarded execution before the measured one")
	benchCmd.Flags().IntVar(&benchTimeout, "timeout", 0,
		"per-execution ceiling in seconds (0 = config default)")
	benchCmd.Flags().BoolVar(&benchKeep, "keep", false,
		"leave the variant's physical objects applied after the run")
	benchCmd.Flags().BoolVar(&benchForce, "force", false,
		"permit the run even if the variant's derived objects are stale")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchWarmUp {
		cfg.Bench.WarmUp = true
	}
	if benchTimeout > 0 {
		cfg.Bench.TimeoutSeconds = benchTimeout
	}
	if benchForce {
		cfg.Bench.Force = true
	}
	if err := cfg.ValidateBench(); err != nil {
		return err
	}
	if benchQuery == "" || benchVariant == "" {
		return fmt.Errorf("--query and --variant are required")
	}

	s, err := apps.Get(cfg.Suite)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// The dataset must belong to the suite the variants were written for.
	existingSuite, err := db.GetMetadataValue(ctx, pool, "suite")
	if err != nil {
		return fmt.Errorf("database has not been initialized; run 'pgedge-bench init' first")
	}
	if existingSuite != cfg.Suite {
		return fmt.Errorf(
			"database was initialized for '%s' but '%s' was specified",
			existingSuite, cfg.Suite)
	}

	// Measurements run over a dedicated connection; the pool only
	// serves metadata checks and run persistence.
	conn, err := db.ConnectSingle(ctx, cfg.Connection, "bench "+benchVariant)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	backend := db.NewBackend(conn)
	manager := variant.NewManager(backend)
	for _, v := range s.Variants() {
		if err := manager.Register(v); err != nil {
			return err
		}
	}

	if err := manager.Apply(ctx, benchVariant); err != nil {
		if errors.Is(err, db.ErrVariantConflict) {
			return fmt.Errorf(
				"variant collides with an existing physical object, likely left "+
					"over from an earlier --keep run; drop it or reinitialize: %w", err)
		}
		return err
	}
	if !benchKeep {
		defer func() {
			if dropErr := manager.Drop(context.Background(), benchVariant); dropErr != nil {
				logging.Error().Err(dropErr).
					Str("variant", benchVariant).
					Msg("Failed to drop variant after run")
			}
		}()
	}

	runner := bench.NewRunner(backend, manager, bench.NewStore(), bench.RunnerConfig{
		WarmUp:  cfg.Bench.WarmUp,
		Timeout: time.Duration(cfg.Bench.TimeoutSeconds) * time.Second,
		Retry:   retryPolicy(cfg.Retry),
	})

	execRun := runner.Run
	if cfg.Bench.Force {
		execRun = runner.ForceRun
	}
	run, runErr := execRun(ctx, benchQuery, benchVariant)
	if run.ID != "" {
		// Failed runs are recorded too, never dropped.
		if saveErr := bench.SaveRun(ctx, pool, run); saveErr != nil {
			return saveErr
		}
	}
	if runErr != nil {
		return runErr
	}

	cmd.Printf("run %s: query=%s variant=%s elapsed=%s rows=%d\n",
		run.ID, run.QueryID, run.VariantID, run.Elapsed, run.Rows)
	return nil
}
