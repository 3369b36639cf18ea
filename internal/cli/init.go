package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-bench/internal/apps"
	"github.com/pgEdge/pgedge-bench/internal/bench"
	"github.com/pgEdge/pgedge-bench/internal/config"
	"github.com/pgEdge/pgedge-bench/internal/datagen"
	"github.com/pgEdge/pgedge-bench/internal/db"
	"github.com/pgEdge/pgedge-bench/internal/logging"
)

var (
	initScale        int
	initSeed         uint64
	initWorkers      int
	initBatchSize    int
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install a suite's schema and generate its dataset",
	Long: `Install the schema of the selected experiment suite and populate it
with deterministic synthetic data. A fixed (suite, scale, seed) always
produces the identical dataset.

Running init against an already-populated database appends rows; use
--drop-existing to start from a clean schema.

Example:
  pgedge-bench init --suite ecommerce --scale 10 --seed 42 --connection "postgres://..."`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initScale, "scale", 0,
		"scale factor multiplying base row counts")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"generation seed for reproducible datasets")
	initCmd.Flags().IntVar(&initWorkers, "workers", 0,
		"parallel generation partitions per entity")
	initCmd.Flags().IntVar(&initBatchSize, "batch-size", 0,
		"rows per batch insert")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initScale > 0 {
		cfg.Init.Scale = initScale
	}
	if cmd.Flags().Changed("seed") {
		cfg.Init.Seed = initSeed
	}
	if initWorkers > 0 {
		cfg.Init.Workers = initWorkers
	}
	if initBatchSize > 0 {
		cfg.Init.BatchSize = initBatchSize
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	s, err := apps.Get(cfg.Suite)
	if err != nil {
		return err
	}

	logging.Info().
		Str("suite", cfg.Suite).
		Int("scale", cfg.Init.Scale).
		Uint64("seed", cfg.Init.Seed).
		Msg("Initializing database")

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Check if already initialized for a different suite
	existingSuite, err := db.GetMetadataValue(ctx, pool, "suite")
	if err == nil && existingSuite != "" && existingSuite != cfg.Suite {
		if !cfg.Init.DropExisting {
			return fmt.Errorf(
				"database was initialized for '%s' but '%s' was specified; "+
					"use --drop-existing to reinitialize",
				existingSuite, cfg.Suite)
		}
		logging.Warn().
			Str("existing_suite", existingSuite).
			Str("new_suite", cfg.Suite).
			Msg("Dropping existing schema")
	}

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := s.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
		// Recorded runs measured the dropped dataset; stale history
		// would silently compare against the new one.
		if err := bench.DropRuns(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No run table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := s.InstallSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	gen := datagen.New(db.NewBackend(pool), datagen.Config{
		BatchSize:        cfg.Init.BatchSize,
		ProgressInterval: 100000,
		Retry:            retryPolicy(cfg.Retry),
	})

	specs := s.Specs(cfg.Init.Scale, cfg.Init.Seed)
	for i := range specs {
		specs[i].Workers = cfg.Init.Workers
	}

	start := time.Now()
	results, err := gen.GenerateModel(ctx, s.Model(), specs)
	if err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	var total int64
	for _, r := range results {
		total += r.RowsInserted
	}

	if err := db.SaveMetadata(ctx, pool, cfg.Suite, cfg.Init.Seed, cfg.Init.Scale); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("suite", cfg.Suite).
		Int64("rows", total).
		Dur("elapsed", time.Since(start)).
		Msg("Database initialization complete")

	return nil
}

// signalContext cancels the returned context on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func retryPolicy(rc config.RetryConfig) db.RetryPolicy {
	return db.RetryPolicy{
		MaxAttempts: rc.MaxAttempts,
		BaseDelay:   time.Duration(rc.BaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(rc.MaxDelayMs) * time.Millisecond,
	}
}
