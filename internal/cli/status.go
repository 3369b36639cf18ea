//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-bench/internal/apps"
	"github.com/pgEdge/pgedge-bench/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset metadata and per-entity row counts",
	Long: `Show how the target database was initialized (suite, seed, scale) and
the current row count of every entity in the suite's model. Also lists
the available experiment suites.

Example:
  pgedge-bench status --connection "postgres://..."`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil || len(metadata) == 0 {
		cmd.Println("Database has not been initialized; run 'pgedge-bench init' first.")
	} else {
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		cmd.Println("Dataset:")
		for _, k := range keys {
			cmd.Printf("  %-16s %s\n", k, metadata[k])
		}
		cmd.Println()
	}

	suiteName := cfg.Suite
	if v, ok := metadata["suite"]; ok {
		suiteName = v
	}
	if s, err := apps.Get(suiteName); err == nil {
		cmd.Printf("Entities (%s):\n", s.Name())
		for _, e := range s.Model().Entities() {
			var n int64
			if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+e.Name).Scan(&n); err != nil {
				cmd.Printf("  %-16s (missing)\n", e.Name)
				continue
			}
			cmd.Printf("  %-16s %d rows\n", e.Name, n)
		}
		cmd.Println()
	}

	cmd.Println("Available suites:")
	for _, name := range apps.List() {
		if s, err := apps.Get(name); err == nil {
			cmd.Printf("  %-12s %s\n", s.Name(), s.Description())
		}
	}
	return nil
}
