//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-bench.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-bench/internal/apps"
	"github.com/pgEdge/pgedge-bench/internal/config"
	"github.com/pgEdge/pgedge-bench/internal/logging"
	"github.com/pgEdge/pgedge-bench/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	suite      string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-bench",
		Short: "PostgreSQL physical-design benchmarking harness",
		Long: `pgedge-bench generates large, reproducible synthetic datasets and
measures how alternative physical designs (secondary indexes, clustered
tables, materialized views, pre-aggregated tables) change the cost of the
same logical query.

The database does the hard work; pgedge-bench makes the experiment
repeatable: deterministic data, explicit variant lifecycles, immutable
run records, and derived before/after comparisons.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-bench.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&suite, "suite", "",
		"experiment suite (default: ecommerce)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(queriesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if suite != "" {
		cfg.Suite = suite
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List logical queries and their variants",
	Long: `List the logical queries of the selected suite and the physical-design
variants defined for each of them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := apps.Get(cfg.Suite)
		if err != nil {
			return err
		}

		variants := s.Variants()
		cmd.Printf("Suite %s: %s\n\n", s.Name(), s.Description())
		for _, q := range s.Queries() {
			cmd.Printf("%s\n  %s\n", q.ID, q.Description)
			for _, v := range variants {
				if v.QueryID != q.ID {
					continue
				}
				if len(v.Actions) == 0 {
					cmd.Printf("    %-22s (baseline, no actions)\n", v.ID)
					continue
				}
				types := make([]string, 0, len(v.Actions))
				for _, a := range v.Actions {
					types = append(types, string(a.Type))
				}
				cmd.Printf("    %-22s %v\n", v.ID, types)
			}
			cmd.Println()
		}
		return nil
	},
}
