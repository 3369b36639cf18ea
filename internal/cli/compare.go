package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-bench/internal/bench"
	"github.com/pgEdge/pgedge-bench/internal/db"
)

var (
	compareBaseline  string
	compareOptimized string
	compareList      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Derive a before/after report from two recorded runs",
	Long: `Compare two recorded benchmark runs of the same logical query and
report the absolute delta and percentage improvement. Comparisons are
derived on demand; run records are never modified.

Example:
  pgedge-bench compare --list
  pgedge-bench compare --baseline <run-id> --optimized <run-id>`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", "",
		"baseline run id")
	compareCmd.Flags().StringVar(&compareOptimized, "optimized", "",
		"optimized run id")
	compareCmd.Flags().BoolVar(&compareList, "list", false,
		"list recorded runs instead of comparing")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	store, err := bench.LoadRuns(ctx, pool)
	if err != nil {
		return err
	}

	if compareList {
		for _, r := range store.List() {
			status := fmt.Sprintf("elapsed=%s rows=%d", r.Elapsed, r.Rows)
			if r.Failed {
				status = "FAILED " + r.FailureKind
			}
			tags := ""
			if r.WarmedUp {
				tags += " warmed"
			}
			if r.RanStale {
				tags += " stale"
			}
			cmd.Printf("%s  %s  query=%s variant=%s %s%s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.QueryID, r.VariantID, status, tags)
		}
		return nil
	}

	if compareBaseline == "" || compareOptimized == "" {
		return fmt.Errorf("--baseline and --optimized are required (or use --list)")
	}

	c, err := bench.Compare(store, compareBaseline, compareOptimized)
	if err != nil {
		return err
	}

	cmd.Printf("query:       %s\n", c.QueryID)
	cmd.Printf("baseline:    %s\n", c.BaselineID)
	cmd.Printf("optimized:   %s\n", c.OptimizedID)
	cmd.Printf("delta:       %s\n", c.Delta)
	if c.Degenerate {
		cmd.Println("improvement: n/a (baseline cost is zero)")
	} else {
		cmd.Printf("improvement: %.2f%%\n", c.PercentImprovement)
	}
	if c.Stale {
		cmd.Println("warning:     a run was forced against stale derived objects;" +
			" the runs did not observe the same data")
	}
	return nil
}
