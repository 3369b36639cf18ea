package bench

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncomparableRuns is returned when two runs cannot be meaningfully
// compared.
var ErrIncomparableRuns = errors.New("incomparable runs")

// RunSource is anything comparisons can read run records from. It is a
// read-only view; the reporter never mutates records.
type RunSource interface {
	Get(id string) (Run, bool)
}

// Comparison is a derived before/after report. It is recomputed on
// demand and never persisted as a source of truth.
type Comparison struct {
	QueryID     string
	BaselineID  string
	OptimizedID string

	// Delta is baseline cost minus optimized cost; positive means the
	// optimized variant was faster.
	Delta time.Duration

	// PercentImprovement is Delta relative to the baseline cost. Zero
	// with Degenerate set when the baseline cost is zero.
	PercentImprovement float64
	Degenerate         bool

	// Stale is set when either run was forced against stale derived
	// objects; the two runs did not observe the same data.
	Stale bool
}

// Compare derives a comparison between two recorded runs. It fails with
// ErrIncomparableRuns when the runs target different logical queries,
// when either is a recorded failure, or when their warm-up policies
// differ. A run forced against stale derived objects still compares,
// but the result carries the Stale flag.
func Compare(src RunSource, baselineID, optimizedID string) (Comparison, error) {
	baseline, ok := src.Get(baselineID)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: baseline run %q not found", ErrIncomparableRuns, baselineID)
	}
	optimized, ok := src.Get(optimizedID)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: optimized run %q not found", ErrIncomparableRuns, optimizedID)
	}

	if baseline.QueryID != optimized.QueryID {
		return Comparison{}, fmt.Errorf("%w: runs target different queries (%q vs %q)",
			ErrIncomparableRuns, baseline.QueryID, optimized.QueryID)
	}
	if baseline.Failed || optimized.Failed {
		return Comparison{}, fmt.Errorf("%w: cannot compare failed runs", ErrIncomparableRuns)
	}
	if baseline.WarmedUp != optimized.WarmedUp {
		return Comparison{}, fmt.Errorf("%w: warm-up policies differ", ErrIncomparableRuns)
	}

	c := Comparison{
		QueryID:     baseline.QueryID,
		BaselineID:  baselineID,
		OptimizedID: optimizedID,
		Delta:       baseline.Elapsed - optimized.Elapsed,
		Stale:       baseline.RanStale || optimized.RanStale,
	}

	if baseline.Elapsed == 0 {
		c.Degenerate = true
		return c, nil
	}

	c.PercentImprovement = float64(c.Delta) / float64(baseline.Elapsed) * 100
	return c, nil
}
