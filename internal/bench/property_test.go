//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package bench

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_CompareAntisymmetry validates that swapping baseline and
// optimized negates the delta for any pair of comparable costs.
func TestProperty_CompareAntisymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("compare(a,b).Delta == -compare(b,a).Delta", prop.ForAll(
		func(aMicros, bMicros int64) bool {
			s := storeWith(
				Run{ID: "a", QueryID: "q", Elapsed: time.Duration(aMicros) * time.Microsecond},
				Run{ID: "b", QueryID: "q", Elapsed: time.Duration(bMicros) * time.Microsecond},
			)
			ab, err := Compare(s, "a", "b")
			if err != nil {
				return false
			}
			ba, err := Compare(s, "b", "a")
			if err != nil {
				return false
			}
			return ab.Delta == -ba.Delta
		},
		gen.Int64Range(0, 3600000000),
		gen.Int64Range(0, 3600000000),
	))

	properties.Property("equal costs compare to zero delta in both directions", prop.ForAll(
		func(micros int64) bool {
			s := storeWith(
				Run{ID: "a", QueryID: "q", Elapsed: time.Duration(micros) * time.Microsecond},
				Run{ID: "b", QueryID: "q", Elapsed: time.Duration(micros) * time.Microsecond},
			)
			ab, err := Compare(s, "a", "b")
			if err != nil {
				return false
			}
			return ab.Delta == 0 && (ab.Degenerate || ab.PercentImprovement == 0)
		},
		gen.Int64Range(0, 3600000000),
	))

	properties.TestingRun(t)
}
