//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_PartitionLayout validates that for any row count and
// worker count, partitions are contiguous, disjoint, and cover exactly
// [0, rowCount).
func TestProperty_PartitionLayout(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("partitions tile [0, rowCount) without gaps or overlap", prop.ForAll(
		func(rowCount int64, workers int) bool {
			parts := Partitions(rowCount, workers)
			if rowCount <= 0 {
				return parts == nil
			}
			var next int64
			for _, p := range parts {
				if p.Start != next || p.End <= p.Start {
					return false
				}
				next = p.End
			}
			return next == rowCount
		},
		gen.Int64Range(0, 10000000),
		gen.IntRange(0, 64),
	))

	properties.Property("no partition exceeds a fair share by more than one row", prop.ForAll(
		func(rowCount int64, workers int) bool {
			parts := Partitions(rowCount, workers)
			if len(parts) == 0 {
				return rowCount <= 0
			}
			base := rowCount / int64(len(parts))
			for _, p := range parts {
				if p.Rows() < base || p.Rows() > base+1 {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, 10000000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

// TestProperty_RuleDeterminism validates that seeded rules depend only
// on (seed, row), never on evaluation order or history.
func TestProperty_RuleDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("IntRange is a pure function of seed and row", prop.ForAll(
		func(seed uint64, row int64) bool {
			rule := IntRange(0, 1<<30)
			first := rule.Value(seed, row)
			// Evaluating unrelated rows in between must not disturb it.
			rule.Value(seed, row+1)
			rule.Value(seed+1, row)
			return first == rule.Value(seed, row)
		},
		gen.UInt64(),
		gen.Int64Range(0, 5000000),
	))

	properties.Property("cyclicForeignKey lands in [1, parentCount]", prop.ForAll(
		func(parentCount, row int64) bool {
			v := CyclicForeignKey(parentCount).Value(42, row).(int64)
			return v >= 1 && v <= parentCount
		},
		gen.Int64Range(1, 1000000),
		gen.Int64Range(0, 10000000),
	))

	properties.TestingRun(t)
}
