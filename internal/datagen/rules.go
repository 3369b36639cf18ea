//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen produces deterministic synthetic rows. Every
// distribution rule is a pure function of (seed, row index), so two runs
// with the same spec emit byte-identical rows regardless of worker count
// or partition layout.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Rule maps a zero-based row index to a column value.
type Rule interface {
	Value(seed uint64, row int64) any
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(seed uint64, row int64) any

// Value implements Rule.
func (f RuleFunc) Value(seed uint64, row int64) any {
	return f(seed, row)
}

// mix64 derives an independent per-row seed. SplitMix64 finalizer; any
// change here changes every generated dataset.
func mix64(seed uint64, row int64) uint64 {
	z := seed + uint64(row)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// rowFaker returns a faker seeded for one (seed, row) pair. A fresh
// instance per row keeps rules independent of generation order, which is
// what lets partitioned workers share one spec.
func rowFaker(seed uint64, row int64) *gofakeit.Faker {
	return gofakeit.New(mix64(seed, row))
}

// SequentialID assigns start, start+1, ... in row order.
func SequentialID(start int64) Rule {
	return RuleFunc(func(_ uint64, row int64) any {
		return start + row
	})
}

// CyclicForeignKey cycles over parent ids [1, parentCount]. Generated in
// topological order, every value names a parent row that already exists.
// A non-positive parentCount is clamped to 1; with no parent rows the
// backend rejects the reference as a constraint violation.
func CyclicForeignKey(parentCount int64) Rule {
	if parentCount < 1 {
		parentCount = 1
	}
	return RuleFunc(func(_ uint64, row int64) any {
		return row%parentCount + 1
	})
}

// TemplatedString formats prefix plus the one-based row number.
func TemplatedString(prefix string) Rule {
	return RuleFunc(func(_ uint64, row int64) any {
		return fmt.Sprintf("%s-%08d", prefix, row+1)
	})
}

// NumericRange draws a value in [min, max].
func NumericRange(min, max float64) Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).Float64Range(min, max)
	})
}

// IntRange draws an integer in [min, max].
func IntRange(min, max int) Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).IntRange(min, max)
	})
}

// FixedDate assigns the same timestamp to every row.
func FixedDate(t time.Time) Rule {
	return RuleFunc(func(_ uint64, _ int64) any {
		return t
	})
}

// RangeDate draws a timestamp in [start, end).
func RangeDate(start, end time.Time) Rule {
	span := end.Sub(start)
	return RuleFunc(func(seed uint64, row int64) any {
		if span <= 0 {
			return start
		}
		offset := time.Duration(rowFaker(seed, row).IntRange(0, int(int64(span)-1)))
		return start.Add(offset)
	})
}

// Choice picks one of the given values.
func Choice[T any](values []T) Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		if len(values) == 0 {
			var zero T
			return zero
		}
		return values[rowFaker(seed, row).IntRange(0, len(values)-1)]
	})
}

// FirstName draws a fake first name.
func FirstName() Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).FirstName()
	})
}

// LastName draws a fake last name.
func LastName() Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).LastName()
	})
}

// City draws a fake city name.
func City() Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).City()
	})
}

// ProductName draws a fake product name.
func ProductName() Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).ProductName()
	})
}

// Email builds a unique address from the prefix and one-based row
// number. Fully templated so uniqueness holds at any row count.
func Email(prefix string) Rule {
	return RuleFunc(func(_ uint64, row int64) any {
		return fmt.Sprintf("%s%d@example.com", prefix, row+1)
	})
}

// Sentence draws a fake sentence of wordCount words.
func Sentence(wordCount int) Rule {
	return RuleFunc(func(seed uint64, row int64) any {
		return rowFaker(seed, row).Sentence(wordCount)
	})
}
