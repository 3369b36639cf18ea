//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package bench executes logical queries against applied variants,
// records immutable run measurements, and derives comparisons.
package bench

import (
	"sync"
	"time"
)

// Run is one recorded benchmark execution. Runs are immutable once
// recorded; failed runs are recorded too, never dropped.
type Run struct {
	ID        string
	QueryID   string
	VariantID string
	StartedAt time.Time

	// Elapsed is the measured wall-clock cost. Zero when Failed.
	Elapsed time.Duration

	// Rows is the number of rows the query returned.
	Rows int64

	// WarmedUp records whether a discarded warm-up execution preceded
	// the measurement. Comparisons require matching warm-up policy.
	WarmedUp bool

	// RanStale is set when the run was forced against a stale variant;
	// its results may lag the base data.
	RanStale bool

	Failed      bool
	FailureKind string
}

// Store is an append-only, in-process record of benchmark runs.
type Store struct {
	mu   sync.RWMutex
	runs []Run
	byID map[string]int
}

// NewStore creates an empty run store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Append records a run. Records are never mutated afterwards.
func (s *Store) Append(r Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[r.ID] = len(s.runs)
	s.runs = append(s.runs, r)
}

// Get returns the run with the given id.
func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Run{}, false
	}
	return s.runs[i], true
}

// List returns all runs in append order.
func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out
}
