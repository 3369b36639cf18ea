//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package variant models alternative physical designs for a logical
// query and applies them to the backend without changing the query's
// logical result set.
package variant

import (
	"fmt"
	"sync"
)

// State is a variant lifecycle state.
type State string

// Lifecycle states. Defined is initial; there is no terminal state.
const (
	Defined    State = "defined"
	Applying   State = "applying"
	Applied    State = "applied"
	Stale      State = "stale"
	Refreshing State = "refreshing"
	Dropping   State = "dropping"
)

// ActionType identifies a physical-design action.
type ActionType string

// Action types.
const (
	CreateIndex            ActionType = "createIndex"
	ClusterOn              ActionType = "clusterOn"
	CreateMaterializedView ActionType = "createMaterializedView"
	CreateDerivedTable     ActionType = "createDerivedTable"
)

// Action is one physical-design step. Statement applies it, Reverse
// retracts it. Derived objects (materialized views, pre-aggregated
// tables) carry a Refresh statement re-running their population logic.
type Action struct {
	Type      ActionType
	Statement string
	Reverse   string
	Refresh   string
}

// Derived reports whether the action creates a derived object whose
// contents can lag behind the base tables.
func (a Action) Derived() bool {
	return a.Type == CreateMaterializedView || a.Type == CreateDerivedTable
}

// Variant is one physical-design strategy for a logical query. QueryText
// is the literal statement to benchmark against this variant's physical
// objects; one logical query maps to different text per variant.
type Variant struct {
	ID      string
	QueryID string

	// QueryText is the statement the benchmark runner executes.
	QueryText string

	// Actions are applied in order and reversed in opposite order.
	Actions []Action

	mu    sync.Mutex
	state State
}

// StateError reports a transition attempted outside the lifecycle edges.
type StateError struct {
	VariantID string
	From      State
	Op        string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("variant %q: cannot %s from state %q", e.VariantID, e.Op, e.From)
}

// NewVariant creates a variant in the Defined state.
func NewVariant(id, queryID, queryText string, actions []Action) *Variant {
	return &Variant{
		ID:        id,
		QueryID:   queryID,
		QueryText: queryText,
		Actions:   actions,
		state:     Defined,
	}
}

// State returns the current lifecycle state.
func (v *Variant) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// HasDerived reports whether any action creates a derived object.
func (v *Variant) HasDerived() bool {
	for _, a := range v.Actions {
		if a.Derived() {
			return true
		}
	}
	return false
}

// transition moves to next if the current state is one of from,
// otherwise returns a StateError. The caller must hold v.mu.
func (v *Variant) transition(op string, next State, from ...State) error {
	for _, f := range from {
		if v.state == f {
			v.state = next
			return nil
		}
	}
	return &StateError{VariantID: v.ID, From: v.state, Op: op}
}
