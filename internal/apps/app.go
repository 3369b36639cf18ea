// Package apps defines the experiment-suite interface and registry. A
// suite bundles an entity model, generation specs, logical queries, and
// the physical-design variants defined for those queries.
package apps

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-bench/internal/datagen"
	"github.com/pgEdge/pgedge-bench/internal/schema"
	"github.com/pgEdge/pgedge-bench/internal/variant"
)

// QueryDefinition names a logical query: a backend-independent question
// that may have multiple physical executions.
type QueryDefinition struct {
	// ID is the logical query identifier.
	ID string

	// Description describes the question the query answers.
	Description string
}

// Suite is the interface experiment suites implement.
type Suite interface {
	// Name returns the suite name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Model returns the suite's entity model.
	Model() *schema.Model

	// InstallSchema creates the suite's base tables.
	InstallSchema(ctx context.Context, pool *pgxpool.Pool) error

	// DropSchema drops the suite's base tables and any physical
	// objects its variants may have left behind.
	DropSchema(ctx context.Context, pool *pgxpool.Pool) error

	// Specs returns the per-entity generation specs at the given
	// scale, deterministic for a fixed seed.
	Specs(scale int, seed uint64) []datagen.Spec

	// Queries returns the suite's logical queries.
	Queries() []QueryDefinition

	// Variants returns fresh variant definitions for the suite's
	// queries, all in the Defined state.
	Variants() []*variant.Variant
}
