package ecommerce

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-bench/internal/apps"
	"github.com/pgEdge/pgedge-bench/internal/datagen"
	"github.com/pgEdge/pgedge-bench/internal/schema"
	"github.com/pgEdge/pgedge-bench/internal/variant"
)

// Suite implements the e-commerce experiment suite.
type Suite struct {
	model *schema.Model

	// Workers caps parallel generation partitions per entity.
	Workers int
}

// New creates the e-commerce suite.
func New() *Suite {
	model, err := newModel()
	if err != nil {
		// The model is static; a define failure is a programming error.
		panic(err)
	}
	return &Suite{model: model}
}

// Name returns the suite name.
func (s *Suite) Name() string {
	return "ecommerce"
}

// Description returns a human-readable description.
func (s *Suite) Description() string {
	return "Online store schema with indexing, clustering, materialized view, " +
		"and pre-aggregation experiments over its reporting queries"
}

// Model returns the suite's entity model.
func (s *Suite) Model() *schema.Model {
	return s.model
}

// InstallSchema creates the base tables.
func (s *Suite) InstallSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return CreateSchema(ctx, pool)
}

// DropSchema drops the base tables and variant leftovers.
func (s *Suite) DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return DropSchema(ctx, pool)
}

// Specs returns the per-entity generation specs.
func (s *Suite) Specs(scale int, seed uint64) []datagen.Spec {
	return specs(s.model, scale, seed, s.Workers)
}

// Queries returns the suite's logical queries.
func (s *Suite) Queries() []apps.QueryDefinition {
	return queries()
}

// Variants returns fresh variant definitions, all Defined.
func (s *Suite) Variants() []*variant.Variant {
	return variants()
}

func init() {
	apps.Register(New())
}
