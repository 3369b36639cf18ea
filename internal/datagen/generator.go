package datagen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	sq "github.com/Masterminds/squirrel"

	"github.com/pgEdge/pgedge-bench/internal/db"
	"github.com/pgEdge/pgedge-bench/internal/logging"
	"github.com/pgEdge/pgedge-bench/internal/schema"
)

// ColumnRule binds a distribution rule to an entity column. Rules are
// evaluated in the order given; the order also fixes the insert column
// list, so it is part of the reproducibility tuple.
type ColumnRule struct {
	Column string
	Rule   Rule
}

// Spec describes one entity's generation: how many rows, from which
// seed, under which distribution rules. Specs are configuration and
// immutable after setup.
type Spec struct {
	Entity   *schema.Entity
	RowCount int64
	Seed     uint64
	Rules    []ColumnRule

	// Workers caps parallel partitions for this entity. Zero means one.
	Workers int
}

// Result summarizes a completed generation.
type Result struct {
	Entity       string
	RowsInserted int64
	Batches      int64
	Partitions   int
}

// Config holds generator tuning knobs. Batch size bounds memory, it is
// not a correctness factor.
type Config struct {
	BatchSize        int
	ProgressInterval int64
	Retry            db.RetryPolicy
}

// DefaultConfig returns default generator configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:        1000,
		ProgressInterval: 100000,
		Retry:            db.DefaultRetryPolicy(),
	}
}

// Generator streams deterministic synthetic rows to a backend in bounded
// batches. It holds no dataset copy beyond the batch being built. It
// only ever appends; truncating an already-populated backend is the
// caller's responsibility.
type Generator struct {
	backend db.Backend
	cfg     Config
}

// New creates a generator.
func New(backend db.Backend, cfg Config) *Generator {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.ProgressInterval < 1 {
		cfg.ProgressInterval = DefaultConfig().ProgressInterval
	}
	return &Generator{backend: backend, cfg: cfg}
}

// Generate produces spec.RowCount rows for one entity. Rows are emitted
// in fixed order per partition; partitions own disjoint row ranges, so
// reruns with identical inputs produce identical tables. Cancellation is
// honored between batches: committed batches remain, the in-flight batch
// is abandoned.
func (g *Generator) Generate(ctx context.Context, spec Spec) (Result, error) {
	if err := validateSpec(spec); err != nil {
		return Result{}, err
	}
	res := Result{Entity: spec.Entity.Name}
	if spec.RowCount == 0 {
		return res, nil
	}

	parts := Partitions(spec.RowCount, spec.Workers)
	res.Partitions = len(parts)

	logging.Info().
		Str("entity", spec.Entity.Name).
		Int64("rows", spec.RowCount).
		Uint64("seed", spec.Seed).
		Int("partitions", len(parts)).
		Msg("Generating data")

	progress := newProgress(spec.Entity.Name, spec.RowCount, g.cfg.ProgressInterval)

	var (
		wg       sync.WaitGroup
		firstErr error
		errOnce  sync.Once
		inserted atomic.Int64
		batches  atomic.Int64
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for _, part := range parts {
		wg.Add(1)
		go func(p Partition) {
			defer wg.Done()
			n, b, err := g.generatePartition(ctx, spec, p, progress)
			inserted.Add(n)
			batches.Add(b)
			if err != nil {
				fail(err)
			}
		}(part)
	}
	wg.Wait()

	res.RowsInserted = inserted.Load()
	res.Batches = batches.Load()
	if firstErr != nil {
		return res, fmt.Errorf("generate %s: %w", spec.Entity.Name, firstErr)
	}

	progress.done()
	return res, nil
}

// GenerateModel runs the given specs in topological waves over the
// model: an entity starts only after every entity it references has
// fully completed. Entities within a wave run concurrently. Committed
// prior waves remain intact when a later wave fails. Every spec must
// target an entity of the model.
func (g *Generator) GenerateModel(ctx context.Context, model *schema.Model, specs []Spec) ([]Result, error) {
	byEntity := make(map[string]Spec, len(specs))
	for _, s := range specs {
		if s.Entity == nil {
			return nil, fmt.Errorf("spec with nil entity")
		}
		if model.Entity(s.Entity.Name) == nil {
			return nil, fmt.Errorf("spec entity %q is not part of the model", s.Entity.Name)
		}
		byEntity[s.Entity.Name] = s
	}

	var results []Result
	for _, wave := range model.Waves() {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			waveErr error
		)
		for _, entity := range wave {
			spec, ok := byEntity[entity.Name]
			if !ok {
				continue
			}
			wg.Add(1)
			go func(s Spec) {
				defer wg.Done()
				r, err := g.Generate(ctx, s)
				mu.Lock()
				defer mu.Unlock()
				results = append(results, r)
				if err != nil && waveErr == nil {
					waveErr = err
				}
			}(spec)
		}
		wg.Wait()
		if waveErr != nil {
			return results, waveErr
		}
	}
	return results, nil
}

func (g *Generator) generatePartition(ctx context.Context, spec Spec, part Partition, progress *progressReporter) (int64, int64, error) {
	columns := make([]string, len(spec.Rules))
	for i, cr := range spec.Rules {
		columns[i] = cr.Column
	}

	var inserted, batches int64
	builder := sq.Insert(spec.Entity.Name).
		Columns(columns...).
		PlaceholderFormat(sq.Dollar)

	batch := builder
	rowsInBatch := 0

	flush := func() error {
		if rowsInBatch == 0 {
			return nil
		}
		sqlText, args, err := batch.ToSql()
		if err != nil {
			return fmt.Errorf("building insert: %w", err)
		}
		err = g.cfg.Retry.Do(ctx, func() error {
			_, execErr := g.backend.Exec(ctx, sqlText, args...)
			return execErr
		})
		if err != nil {
			return err
		}
		inserted += int64(rowsInBatch)
		batches++
		progress.update(int64(rowsInBatch))
		batch = builder
		rowsInBatch = 0
		return nil
	}

	for row := part.Start; row < part.End; row++ {
		values := make([]any, len(spec.Rules))
		for i, cr := range spec.Rules {
			v := cr.Rule.Value(spec.Seed, row)
			if col := spec.Entity.Column(cr.Column); col != nil && col.Check != nil {
				if err := col.Check(v); err != nil {
					return inserted, batches, fmt.Errorf(
						"row %d column %s: %w: %v",
						row, cr.Column, db.ErrConstraintViolation, err)
				}
			}
			values[i] = v
		}
		batch = batch.Values(values...)
		rowsInBatch++

		if rowsInBatch >= g.cfg.BatchSize {
			if err := flush(); err != nil {
				return inserted, batches, err
			}
			// Stop issuing further batches promptly on cancellation.
			if err := ctx.Err(); err != nil {
				return inserted, batches, err
			}
		}
	}

	if err := flush(); err != nil {
		return inserted, batches, err
	}
	return inserted, batches, nil
}

func validateSpec(spec Spec) error {
	if spec.Entity == nil {
		return fmt.Errorf("spec has no entity")
	}
	if spec.RowCount < 0 {
		return fmt.Errorf("entity %s: negative row count %d", spec.Entity.Name, spec.RowCount)
	}
	if len(spec.Rules) == 0 && spec.RowCount > 0 {
		return fmt.Errorf("entity %s: no column rules", spec.Entity.Name)
	}
	for _, cr := range spec.Rules {
		if spec.Entity.Column(cr.Column) == nil {
			return fmt.Errorf("entity %s: rule targets undeclared column %q", spec.Entity.Name, cr.Column)
		}
		if cr.Rule == nil {
			return fmt.Errorf("entity %s: column %q has nil rule", spec.Entity.Name, cr.Column)
		}
	}
	return nil
}

// progressReporter logs generation progress. Updates may arrive from
// several partitions at once.
type progressReporter struct {
	entity   string
	total    int64
	interval int64
	current  atomic.Int64
}

func newProgress(entity string, total, interval int64) *progressReporter {
	return &progressReporter{entity: entity, total: total, interval: interval}
}

func (p *progressReporter) update(rows int64) {
	old := p.current.Add(rows) - rows
	now := old + rows
	if now/p.interval > old/p.interval {
		pct := float64(now) / float64(p.total) * 100
		logging.Info().
			Str("entity", p.entity).
			Int64("rows", now).
			Int64("total", p.total).
			Float64("percent", pct).
			Msg("Generating data")
	}
}

func (p *progressReporter) done() {
	logging.Info().
		Str("entity", p.entity).
		Int64("rows", p.current.Load()).
		Msg("Entity complete")
}
