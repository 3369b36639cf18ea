//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema models entities, columns, and foreign-key relationships
// for the benchmarking harness. The foreign-key graph must stay acyclic
// so that a single topological order covers data generation.
package schema

import (
	"fmt"
	"sort"

	"github.com/yourbasic/graph"
)

// OnDelete is a foreign-key delete policy.
type OnDelete string

// Delete policies.
const (
	Restrict OnDelete = "restrict"
	Cascade  OnDelete = "cascade"
)

// Error reports an invalid schema definition. Schema errors are caught
// at definition time, never during generation or benchmarking.
type Error struct {
	Entity string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema error in %q: %s", e.Entity, e.Reason)
}

// Column is a typed column in an entity.
type Column struct {
	Name string
	Type string

	// Check validates a generated value, nil when unconstrained.
	// A failing check during generation signals a bad distribution
	// rule and aborts the entity's generation.
	Check func(v any) error
}

// ForeignKey references another entity's column.
type ForeignKey struct {
	Column    string
	RefEntity string
	RefColumn string
	OnDelete  OnDelete
}

// Entity is a named, ordered set of typed columns with a primary key and
// outbound foreign keys. Entities are immutable once defined.
type Entity struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// Column returns the named column, or nil.
func (e *Entity) Column(name string) *Column {
	for i := range e.Columns {
		if e.Columns[i].Name == name {
			return &e.Columns[i]
		}
	}
	return nil
}

// Model collects entity definitions in declaration order.
type Model struct {
	entities []*Entity
	byName   map[string]*Entity
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]*Entity)}
}

// Define adds an entity to the model. It fails with *Error if the name
// is taken, a key column is undeclared, a foreign key targets an
// undefined entity or column, or the foreign key would introduce a
// cycle. Referenced entities must already be defined, which keeps
// declaration order a valid generation order candidate.
func (m *Model) Define(name string, columns []Column, primaryKey []string, foreignKeys []ForeignKey) (*Entity, error) {
	if name == "" {
		return nil, &Error{Entity: name, Reason: "entity name is empty"}
	}
	if _, exists := m.byName[name]; exists {
		return nil, &Error{Entity: name, Reason: "entity already defined"}
	}
	e := &Entity{
		Name:        name,
		Columns:     columns,
		PrimaryKey:  primaryKey,
		ForeignKeys: foreignKeys,
	}

	lookup := func(ref string) *Entity { return m.byName[ref] }
	if err := validateEntity(e, lookup); err != nil {
		return nil, err
	}

	m.entities = append(m.entities, e)
	m.byName[name] = e

	if !graph.Acyclic(m.dependencyGraph()) {
		m.entities = m.entities[:len(m.entities)-1]
		delete(m.byName, name)
		return nil, &Error{Entity: name, Reason: "foreign key introduces a dependency cycle"}
	}

	return e, nil
}

// EntityDef is one entity in a batch definition.
type EntityDef struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// DefineAll registers a group of entities whose foreign keys may
// reference each other regardless of slice order. All names are
// registered first, then every definition is validated, then the
// combined graph is checked for cycles; any failure leaves the model
// unchanged. Incremental Define can never form a multi-entity cycle
// because targets must predate dependents; DefineAll is where the cycle
// check earns its keep.
func (m *Model) DefineAll(defs []EntityDef) error {
	entities := make([]*Entity, len(defs))
	byName := make(map[string]*Entity, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			return &Error{Entity: d.Name, Reason: "entity name is empty"}
		}
		if _, exists := m.byName[d.Name]; exists {
			return &Error{Entity: d.Name, Reason: "entity already defined"}
		}
		if _, dup := byName[d.Name]; dup {
			return &Error{Entity: d.Name, Reason: "entity already defined"}
		}
		e := &Entity{
			Name:        d.Name,
			Columns:     d.Columns,
			PrimaryKey:  d.PrimaryKey,
			ForeignKeys: d.ForeignKeys,
		}
		entities[i] = e
		byName[d.Name] = e
	}

	lookup := func(name string) *Entity {
		if e, ok := m.byName[name]; ok {
			return e
		}
		return byName[name]
	}

	for _, e := range entities {
		if err := validateEntity(e, lookup); err != nil {
			return err
		}
	}

	savedEntities, savedByName := m.entities, m.byName
	m.entities = append(append([]*Entity(nil), m.entities...), entities...)
	m.byName = make(map[string]*Entity, len(m.entities))
	for _, e := range m.entities {
		m.byName[e.Name] = e
	}

	if !graph.Acyclic(m.dependencyGraph()) {
		m.entities, m.byName = savedEntities, savedByName
		return &Error{Entity: defs[0].Name, Reason: "foreign keys introduce a dependency cycle"}
	}
	return nil
}

// validateEntity checks columns, primary key, and foreign keys. lookup
// resolves referenced entities, including the entity itself.
func validateEntity(e *Entity, lookup func(string) *Entity) error {
	if len(e.Columns) == 0 {
		return &Error{Entity: e.Name, Reason: "entity has no columns"}
	}
	seen := make(map[string]bool, len(e.Columns))
	for _, c := range e.Columns {
		if c.Name == "" {
			return &Error{Entity: e.Name, Reason: "column name is empty"}
		}
		if seen[c.Name] {
			return &Error{Entity: e.Name, Reason: fmt.Sprintf("duplicate column %q", c.Name)}
		}
		seen[c.Name] = true
	}

	if len(e.PrimaryKey) == 0 {
		return &Error{Entity: e.Name, Reason: "primary key is empty"}
	}
	for _, pk := range e.PrimaryKey {
		if e.Column(pk) == nil {
			return &Error{Entity: e.Name, Reason: fmt.Sprintf("primary key column %q not declared", pk)}
		}
	}

	for _, fk := range e.ForeignKeys {
		if e.Column(fk.Column) == nil {
			return &Error{Entity: e.Name, Reason: fmt.Sprintf("foreign key column %q not declared", fk.Column)}
		}
		target := lookup(fk.RefEntity)
		if target == nil {
			if fk.RefEntity != e.Name {
				return &Error{Entity: e.Name, Reason: fmt.Sprintf("foreign key references undefined entity %q", fk.RefEntity)}
			}
			target = e
		}
		if target.Column(fk.RefColumn) == nil {
			return &Error{Entity: e.Name, Reason: fmt.Sprintf("foreign key references undefined column %s.%s", fk.RefEntity, fk.RefColumn)}
		}
		switch fk.OnDelete {
		case Restrict, Cascade:
		default:
			return &Error{Entity: e.Name, Reason: fmt.Sprintf("foreign key on %q has invalid on-delete policy %q", fk.Column, fk.OnDelete)}
		}
	}
	return nil
}

// Entity returns the named entity, or nil.
func (m *Model) Entity(name string) *Entity {
	return m.byName[name]
}

// Entities returns all entities in declaration order.
func (m *Model) Entities() []*Entity {
	return m.entities
}

// dependencyGraph builds the parent -> child edge graph over entity
// declaration indexes. Self-references are skipped: they do not affect
// generation order.
func (m *Model) dependencyGraph() *graph.Mutable {
	g := graph.New(len(m.entities))
	index := make(map[string]int, len(m.entities))
	for i, e := range m.entities {
		index[e.Name] = i
	}
	for i, e := range m.entities {
		for _, fk := range e.ForeignKeys {
			if fk.RefEntity == e.Name {
				continue
			}
			g.Add(index[fk.RefEntity], i)
		}
	}
	return g
}

// TopologicalOrder returns the entities in the only correct generation
// sequence: every entity appears after all entities it references. Ties
// break deterministically by declaration order.
func (m *Model) TopologicalOrder() []*Entity {
	order := make([]*Entity, 0, len(m.entities))
	for _, wave := range m.Waves() {
		order = append(order, wave...)
	}
	return order
}

// Waves returns the entities grouped into dependency layers: every
// entity in wave i depends only on entities in waves < i. Entities in
// the same wave may be generated concurrently. Within a wave, entities
// keep declaration order.
func (m *Model) Waves() [][]*Entity {
	n := len(m.entities)
	index := make(map[string]int, n)
	for i, e := range m.entities {
		index[e.Name] = i
	}

	indegree := make([]int, n)
	children := make([][]int, n)
	for i, e := range m.entities {
		for _, fk := range e.ForeignKeys {
			if fk.RefEntity == e.Name {
				continue
			}
			p := index[fk.RefEntity]
			children[p] = append(children[p], i)
			indegree[i]++
		}
	}

	var waves [][]*Entity
	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	for len(ready) > 0 {
		wave := make([]*Entity, 0, len(ready))
		next := make([]int, 0)
		for _, i := range ready {
			wave = append(wave, m.entities[i])
			for _, c := range children[i] {
				indegree[c]--
				if indegree[c] == 0 {
					next = append(next, c)
				}
			}
		}
		waves = append(waves, wave)
		sort.Ints(next)
		ready = next
	}

	return waves
}
