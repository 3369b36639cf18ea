//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import (
	"errors"
	"testing"
)

func idColumn(name string) Column {
	return Column{Name: name, Type: "INTEGER"}
}

func TestDefineValidEntity(t *testing.T) {
	m := NewModel()

	e, err := m.Define("category",
		[]Column{idColumn("category_id"), {Name: "name", Type: "TEXT"}},
		[]string{"category_id"}, nil)
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if e.Name != "category" {
		t.Errorf("Expected name 'category', got %q", e.Name)
	}
	if m.Entity("category") != e {
		t.Error("Entity lookup did not return defined entity")
	}
}

func TestDefineDuplicateEntity(t *testing.T) {
	m := NewModel()

	if _, err := m.Define("a", []Column{idColumn("id")}, []string{"id"}, nil); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	_, err := m.Define("a", []Column{idColumn("id")}, []string{"id"}, nil)
	if err == nil {
		t.Fatal("Expected error for duplicate entity")
	}
	var schemaErr *Error
	if !errors.As(err, &schemaErr) {
		t.Errorf("Expected *Error, got %T", err)
	}
}

func TestDefineUndefinedForeignKeyEntity(t *testing.T) {
	m := NewModel()

	_, err := m.Define("product",
		[]Column{idColumn("product_id"), idColumn("category_id")},
		[]string{"product_id"},
		[]ForeignKey{{Column: "category_id", RefEntity: "category", RefColumn: "category_id", OnDelete: Restrict}})
	if err == nil {
		t.Fatal("Expected error for FK to undefined entity")
	}
}

func TestDefineUndefinedForeignKeyColumn(t *testing.T) {
	m := NewModel()

	if _, err := m.Define("category", []Column{idColumn("category_id")}, []string{"category_id"}, nil); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	_, err := m.Define("product",
		[]Column{idColumn("product_id"), idColumn("category_id")},
		[]string{"product_id"},
		[]ForeignKey{{Column: "category_id", RefEntity: "category", RefColumn: "nope", OnDelete: Restrict}})
	if err == nil {
		t.Fatal("Expected error for FK to undefined column")
	}
}

func TestDefineUndeclaredPrimaryKey(t *testing.T) {
	m := NewModel()

	_, err := m.Define("a", []Column{idColumn("id")}, []string{"missing"}, nil)
	if err == nil {
		t.Fatal("Expected error for undeclared primary key column")
	}
}

func TestDefineInvalidOnDelete(t *testing.T) {
	m := NewModel()

	if _, err := m.Define("parent", []Column{idColumn("id")}, []string{"id"}, nil); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	_, err := m.Define("child",
		[]Column{idColumn("id"), idColumn("parent_id")},
		[]string{"id"},
		[]ForeignKey{{Column: "parent_id", RefEntity: "parent", RefColumn: "id", OnDelete: "nullify"}})
	if err == nil {
		t.Fatal("Expected error for invalid on-delete policy")
	}
}

func TestSelfReferenceAllowed(t *testing.T) {
	m := NewModel()

	// A category tree references itself; this must not count as a cycle.
	_, err := m.Define("category",
		[]Column{idColumn("category_id"), idColumn("parent_id")},
		[]string{"category_id"},
		[]ForeignKey{{Column: "parent_id", RefEntity: "category", RefColumn: "category_id", OnDelete: Restrict}})
	if err != nil {
		t.Fatalf("Self-reference rejected: %v", err)
	}
}

// buildChain defines a -> b -> c (b references a, c references b).
func buildChain(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	if _, err := m.Define("a", []Column{idColumn("id")}, []string{"id"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Define("b",
		[]Column{idColumn("id"), idColumn("a_id")}, []string{"id"},
		[]ForeignKey{{Column: "a_id", RefEntity: "a", RefColumn: "id", OnDelete: Restrict}}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Define("c",
		[]Column{idColumn("id"), idColumn("b_id")}, []string{"id"},
		[]ForeignKey{{Column: "b_id", RefEntity: "b", RefColumn: "id", OnDelete: Cascade}}); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTopologicalOrderChain(t *testing.T) {
	m := buildChain(t)

	order := m.TopologicalOrder()
	if len(order) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(order))
	}
	names := []string{order[0].Name, order[1].Name, order[2].Name}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Expected order [a b c], got %v", names)
	}
}

func TestTopologicalOrderDeclarationTieBreak(t *testing.T) {
	m := NewModel()
	// Independent entities must keep declaration order.
	for _, name := range []string{"z", "m", "a"} {
		if _, err := m.Define(name, []Column{idColumn("id")}, []string{"id"}, nil); err != nil {
			t.Fatal(err)
		}
	}

	order := m.TopologicalOrder()
	got := []string{order[0].Name, order[1].Name, order[2].Name}
	want := []string{"z", "m", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected declaration order %v, got %v", want, got)
		}
	}
}

func TestWaves(t *testing.T) {
	m := NewModel()
	if _, err := m.Define("category", []Column{idColumn("category_id")}, []string{"category_id"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Define("customer", []Column{idColumn("customer_id")}, []string{"customer_id"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Define("product",
		[]Column{idColumn("product_id"), idColumn("category_id")}, []string{"product_id"},
		[]ForeignKey{{Column: "category_id", RefEntity: "category", RefColumn: "category_id", OnDelete: Restrict}}); err != nil {
		t.Fatal(err)
	}

	waves := m.Waves()
	if len(waves) != 2 {
		t.Fatalf("Expected 2 waves, got %d", len(waves))
	}
	if len(waves[0]) != 2 {
		t.Errorf("Expected 2 entities in wave 0, got %d", len(waves[0]))
	}
	if waves[0][0].Name != "category" || waves[0][1].Name != "customer" {
		t.Errorf("Wave 0 out of declaration order: %s, %s", waves[0][0].Name, waves[0][1].Name)
	}
	if len(waves[1]) != 1 || waves[1][0].Name != "product" {
		t.Errorf("Expected wave 1 = [product]")
	}
}

func TestDefineAllForwardReference(t *testing.T) {
	m := NewModel()

	// "orders" references "customer" before it appears in the slice.
	err := m.DefineAll([]EntityDef{
		{
			Name:       "orders",
			Columns:    []Column{idColumn("order_id"), idColumn("customer_id")},
			PrimaryKey: []string{"order_id"},
			ForeignKeys: []ForeignKey{
				{Column: "customer_id", RefEntity: "customer", RefColumn: "customer_id", OnDelete: Restrict},
			},
		},
		{
			Name:       "customer",
			Columns:    []Column{idColumn("customer_id")},
			PrimaryKey: []string{"customer_id"},
		},
	})
	if err != nil {
		t.Fatalf("DefineAll failed: %v", err)
	}

	order := m.TopologicalOrder()
	if order[0].Name != "customer" || order[1].Name != "orders" {
		t.Errorf("Expected customer before orders, got %q then %q", order[0].Name, order[1].Name)
	}
}

func TestDefineAllCycleRejected(t *testing.T) {
	m := NewModel()
	if _, err := m.Define("keeper",
		[]Column{idColumn("id")}, []string{"id"}, nil); err != nil {
		t.Fatal(err)
	}

	err := m.DefineAll([]EntityDef{
		{
			Name:       "a",
			Columns:    []Column{idColumn("id"), idColumn("b_id")},
			PrimaryKey: []string{"id"},
			ForeignKeys: []ForeignKey{
				{Column: "b_id", RefEntity: "b", RefColumn: "id", OnDelete: Restrict},
			},
		},
		{
			Name:       "b",
			Columns:    []Column{idColumn("id"), idColumn("a_id")},
			PrimaryKey: []string{"id"},
			ForeignKeys: []ForeignKey{
				{Column: "a_id", RefEntity: "a", RefColumn: "id", OnDelete: Restrict},
			},
		},
	})
	if err == nil {
		t.Fatal("Expected cycle error, got nil")
	}

	// A failed batch must not leave partial entities behind.
	if m.Entity("a") != nil || m.Entity("b") != nil {
		t.Error("Rejected batch left entities in the model")
	}
	if m.Entity("keeper") == nil {
		t.Error("Pre-existing entity lost after rejected batch")
	}
}

func TestDefineAllDuplicateWithinBatch(t *testing.T) {
	m := NewModel()
	err := m.DefineAll([]EntityDef{
		{Name: "x", Columns: []Column{idColumn("id")}, PrimaryKey: []string{"id"}},
		{Name: "x", Columns: []Column{idColumn("id")}, PrimaryKey: []string{"id"}},
	})
	if err == nil {
		t.Fatal("Expected duplicate error, got nil")
	}
}
