//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "testing"

func TestPartitionsCoverAllRows(t *testing.T) {
	parts := Partitions(100000, 8)
	if len(parts) != 8 {
		t.Fatalf("Expected 8 partitions, got %d", len(parts))
	}

	var total int64
	prev := int64(0)
	for i, p := range parts {
		if p.Start != prev {
			t.Errorf("Partition %d starts at %d, expected %d", i, p.Start, prev)
		}
		if p.End <= p.Start {
			t.Errorf("Partition %d is empty or inverted: [%d, %d)", i, p.Start, p.End)
		}
		total += p.Rows()
		prev = p.End
	}
	if total != 100000 {
		t.Errorf("Partitions cover %d rows, expected 100000", total)
	}
	if prev != 100000 {
		t.Errorf("Last partition ends at %d, expected 100000", prev)
	}
}

func TestPartitionsUnevenSplit(t *testing.T) {
	parts := Partitions(10, 3)
	want := []Partition{{0, 4}, {4, 7}, {7, 10}}
	if len(parts) != len(want) {
		t.Fatalf("Expected %d partitions, got %d", len(want), len(parts))
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("Partition %d: expected %+v, got %+v", i, want[i], parts[i])
		}
	}
}

func TestPartitionsMoreWorkersThanRows(t *testing.T) {
	parts := Partitions(3, 16)
	if len(parts) != 3 {
		t.Fatalf("Expected 3 partitions, got %d", len(parts))
	}
	for i, p := range parts {
		if p.Rows() != 1 {
			t.Errorf("Partition %d has %d rows, expected 1", i, p.Rows())
		}
	}
}

func TestPartitionsZeroRows(t *testing.T) {
	if parts := Partitions(0, 4); parts != nil {
		t.Errorf("Expected nil for zero rows, got %v", parts)
	}
}

func TestPartitionsZeroWorkers(t *testing.T) {
	parts := Partitions(50, 0)
	if len(parts) != 1 {
		t.Fatalf("Expected 1 partition, got %d", len(parts))
	}
	if parts[0] != (Partition{0, 50}) {
		t.Errorf("Expected [0, 50), got %+v", parts[0])
	}
}
