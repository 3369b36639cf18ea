package datagen

// Partition is a half-open row-index range [Start, End) owned by one
// generation worker.
type Partition struct {
	Start int64
	End   int64
}

// Rows returns the number of rows in the partition.
func (p Partition) Rows() int64 {
	return p.End - p.Start
}

// Partitions splits rowCount rows into at most workers disjoint,
// contiguous ranges. Boundaries are computed up front so workers never
// coordinate at write time and never produce overlapping primary keys.
func Partitions(rowCount int64, workers int) []Partition {
	if rowCount <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if int64(workers) > rowCount {
		workers = int(rowCount)
	}

	parts := make([]Partition, 0, workers)
	base := rowCount / int64(workers)
	extra := rowCount % int64(workers)

	var start int64
	for i := 0; i < workers; i++ {
		size := base
		if int64(i) < extra {
			size++
		}
		parts = append(parts, Partition{Start: start, End: start + size})
		start += size
	}
	return parts
}
