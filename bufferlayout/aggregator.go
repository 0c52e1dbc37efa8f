// Package bufferlayout computes the layout of fixed-location buffers in a
// linear address space from the buffer start offsets observed by a query.
//
// An Aggregator is fed offsets one at a time and, once finalized, returns a
// Layout mapping "@<offset>" to the distance to the next distinct offset.
// Offset 0 is always part of the layout, so the gap between the base of the
// address space and the first buffer is reported as "@0".
//
//	agg := bufferlayout.New()
//	for _, v := range []int64{16, 32, 96, 160} {
//		_ = agg.Update(v)
//	}
//	layout, _ := agg.Finalize()
//	// layout == Layout{"@0": 16, "@16": 16, "@32": 64, "@96": 64}
//
// An Aggregator is single-use and not safe for concurrent use. Hosts that
// partition input must aggregate each partition's values in one instance;
// there is no merge.
package bufferlayout

import (
	"fmt"
	"slices"
)

// Aggregator accumulates offsets between construction and Finalize.
type Aggregator struct {
	values    []int64 // anchor first, then values in arrival order
	finalized bool
}

// New returns an open Aggregator seeded with the anchor offset 0.
func New() *Aggregator {
	return &Aggregator{values: []int64{0}}
}

// Update appends v to the accumulator. Values are neither ordered nor
// deduplicated until Finalize.
func (a *Aggregator) Update(v int64) error {
	if a.finalized {
		return ErrFinalized
	}
	a.values = append(a.values, v)
	return nil
}

// UpdateNullable is Update for a nullable host value; a nil v is skipped.
func (a *Aggregator) UpdateNullable(v *int64) error {
	if a.finalized {
		return ErrFinalized
	}
	if v == nil {
		return nil
	}
	return a.Update(*v)
}

// Len returns the number of accumulated values, anchor included.
// It is 0 once the aggregator has been finalized.
func (a *Aggregator) Len() int {
	return len(a.values)
}

// Finalized reports whether Finalize has been called.
func (a *Aggregator) Finalized() bool {
	return a.finalized
}

// Finalize consumes the accumulator and returns the distance map.
//
// The accumulated offsets are sorted, deduplicated and paired: every offset
// but the largest maps to the gap to its successor. The aggregator moves to
// the finalized state even when an error is returned.
func (a *Aggregator) Finalize() (Layout, error) {
	if a.finalized {
		return nil, ErrFinalized
	}
	offsets := a.values
	a.values = nil
	a.finalized = true

	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	layout := make(Layout, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		cur, next := offsets[i], offsets[i+1]
		d := next - cur
		// next > cur after compaction, so a negative gap means wraparound.
		if d < 0 {
			return nil, fmt.Errorf("from %d to %d: %w", cur, next, ErrDistanceOverflow)
		}
		layout[Key(cur)] = d
	}
	return layout, nil
}
