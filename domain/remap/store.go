package remap

import (
	"cmp"
	"slices"
)

// Builder accumulates the intervals of one stage in input order. It is
// consumed by Finalize; using it afterwards panics.
type Builder struct {
	intervals []Interval
	finalized bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddInterval appends an interval. Ordering and overlap are not checked.
func (b *Builder) AddInterval(sourceStart, sourceEnd, destinationStart uint64) {
	if b.finalized {
		panic("remap: AddInterval on finalized builder")
	}
	b.intervals = append(b.intervals, Interval{
		SourceStart:      sourceStart,
		SourceEnd:        sourceEnd,
		DestinationStart: destinationStart,
	})
}

// Len returns the number of intervals added so far.
func (b *Builder) Len() int { return len(b.intervals) }

// Finalize sorts the accumulated intervals by source start and returns the
// read-only Store. The builder cannot be used afterwards.
func (b *Builder) Finalize() Store {
	if b.finalized {
		panic("remap: Finalize called twice")
	}
	b.finalized = true

	intervals := b.intervals
	b.intervals = nil
	slices.SortFunc(intervals, func(x, y Interval) int {
		return cmp.Compare(x.SourceStart, y.SourceStart)
	})
	return Store{intervals: intervals}
}

// Store is a finalized, sorted set of disjoint intervals for one stage.
// A Store is immutable and safe for concurrent use.
type Store struct {
	intervals []Interval
}

// FindInterval returns the interval whose source range contains v. The
// search relies on the intervals being disjoint.
func (s Store) FindInterval(v uint64) (Interval, bool) {
	idx, found := slices.BinarySearchFunc(s.intervals, v, Interval.compare)
	if !found {
		return Interval{}, false
	}
	return s.intervals[idx], true
}

// Len returns the number of intervals in the store.
func (s Store) Len() int { return len(s.intervals) }

// Intervals returns a copy of the sorted intervals.
func (s Store) Intervals() []Interval {
	return slices.Clone(s.intervals)
}
