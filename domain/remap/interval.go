// Package remap provides the range-remapping engine: per-stage interval
// stores and the chain that projects values through them.
package remap

import "fmt"

// Interval maps the inclusive source range [SourceStart, SourceEnd] onto a
// destination range of the same length starting at DestinationStart.
type Interval struct {
	SourceStart      uint64
	SourceEnd        uint64
	DestinationStart uint64
}

// NewInterval creates an Interval from a source start, a length and a
// destination start. The length must be at least one.
func NewInterval(destinationStart, sourceStart, length uint64) Interval {
	return Interval{
		SourceStart:      sourceStart,
		SourceEnd:        sourceStart + length - 1,
		DestinationStart: destinationStart,
	}
}

// Len returns the number of values covered by the interval.
func (i Interval) Len() uint64 { return i.SourceEnd - i.SourceStart + 1 }

// Contains reports whether v falls inside the source range.
func (i Interval) Contains(v uint64) bool {
	return i.SourceStart <= v && v <= i.SourceEnd
}

// Map translates v, which must be inside the source range, to the
// destination range keeping its offset.
func (i Interval) Map(v uint64) uint64 {
	return i.DestinationStart + (v - i.SourceStart)
}

// compare orders the interval against a point: negative when the interval
// lies entirely below v, positive when it lies entirely above, zero on a hit.
func (i Interval) compare(v uint64) int {
	switch {
	case i.SourceEnd < v:
		return -1
	case i.SourceStart > v:
		return 1
	default:
		return 0
	}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d..%d]->%d", i.SourceStart, i.SourceEnd, i.DestinationStart)
}
