package almanac

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
)

// Seed pair errors.
var (
	ErrOddSeedCount  = errors.New("almanac: seed ranges need an even number of seeds")
	ErrRangeOverflow = errors.New("almanac: seed range end overflows uint64")
)

// SeedRange is the half-open range [Start, Start+Length) described by a
// seed pair.
type SeedRange struct {
	Start  uint64
	Length uint64
}

// End returns the exclusive end of the range.
func (r SeedRange) End() uint64 { return r.Start + r.Length }

// Empty reports whether the range holds no values.
func (r SeedRange) Empty() bool { return r.Length == 0 }

// Chunks yields consecutive pieces of the range holding at most size
// values each. A size of zero yields the whole range as one piece.
func (r SeedRange) Chunks(size uint64) iter.Seq[SeedRange] {
	return func(yield func(SeedRange) bool) {
		if size == 0 {
			size = r.Length
		}
		for start, left := r.Start, r.Length; left > 0; {
			n := min(size, left)
			if !yield(SeedRange{Start: start, Length: n}) {
				return
			}
			start += n
			left -= n
		}
	}
}

// Split collects Chunks into a slice.
func (r SeedRange) Split(size uint64) []SeedRange {
	return slices.Collect(r.Chunks(size))
}

// SeedRanges interprets seeds as consecutive (start, length) pairs.
func SeedRanges(seeds []uint64) ([]SeedRange, error) {
	if len(seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddSeedCount, len(seeds))
	}
	ranges := make([]SeedRange, 0, len(seeds)/2)
	for i := 0; i < len(seeds); i += 2 {
		r := SeedRange{Start: seeds[i], Length: seeds[i+1]}
		if r.Length > math.MaxUint64-r.Start {
			return nil, fmt.Errorf("%w: start %d length %d", ErrRangeOverflow, r.Start, r.Length)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
