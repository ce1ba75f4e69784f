package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/helixml/almanac/domain/almanac"
	"github.com/helixml/almanac/domain/remap"
	"github.com/helixml/almanac/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

func parseExample(t *testing.T) almanac.Almanac {
	t.Helper()
	a, err := almanac.Read(strings.NewReader(example))
	require.NoError(t, err)
	return a
}

func newTestSolver(opts ...SolverOption) *Solver {
	return NewSolver(append([]SolverOption{WithLogger(log.Discard())}, opts...)...)
}

type fakeRecorder struct {
	mu        sync.Mutex
	projected uint64
	solves    map[string]int
	failures  map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{solves: map[string]int{}, failures: map[string]int{}}
}

func (r *fakeRecorder) AddProjected(n uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projected += n
}

func (r *fakeRecorder) ObserveSolve(part string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failures[part]++
		return
	}
	r.solves[part]++
}

func TestSolver_Example(t *testing.T) {
	a := parseExample(t)
	rec := newFakeRecorder()
	s := newTestSolver(WithWorkers(2), WithChunkSize(3), WithRecorder(rec))

	result, err := s.Solve(context.Background(), a)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.Part1.Solved)
	assert.Equal(t, uint64(35), result.Part1.Value)
	assert.Equal(t, uint64(4), result.Part1.Projected)
	assert.True(t, result.Part2.Solved)
	assert.Equal(t, uint64(46), result.Part2.Value)
	assert.Equal(t, uint64(27), result.Part2.Projected)

	assert.Equal(t, uint64(31), rec.projected)
	assert.Equal(t, 1, rec.solves["1"])
	assert.Equal(t, 1, rec.solves["2"])
}

func TestSolver_SolveSinglePart(t *testing.T) {
	a := parseExample(t)

	result, err := newTestSolver().Solve(context.Background(), a, PartTwo)
	require.NoError(t, err)
	assert.False(t, result.Part1.Solved)
	assert.Equal(t, uint64(46), result.Answer(PartTwo).Value)
}

func TestSolver_SolveKeepsRunID(t *testing.T) {
	ctx := log.WithRunID(context.Background(), "run-1")

	result, err := newTestSolver().Solve(ctx, parseExample(t), PartOne)
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.RunID)
}

func TestSolver_UnknownPart(t *testing.T) {
	_, err := newTestSolver().Solve(context.Background(), parseExample(t), Part(3))
	assert.ErrorIs(t, err, ErrUnknownPart)
}

func TestSolver_LowestSeedNoValues(t *testing.T) {
	_, err := newTestSolver().LowestSeed(context.Background(), remap.NewChain(), nil)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestSolver_LowestInRangesNoValues(t *testing.T) {
	s := newTestSolver()

	_, err := s.LowestInRanges(context.Background(), remap.NewChain(), nil)
	assert.ErrorIs(t, err, ErrNoValues)

	_, err = s.LowestInRanges(context.Background(), remap.NewChain(), []almanac.SeedRange{{Start: 5, Length: 0}})
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestSolver_SkipsEmptyRanges(t *testing.T) {
	ranges := []almanac.SeedRange{{Start: 1, Length: 0}, {Start: 20, Length: 3}}

	low, err := newTestSolver().LowestInRanges(context.Background(), remap.NewChain(), ranges)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), low)
}

func TestSolver_OddSeedCount(t *testing.T) {
	a, err := almanac.Parse([]string{"seeds: 1 2 3"})
	require.NoError(t, err)

	_, err = newTestSolver().Solve(context.Background(), a, PartTwo)
	assert.ErrorIs(t, err, almanac.ErrOddSeedCount)

	result, err := newTestSolver().Solve(context.Background(), a, PartOne)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Part1.Value)
}

func TestSolver_ParallelMatchesSequential(t *testing.T) {
	chain, err := remap.NewChain().AddMap([]string{"500 0 100", "0 300 50", "900 100 200"})
	require.NoError(t, err)
	_, err = chain.AddMap([]string{"7 20 30", "1000 0 20"})
	require.NoError(t, err)

	ranges := []almanac.SeedRange{{Start: 0, Length: 120}, {Start: 250, Length: 90}, {Start: 310, Length: 1}}

	want := uint64(math.MaxUint64)
	for _, r := range ranges {
		for v := r.Start; v < r.End(); v++ {
			want = min(want, chain.Project(v))
		}
	}

	for _, workers := range []int{1, 2, 3, 8} {
		for _, chunk := range []uint64{1, 7, 64, 1 << 20} {
			s := newTestSolver(WithWorkers(workers), WithChunkSize(chunk))
			got, err := s.LowestInRanges(context.Background(), chain, ranges)
			require.NoError(t, err)
			assert.Equal(t, want, got, "workers=%d chunk=%d", workers, chunk)
		}
	}
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := newFakeRecorder()
	s := newTestSolver(WithRecorder(rec))

	_, err := s.LowestInRanges(ctx, remap.NewChain(), []almanac.SeedRange{{Start: 0, Length: 1 << 40}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.failures["2"])

	_, err = s.LowestSeed(ctx, remap.NewChain(), []uint64{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_Options(t *testing.T) {
	s := newTestSolver(WithWorkers(0), WithChunkSize(0))
	assert.Positive(t, s.Workers())
	assert.Equal(t, uint64(1<<20), s.ChunkSize())

	s = newTestSolver(WithWorkers(3), WithChunkSize(10))
	assert.Equal(t, 3, s.Workers())
	assert.Equal(t, uint64(10), s.ChunkSize())
}

func TestSolver_ProgressReports(t *testing.T) {
	chain := remap.NewChain()
	s := newTestSolver(WithReportInterval(time.Millisecond), WithChunkSize(1<<10))

	low, err := s.LowestInRanges(context.Background(), chain, []almanac.SeedRange{{Start: 9, Length: 1 << 18}})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), low)
}

func TestPart_String(t *testing.T) {
	assert.Equal(t, "1", PartOne.String())
	assert.Equal(t, "2", PartTwo.String())
	assert.Equal(t, "unknown(7)", Part(7).String())
	assert.True(t, PartTwo.Valid())
	assert.False(t, Part(0).Valid())
}
