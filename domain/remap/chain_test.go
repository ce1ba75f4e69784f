package remap

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_ProjectSingleStage(t *testing.T) {
	chain, err := NewChain().AddMap([]string{"12 40 4", "1 5 3", "7 10 2"})
	require.NoError(t, err)
	require.Equal(t, 1, chain.Len())

	assert.Equal(t, uint64(100), chain.Project(100))
	assert.Equal(t, uint64(1), chain.Project(5))
	assert.Equal(t, uint64(8), chain.Project(11))
	assert.Equal(t, uint64(0), chain.Project(0))
}

func TestChain_ProjectBoundaries(t *testing.T) {
	chain, err := NewChain().AddMap([]string{"100 20 5"})
	require.NoError(t, err)

	assert.Equal(t, uint64(100), chain.Project(20))
	assert.Equal(t, uint64(104), chain.Project(24))
	assert.Equal(t, uint64(19), chain.Project(19))
	assert.Equal(t, uint64(25), chain.Project(25))
}

func TestChain_EmptyIsIdentity(t *testing.T) {
	chain := NewChain()

	for _, v := range []uint64{0, 1, 42, 1 << 40, ^uint64(0)} {
		assert.Equal(t, v, chain.Project(v))
	}
}

func TestChain_IdentityOutsideIntervals(t *testing.T) {
	chain, err := NewChain().AddMap([]string{"50 98 2", "52 50 48"})
	require.NoError(t, err)

	for v := uint64(0); v < 50; v++ {
		assert.Equal(t, v, chain.Project(v))
	}
	assert.Equal(t, uint64(100), chain.Project(100))
}

func TestChain_ComposesLeftToRight(t *testing.T) {
	a := []string{"50 98 2", "52 50 48"}
	b := []string{"0 15 37", "37 52 2", "39 0 15"}
	c := []string{"49 53 8", "0 11 42", "42 0 7", "57 7 4"}

	full := NewChain()
	for _, specs := range [][]string{a, b, c} {
		require.NoError(t, full.AddStage(specs))
	}

	var singles []*Chain
	for _, specs := range [][]string{a, b, c} {
		ch := NewChain()
		require.NoError(t, ch.AddStage(specs))
		singles = append(singles, ch)
	}

	for v := uint64(0); v < 120; v++ {
		want := v
		for _, ch := range singles {
			want = ch.Project(want)
		}
		assert.Equal(t, want, full.Project(v), "value %d", v)
	}
}

func TestChain_Stage(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.AddStage([]string{"1 2 3"}))
	require.NoError(t, chain.AddStage(nil))

	assert.Equal(t, 1, chain.Stage(0).Len())
	assert.Equal(t, 0, chain.Stage(1).Len())
}

func TestChain_AddStageErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		cause error
	}{
		{name: "too few fields", specs: []string{"1 2"}, cause: ErrFieldCount},
		{name: "too many fields", specs: []string{"1 2 3 4"}, cause: ErrFieldCount},
		{name: "not a number", specs: []string{"1 two 3"}, cause: strconv.ErrSyntax},
		{name: "negative", specs: []string{"1 -2 3"}, cause: strconv.ErrSyntax},
		{name: "zero length", specs: []string{"1 2 0"}, cause: ErrZeroLength},
		{name: "overflow", specs: []string{"0 18446744073709551615 2"}, cause: ErrOverflow},
		{name: "bad second line", specs: []string{"1 2 3", "x y z"}, cause: strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain()
			_, err := chain.AddMap(tt.specs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.ErrorIs(t, err, tt.cause)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.NotEmpty(t, perr.Input)
			assert.Equal(t, 0, chain.Len())
		})
	}
}

func TestParseInterval_MaxLength(t *testing.T) {
	iv, err := ParseInterval("0 0 18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0)-1, iv.SourceEnd)
}

func TestParseSeeds(t *testing.T) {
	seeds, err := ParseSeeds("seeds: 1 2 6 15 100")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 6, 15, 100}, seeds)

	seeds, err = ParseSeeds("79 14")
	require.NoError(t, err)
	assert.Equal(t, []uint64{79, 14}, seeds)

	seeds, err = ParseSeeds("seeds:")
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestParseSeeds_Invalid(t *testing.T) {
	_, err := ParseSeeds("seeds: 1 x 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "seeds: 1 x 3")
}

func TestChain_Trace(t *testing.T) {
	chain, err := NewChain().AddMap([]string{"50 98 2", "52 50 48"})
	require.NoError(t, err)
	_, err = chain.AddMap([]string{"0 15 37", "37 52 2", "39 0 15"})
	require.NoError(t, err)

	steps := chain.Trace(79)
	require.Len(t, steps, 2)

	assert.True(t, steps[0].Matched)
	assert.Equal(t, uint64(79), steps[0].Input)
	assert.Equal(t, uint64(81), steps[0].Output)
	assert.Equal(t, NewInterval(52, 50, 48), steps[0].Interval)

	assert.False(t, steps[1].Matched)
	assert.Equal(t, uint64(81), steps[1].Output)
	assert.Equal(t, chain.Project(79), steps[1].Output)
}
