package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FinalizeSortsBySourceStart(t *testing.T) {
	b := NewBuilder()
	b.AddInterval(40, 43, 12)
	b.AddInterval(5, 7, 1)
	b.AddInterval(10, 11, 7)
	assert.Equal(t, 3, b.Len())

	store := b.Finalize()

	require.Equal(t, 3, store.Len())
	got := store.Intervals()
	assert.Equal(t, uint64(5), got[0].SourceStart)
	assert.Equal(t, uint64(10), got[1].SourceStart)
	assert.Equal(t, uint64(40), got[2].SourceStart)
}

func TestBuilder_UnusableAfterFinalize(t *testing.T) {
	b := NewBuilder()
	b.AddInterval(0, 1, 2)
	_ = b.Finalize()

	assert.Panics(t, func() { b.AddInterval(3, 4, 5) })
	assert.Panics(t, func() { _ = b.Finalize() })
}

func TestStore_IntervalsReturnsCopy(t *testing.T) {
	b := NewBuilder()
	b.AddInterval(5, 7, 1)
	store := b.Finalize()

	got := store.Intervals()
	got[0].DestinationStart = 99

	iv, ok := store.FindInterval(5)
	require.True(t, ok)
	assert.Equal(t, uint64(1), iv.DestinationStart)
}

func TestStore_FindInterval(t *testing.T) {
	b := NewBuilder()
	b.AddInterval(40, 43, 12)
	b.AddInterval(5, 7, 1)
	b.AddInterval(10, 11, 7)
	store := b.Finalize()

	tests := []struct {
		name  string
		value uint64
		found bool
		start uint64
	}{
		{name: "below all", value: 0, found: false},
		{name: "first start", value: 5, found: true, start: 5},
		{name: "first end", value: 7, found: true, start: 5},
		{name: "gap", value: 8, found: false},
		{name: "middle", value: 11, found: true, start: 10},
		{name: "last end", value: 43, found: true, start: 40},
		{name: "above all", value: 44, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, ok := store.FindInterval(tt.value)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.start, iv.SourceStart)
				assert.True(t, iv.Contains(tt.value))
			}
		})
	}
}

func TestStore_FindIntervalEmpty(t *testing.T) {
	store := NewBuilder().Finalize()

	_, ok := store.FindInterval(42)
	assert.False(t, ok)
}

func TestStore_SingleMatch(t *testing.T) {
	b := NewBuilder()
	b.AddInterval(0, 9, 100)
	b.AddInterval(10, 19, 200)
	b.AddInterval(25, 30, 300)
	store := b.Finalize()

	for v := uint64(0); v <= 35; v++ {
		matches := 0
		for _, iv := range store.Intervals() {
			if iv.Contains(v) {
				matches++
			}
		}
		assert.LessOrEqual(t, matches, 1, "value %d", v)

		_, ok := store.FindInterval(v)
		assert.Equal(t, matches == 1, ok, "value %d", v)
	}
}

func TestInterval_Map(t *testing.T) {
	iv := NewInterval(52, 50, 48)

	assert.Equal(t, uint64(50), iv.SourceStart)
	assert.Equal(t, uint64(97), iv.SourceEnd)
	assert.Equal(t, uint64(48), iv.Len())
	assert.Equal(t, uint64(52), iv.Map(50))
	assert.Equal(t, uint64(99), iv.Map(97))
	assert.Equal(t, "[50..97]->52", iv.String())
}
