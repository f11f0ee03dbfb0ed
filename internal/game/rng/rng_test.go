package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
)

func TestStream_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := range 1000 {
		require.Equal(t, a.IntN(Scale), b.IntN(Scale), "draw %d", i)
	}
	assert.Equal(t, uint64(1000), a.Draws())
	assert.Equal(t, uint64(42), a.Seed())
}

func TestStream_DifferentSeedsDiverge(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for range 100 {
		if a.IntN(Scale) == b.IntN(Scale) {
			same++
		}
	}
	assert.Less(t, same, 10)
}

func TestRoll(t *testing.T) {
	src := NewScripted(0, 4999, 5000, 9999)

	assert.True(t, Roll(src, model.Pct(50)))
	assert.True(t, Roll(src, model.Pct(50)))
	assert.False(t, Roll(src, model.Pct(50)))
	assert.False(t, Roll(src, model.Pct(99)))
	assert.Equal(t, 4, src.Used())
}

func TestRoll_Bounds(t *testing.T) {
	s := New(7)
	for range 500 {
		assert.False(t, Roll(s, 0), "0% never succeeds")
		assert.True(t, Roll(s, model.RateOne), "100% always succeeds")
	}
}

func TestScripted_PanicsWhenExhausted(t *testing.T) {
	src := NewScripted(1)
	src.IntN(Scale)
	assert.Equal(t, 0, src.Remaining())
	assert.Panics(t, func() { src.IntN(Scale) })
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
