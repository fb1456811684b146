package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/core"
)

func TestScratchCapacity(t *testing.T) {
	s := New(3)
	require.Equal(t, 3, s.Cap())
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(core.Board(i)))
	}
	assert.ErrorIs(t, s.Append(99), ErrScratchExhausted)
	assert.Equal(t, []core.Board{0, 1, 2}, s.Boards())
	assert.Equal(t, 3, s.Cap(), "capacity never grows")

	s.Truncate(1)
	assert.Equal(t, 1, s.Len())
	s.Truncate(5)
	assert.Equal(t, 1, s.Len())
	s.Reset()
	assert.Zero(t, s.Len())
	require.NoError(t, s.Append(7))
}

func TestScratchZeroCapacity(t *testing.T) {
	s := New(-1)
	assert.Zero(t, s.Cap())
	assert.ErrorIs(t, s.Append(0), ErrScratchExhausted)
}

func TestCapacityFor(t *testing.T) {
	assert.Equal(t, 1536, CapacityFor(512, 256))
	assert.Equal(t, 2, CapacityFor(1, 0))
}
