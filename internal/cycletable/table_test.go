package cycletable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/core"
)

// colliding returns n distinct boards sharing a bucket in a table with the
// given hash width.
func colliding(n int, bits uint) []core.Board {
	out := []core.Board{1}
	want := core.Board(1).Hash(bits)
	for b := core.Board(2); len(out) < n; b++ {
		if b.Hash(bits) == want {
			out = append(out, b)
		}
	}
	return out
}

func TestNewRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, -4, 3, 600} {
		_, err := New(n, 0)
		assert.Error(t, err, "table length %d", n)
	}
	_, err := New(8, -1)
	assert.Error(t, err)

	tb, err := New(512, 256)
	require.NoError(t, err)
	assert.Equal(t, 512, tb.Len())
	assert.Equal(t, 256, tb.ArenaLen())
	assert.Equal(t, uint(9), tb.HashBits())
}

func TestInsertLookup(t *testing.T) {
	tb, err := New(64, 64)
	require.NoError(t, err)
	boards := []core.Board{0, 1, core.Full, 0x0000001c00000000, 0xdeadbeef}
	for i, b := range boards {
		_, ok := tb.Lookup(b)
		require.False(t, ok)
		require.NoError(t, tb.Insert(b, uint32(i)))
	}
	for i, b := range boards {
		step, ok := tb.Lookup(b)
		require.True(t, ok, b.Hex())
		assert.Equal(t, uint32(i), step)
	}

	tb.Clear()
	for _, b := range boards {
		_, ok := tb.Lookup(b)
		assert.False(t, ok)
	}
	assert.Zero(t, tb.ArenaUsed())
}

func TestCollisionWithoutArena(t *testing.T) {
	tb, err := New(2, 0)
	require.NoError(t, err)
	pair := colliding(2, tb.HashBits())

	require.NoError(t, tb.Insert(pair[0], 0))
	assert.ErrorIs(t, tb.Insert(pair[1], 1), ErrArenaExhausted)

	step, ok := tb.Lookup(pair[0])
	assert.True(t, ok)
	assert.Zero(t, step)
	_, ok = tb.Lookup(pair[1])
	assert.False(t, ok)
}

func TestCollisionChain(t *testing.T) {
	tb, err := New(4, 2)
	require.NoError(t, err)
	chain := colliding(4, tb.HashBits())

	for i, b := range chain[:3] {
		require.NoError(t, tb.Insert(b, uint32(10+i)))
	}
	assert.Equal(t, 2, tb.ArenaUsed())
	assert.ErrorIs(t, tb.Insert(chain[3], 13), ErrArenaExhausted)

	for i, b := range chain[:3] {
		step, ok := tb.Lookup(b)
		require.True(t, ok)
		assert.Equal(t, uint32(10+i), step)
	}
	_, ok := tb.Lookup(chain[3])
	assert.False(t, ok)

	// clearing frees the arena for the next trajectory
	tb.Clear()
	for i, b := range chain[:3] {
		require.NoError(t, tb.Insert(b, uint32(i)))
	}
}

func TestSingleBucket(t *testing.T) {
	tb, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, tb.Insert(5, 0))
	require.NoError(t, tb.Insert(6, 1))
	assert.ErrorIs(t, tb.Insert(7, 2), ErrArenaExhausted)
}
