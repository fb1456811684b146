package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/arena"
	"bwlife/internal/core"
)

func neighbors(n int) []core.Board {
	out := make([]core.Board, n)
	for i := range out {
		out[i] = core.Board(1) << uint(i+1)
	}
	return out
}

func TestGenerateCounts(t *testing.T) {
	nb := neighbors(8)
	for k := 0; k <= 8; k++ {
		s := arena.New(256)
		require.NoError(t, Generate(s, 1, nb, k))
		require.Equal(t, Binomial(8, k), s.Len(), "k=%d", k)
		seen := map[core.Board]bool{}
		for _, b := range s.Boards() {
			assert.Equal(t, k+1, b.Population())
			assert.NotZero(t, b&1, "center kept")
			assert.False(t, seen[b], "duplicate %s", b.Hex())
			seen[b] = true
		}
	}
}

func TestGenerateOrder(t *testing.T) {
	nb := neighbors(4)
	s := arena.New(16)
	require.NoError(t, Generate(s, 0, nb, 2))
	want := []core.Board{
		nb[0] | nb[1], nb[0] | nb[2], nb[0] | nb[3],
		nb[1] | nb[2], nb[1] | nb[3], nb[2] | nb[3],
	}
	assert.Equal(t, want, s.Boards())
}

func TestGenerateEdges(t *testing.T) {
	s := arena.New(4)
	require.NoError(t, Generate(s, 0x80, neighbors(3), 0))
	assert.Equal(t, []core.Board{0x80}, s.Boards())

	s.Reset()
	require.NoError(t, Generate(s, 0, neighbors(3), 4))
	assert.Zero(t, s.Len())

	err := Generate(s, 0, neighbors(9), 1)
	assert.ErrorIs(t, err, ErrTooManyNeighbors)
}

func TestGenerateScratchBoundary(t *testing.T) {
	s := arena.New(70)
	require.NoError(t, Generate(s, 0, neighbors(8), 4))
	assert.Equal(t, 70, s.Len())

	s = arena.New(69)
	assert.ErrorIs(t, Generate(s, 0, neighbors(8), 4), arena.ErrScratchExhausted)
	assert.Equal(t, 69, s.Len())
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, 1, Binomial(8, 0))
	assert.Equal(t, 70, Binomial(8, 4))
	assert.Equal(t, 56, Binomial(8, 3))
	assert.Equal(t, 6, Binomial(4, 2))
	assert.Zero(t, Binomial(3, 4))
	assert.Zero(t, Binomial(3, -1))
}
