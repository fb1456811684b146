package predecessor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/core"
)

func TestOrientationRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 0))
	for i := 0; i < 500; i++ {
		b := core.Board(r.Uint64())
		o := randomOrientation(r)
		require.Equal(t, b, o.Invert(o.Apply(b)), "%+v", o)
	}
	assert.True(t, Orientation{}.IsIdentity())
	assert.False(t, Orientation{X: 1}.IsIdentity())
	assert.False(t, Orientation{Transform: core.Rot90}.IsIdentity())
}

func TestOrientCanonical(t *testing.T) {
	r := rand.New(rand.NewPCG(12, 0))
	for i := 0; i < 20; i++ {
		b := core.Board(r.Uint64())
		img := randomOrientation(r).Apply(b)
		for _, maximize := range []bool{true, false} {
			want := orient(b, maximize).Apply(b)
			got := orient(img, maximize).Apply(img)
			require.Equal(t, want, got, "every symmetric image has the same canonical form")
		}
	}
}

func TestOrientExtremes(t *testing.T) {
	// a single cell is pushed to the most significant key position when
	// maximizing: row 0, column 0
	o := orient(core.Bit(5, 2), true)
	assert.Equal(t, core.Bit(0, 0), o.Apply(core.Bit(5, 2)))

	// and away from rows 0 and 1 when minimizing
	o = orient(core.Bit(0, 0), false)
	img := o.Apply(core.Bit(0, 0))
	assert.Zero(t, img&0xffff)
}

func TestSearcherOrientation(t *testing.T) {
	s, _ := newSearcher(core.Life, core.VonNeumann, 0, Options{Canonicalize: true})
	o := s.Orientation(vonNeumannCases[0].target)
	assert.Equal(t, Orientation{Transform: core.XFlip, X: 1, Y: 1}, o)

	s, _ = newSearcher(core.Life, core.VonNeumann, 0, Options{})
	assert.True(t, s.Orientation(vonNeumannCases[0].target).IsIdentity())

	// no bias: identity-like rules are never reoriented
	s, _ = newSearcher(core.Rules["identity"], core.Moore, 0, Options{Canonicalize: true})
	assert.True(t, s.Orientation(0x1234).IsIdentity())
}

func TestOrderKeyIsPermutation(t *testing.T) {
	seen := map[uint64]bool{}
	for bit := 0; bit < core.Cells; bit++ {
		k := orderKey(core.Board(1) << uint(bit))
		require.Equal(t, 1, popcount(k), "bit %d", bit)
		require.False(t, seen[k])
		seen[k] = true
	}
	// rows 0 and 1 interleave at the top, column 0 first
	assert.Equal(t, uint64(1)<<63, orderKey(core.Bit(0, 0)))
	assert.Equal(t, uint64(1)<<62, orderKey(core.Bit(1, 0)))
	assert.Equal(t, uint64(1)<<61, orderKey(core.Bit(0, 1)))
	assert.Equal(t, uint64(1), orderKey(core.Bit(7, 7)))
}

func popcount(x uint64) int {
	n := 0
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}
