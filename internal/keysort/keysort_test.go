package keysort

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type board uint64

func TestSortMatchesSlices(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 2, 3, 24, 25, 26, 100, 1000, 10000} {
		for _, spread := range []uint64{0, 4, 1 << 20, 0} {
			s := make([]board, n)
			for i := range s {
				if spread == 0 {
					s[i] = board(r.Uint64())
				} else {
					s[i] = board(r.Uint64N(spread))
				}
			}
			want := slices.Clone(s)
			slices.Sort(want)
			Sort(s)
			require.Equal(t, want, s, "n=%d spread=%d", n, spread)
		}
	}
}

func TestSortAdversarial(t *testing.T) {
	const n = 5000
	asc := make([]uint64, n)
	desc := make([]uint64, n)
	organ := make([]uint64, n)
	same := make([]uint64, n)
	for i := range asc {
		asc[i] = uint64(i)
		desc[i] = uint64(n - i)
		organ[i] = uint64(min(i, n-i))
		same[i] = 42
	}
	for name, s := range map[string][]uint64{"asc": asc, "desc": desc, "organ": organ, "same": same} {
		Sort(s)
		assert.True(t, IsSorted(s), name)
	}
}

func TestHeapSort(t *testing.T) {
	s := []uint64{5, 3, 9, 1, 1, 0, ^uint64(0), 7}
	heapSort(s)
	assert.Equal(t, []uint64{0, 1, 1, 3, 5, 7, 9, ^uint64(0)}, s)
}

func TestDedup(t *testing.T) {
	s := []uint64{1, 1, 2, 3, 3, 3, 9}
	n := Dedup(s)
	assert.Equal(t, []uint64{1, 2, 3, 9}, s[:n])

	assert.Equal(t, 0, Dedup([]uint64{}))
	assert.Equal(t, 1, Dedup([]uint64{4}))
}

func TestUniqueIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	s := make([]board, 2000)
	for i := range s {
		s[i] = board(r.Uint64N(300))
	}
	u := Unique(s)
	for i := 1; i < len(u); i++ {
		require.Less(t, uint64(u[i-1]), uint64(u[i]))
	}
	again := Unique(slices.Clone(u))
	assert.Equal(t, u, again)
}
