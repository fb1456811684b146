package partial

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/core"
)

func TestMergeDisjoint(t *testing.T) {
	m := NewMerger(0, nil)
	x := List{Mask: 0b0011, States: []core.Board{0, 1, 2, 3}}
	y := List{Mask: 0b1100, States: []core.Board{0, 4}}
	out, err := m.Merge(x, y)
	require.NoError(t, err)
	assert.Equal(t, core.Board(0b1111), out.Mask)
	assert.ElementsMatch(t, []core.Board{0, 1, 2, 3, 4, 5, 6, 7}, out.States)
	assert.True(t, out.Valid())
}

func TestMergeShared(t *testing.T) {
	m := NewMerger(0, nil)
	x := List{Mask: 0b011, States: []core.Board{0b001, 0b010}}
	y := List{Mask: 0b110, States: []core.Board{0b010, 0b100, 0b110}}
	out, err := m.Merge(x, y)
	require.NoError(t, err)
	assert.Equal(t, core.Board(0b111), out.Mask)
	assert.ElementsMatch(t, []core.Board{0b101, 0b010, 0b110}, out.States)

	// argument order does not change the set
	rev, err := m.Merge(y, x)
	require.NoError(t, err)
	assert.ElementsMatch(t, out.States, rev.States)
	assert.Equal(t, 2, m.Merges())
	assert.Equal(t, 3, m.Peak())

	m.Reset()
	assert.Zero(t, m.Merges())
	assert.Zero(t, m.Peak())
}

func TestMergeEmpty(t *testing.T) {
	m := NewMerger(0, nil)
	x := List{Mask: 0xf0}
	y := List{Mask: 0x0f, States: []core.Board{1, 2}}
	out, err := m.Merge(x, y)
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Equal(t, core.Board(0xff), out.Mask)

	out, err = m.Merge(y, x)
	require.NoError(t, err)
	assert.True(t, out.Empty())
}

func TestMergeLimit(t *testing.T) {
	m := NewMerger(3, nil)
	x := List{Mask: 0b0011, States: []core.Board{0, 1, 2, 3}}
	y := List{Mask: 0b1100, States: []core.Board{0, 4}}
	_, err := m.Merge(x, y)
	assert.ErrorIs(t, err, ErrTooManyStates)

	m = NewMerger(8, nil)
	out, err := m.Merge(x, y)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Len())
}

func naiveMerge(x, y List) []core.Board {
	shared := x.Mask & y.Mask
	var out []core.Board
	for _, a := range x.States {
		for _, b := range y.States {
			if (a^b)&shared == 0 {
				out = append(out, a|b)
			}
		}
	}
	return out
}

func randomList(r *rand.Rand, mask core.Board, n int) List {
	l := List{Mask: mask}
	for i := 0; i < n; i++ {
		l.States = append(l.States, core.Board(r.Uint64())&mask)
	}
	return l
}

func TestMergeMatchesNestedLoop(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	m := NewMerger(0, nil)
	for trial := 0; trial < 50; trial++ {
		mx := core.Board(r.Uint64() | r.Uint64())
		my := core.Board(r.Uint64() | r.Uint64())
		// keep the shared part small so matches are common
		shared := mx & my & 0x3f
		mx = mx&^(my&^0x3f) | shared
		x := randomList(r, mx, 1+r.IntN(200))
		y := randomList(r, my, 1+r.IntN(200))

		out, err := m.Merge(x, y)
		require.NoError(t, err)
		require.ElementsMatch(t, naiveMerge(x, y), out.States, "trial %d", trial)
		require.True(t, out.Valid())
	}
}

func TestValid(t *testing.T) {
	assert.True(t, List{Mask: 0xff, States: []core.Board{0x0f, 0xf0}}.Valid())
	assert.False(t, List{Mask: 0x0f, States: []core.Board{0x1f}}.Valid())
}
