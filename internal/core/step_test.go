package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepMatchesCount(t *testing.T) {
	rules := []Rule{Life, Rules["highlife"], Rules["seeds"], Rules["daynight"], Rules["replicator"], {Birth: 1 << 8, Survive: 1}}
	for _, nh := range []Neighborhood{Moore, VonNeumann, Diagonal} {
		for _, rule := range rules {
			e := NewEvaluator(rule, nh)
			for _, b := range randomBoards(16, uint64(rule.Birth)<<16|uint64(rule.Survive)) {
				next := e.Step(b)
				for r := 0; r < Side; r++ {
					for c := 0; c < Side; c++ {
						want := rule.Next(b.Cell(r, c), e.Count(b, r, c))
						require.Equal(t, want, next.Cell(r, c), "%s %s cell (%d,%d) of %s", nh, rule, r, c, b.Hex())
					}
				}
			}
		}
	}
}

func TestStepDistinguishesEightFromZero(t *testing.T) {
	// an isolated dead cell inside a full ring has eight live neighbours
	ring := Full &^ Bit(3, 3)
	e := NewEvaluator(Rule{Birth: 1 << 8}, Moore)
	assert.True(t, e.Step(ring).Cell(3, 3))

	e = NewEvaluator(Rule{Birth: 1}, Moore)
	assert.False(t, e.Step(ring).Cell(3, 3))
	assert.Equal(t, Full, e.Step(0))
}

func TestBlinkerOscillation(t *testing.T) {
	e := NewEvaluator(Life, Moore)
	horizontal := Bit(3, 2) | Bit(3, 3) | Bit(3, 4)
	vertical := Bit(2, 3) | Bit(3, 3) | Bit(4, 3)

	if got := e.Step(horizontal); got != vertical {
		t.Fatalf("after one step got\n%s\nexpected\n%s", got, vertical)
	}
	if got := e.StepN(horizontal, 2); got != horizontal {
		t.Fatalf("after second step got\n%s\nexpected\n%s", got, horizontal)
	}
}

func TestStepCommutesWithSymmetry(t *testing.T) {
	e := NewEvaluator(Life, Moore)
	for _, b := range randomBoards(16, 9) {
		for tf := Transform(0); tf < NumTransforms; tf++ {
			require.Equal(t, e.Step(b).Transform(tf), e.Step(b.Transform(tf)), tf.String())
		}
		require.Equal(t, e.Step(b).XRoll(3).YRoll(5), e.Step(b.XRoll(3).YRoll(5)))
	}
}

func TestRuleParse(t *testing.T) {
	cases := map[string]Rule{
		"B3/S23":       Life,
		"b3/s23":       Life,
		"S23/B3":       Life,
		"life":         Life,
		"B36/S23":      Rules["highlife"],
		"B/S012345678": Rules["identity"],
		"B2/S":         Rules["seeds"],
	}
	for in, want := range cases {
		got, err := ParseRule(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "B3", "B9/S23", "X3/S23", "B3/S2/3"} {
		_, err := ParseRule(bad)
		assert.ErrorIs(t, err, ErrBadRule, bad)
	}
	for _, name := range RuleNames() {
		r := Rules[name]
		back, err := ParseRule(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, back, name)
	}
}

func TestRuleFits(t *testing.T) {
	assert.True(t, Life.Fits(VonNeumann))
	assert.True(t, Rules["daynight"].Fits(Moore))
	assert.False(t, Rules["daynight"].Fits(VonNeumann))
	assert.False(t, Rule{Survive: 1 << 5}.Fits(Diagonal))
}

func TestNeighborhood(t *testing.T) {
	for _, nh := range []Neighborhood{Moore, VonNeumann, Diagonal} {
		got, err := ParseNeighborhood(nh.String())
		require.NoError(t, err)
		assert.Equal(t, nh, got)

		nbrs := nh.Neighbors(0)
		require.Len(t, nbrs, nh.Size())
		var union Board
		for _, n := range nbrs {
			union |= n
		}
		assert.Equal(t, nh.Size(), union.Population(), "neighbours of a corner are distinct")
		assert.Zero(t, union&1)
	}
	_, err := ParseNeighborhood("hex")
	assert.Error(t, err)
}
