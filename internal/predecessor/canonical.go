package predecessor

import (
	"math"
	"math/bits"

	"bwlife/internal/core"
)

// Orientation is a symmetry followed by a vertical and a horizontal roll.
type Orientation struct {
	Transform core.Transform
	X, Y      int
}

// Apply maps b into the oriented frame.
func (o Orientation) Apply(b core.Board) core.Board {
	return b.Transform(o.Transform).YRoll(o.Y).XRoll(o.X)
}

// Invert maps b from the oriented frame back to the original one.
func (o Orientation) Invert(b core.Board) core.Board {
	return b.XRoll((8 - o.X) & 7).YRoll((8 - o.Y) & 7).Transform(o.Transform.Inverse())
}

// IsIdentity reports whether the orientation leaves boards unchanged.
func (o Orientation) IsIdentity() bool {
	return o.Transform == core.Identity && o.X&7 == 0 && o.Y&7 == 0
}

// spread8 moves bit i of x to bit 2i.
func spread8(x uint8) uint16 {
	v := uint16(x)
	v = (v | v<<4) & 0x0f0f
	v = (v | v<<2) & 0x3333
	v = (v | v<<1) & 0x5555
	return v
}

// orderKey ranks boards by how early the search meets their cells: rows 0
// and 1 interleaved column by column in the top 16 bits, then rows 2 to 7,
// each row with column 0 most significant.
func orderKey(b core.Board) uint64 {
	rev := func(row int) uint8 { return bits.Reverse8(b.Row(row)) }
	return uint64(spread8(rev(0)))<<49 |
		uint64(spread8(rev(1)))<<48 |
		uint64(rev(2))<<40 |
		uint64(rev(3))<<32 |
		uint64(rev(4))<<24 |
		uint64(rev(5))<<16 |
		uint64(rev(6))<<8 |
		uint64(rev(7))
}

// orient picks the orientation of target that puts the most constraining
// cells first. When maximize is set live cells constrain more, otherwise
// dead cells do. Ties keep the first orientation found.
func orient(target core.Board, maximize bool) Orientation {
	var best Orientation
	bestKey := uint64(math.MaxUint64)
	if maximize {
		bestKey = 0
	}
	for t := core.Transform(0); t < core.NumTransforms; t++ {
		tb := target.Transform(t)
		for y := 0; y < core.Side; y++ {
			yb := tb.YRoll(y)
			for x := 0; x < core.Side; x++ {
				k := orderKey(yb.XRoll(x))
				if maximize && k > bestKey || !maximize && k < bestKey {
					best = Orientation{Transform: t, X: x, Y: y}
					bestKey = k
				}
			}
		}
	}
	return best
}
