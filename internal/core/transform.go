package core

import (
	"fmt"
	"math/bits"
)

// Transform is one of the eight symmetries of the square.
type Transform uint8

const (
	Identity Transform = iota
	YFlip
	XFlip
	Transpose
	AntiTranspose
	Rot180
	Rot90
	Rot270

	// NumTransforms is the size of the symmetry group.
	NumTransforms = 8
)

var transformNames = [NumTransforms]string{
	"identity", "yflip", "xflip", "transpose", "antitranspose", "rot180", "rot90", "rot270",
}

func (t Transform) String() string {
	if int(t) < len(transformNames) {
		return transformNames[t]
	}
	return fmt.Sprintf("transform(%d)", uint8(t))
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	switch t {
	case Rot90:
		return Rot270
	case Rot270:
		return Rot90
	default:
		return t
	}
}

// Transform applies t to the board.
func (b Board) Transform(t Transform) Board {
	switch t {
	case Identity:
		return b
	case YFlip:
		return b.yflip()
	case XFlip:
		return b.xflip()
	case Transpose:
		return b.transpose()
	case AntiTranspose:
		return b.antiTranspose()
	case Rot180:
		return Board(bits.Reverse64(uint64(b)))
	case Rot90:
		return b.transpose().yflip()
	case Rot270:
		return b.antiTranspose().yflip()
	}
	panic(fmt.Sprintf("core: invalid transform %d", uint8(t)))
}

// yflip mirrors rows: row r becomes row 7-r.
func (b Board) yflip() Board {
	return Board(bits.ReverseBytes64(uint64(b)))
}

// xflip mirrors columns: col c becomes col 7-c.
func (b Board) xflip() Board {
	return Board(bits.ReverseBytes64(bits.Reverse64(uint64(b))))
}

// transpose swaps row and column, reflecting about the main diagonal.
func (b Board) transpose() Board {
	s := uint64(b)
	t := (s ^ (s >> 7)) & 0x00AA00AA00AA00AA
	s ^= t ^ (t << 7)
	t = (s ^ (s >> 14)) & 0x0000CCCC0000CCCC
	s ^= t ^ (t << 14)
	t = (s ^ (s >> 28)) & 0x00000000F0F0F0F0
	s ^= t ^ (t << 28)
	return Board(s)
}

// antiTranspose reflects about the anti-diagonal: (r, c) becomes (7-c, 7-r).
func (b Board) antiTranspose() Board {
	s := uint64(b)
	t := s ^ (s << 36)
	s ^= (t ^ (s >> 36)) & 0xF0F0F0F00F0F0F0F
	t = (s ^ (s << 18)) & 0xCCCC0000CCCC0000
	s ^= t ^ (t >> 18)
	t = (s ^ (s << 9)) & 0xAA00AA00AA00AA00
	s ^= t ^ (t >> 9)
	return Board(s)
}
