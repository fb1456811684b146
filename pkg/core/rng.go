package core

import (
	"math/rand/v2"

	board "bwlife/internal/core"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewStream creates an RNG for one of several independent workers sharing a
// seed.
func NewStream(seed int64, stream uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), stream))}
}

// Board returns a uniformly random board.
func (r *RNG) Board() board.Board {
	return board.Board(r.r.Uint64())
}

// Sparse returns a random board where each cell is alive with probability
// num/den.
func (r *RNG) Sparse(num, den int) board.Board {
	if den <= 0 || num <= 0 {
		return 0
	}
	var b board.Board
	for bit := 0; bit < board.Cells; bit++ {
		if r.r.IntN(den) < num {
			b |= 1 << uint(bit)
		}
	}
	return b
}

// FillBinary fills the buffer with 0/1 values using the RNG.
func FillBinary(r *rand.Rand, buf []uint8) {
	for i := range buf {
		buf[i] = uint8(r.IntN(2))
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
