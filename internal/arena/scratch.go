// Package arena provides the fixed-capacity board buffer shared by the
// combination generator and the predecessor search.
package arena

import (
	"errors"

	"bwlife/internal/core"
)

// ErrScratchExhausted is returned when an append would exceed the scratch
// capacity.
var ErrScratchExhausted = errors.New("arena: scratch exhausted")

// Scratch is a bounded, reusable list of boards. It never grows past the
// capacity it was created with.
type Scratch struct {
	buf []core.Board
}

// New allocates a scratch that holds up to capacity boards.
func New(capacity int) *Scratch {
	if capacity < 0 {
		capacity = 0
	}
	return &Scratch{buf: make([]core.Board, 0, capacity)}
}

// CapacityFor returns the scratch size that fits in the memory of a cycle
// table with the given primary and overflow lengths. Each 16-byte table entry
// holds two boards.
func CapacityFor(tableLen, arenaLen int) int {
	return 2 * (tableLen + arenaLen)
}

// Append adds b, failing once the scratch is full.
func (s *Scratch) Append(b core.Board) error {
	if len(s.buf) == cap(s.buf) {
		return ErrScratchExhausted
	}
	s.buf = append(s.buf, b)
	return nil
}

// Len returns the number of boards held.
func (s *Scratch) Len() int { return len(s.buf) }

// Cap returns the fixed capacity.
func (s *Scratch) Cap() int { return cap(s.buf) }

// Boards returns the current contents. The slice aliases the scratch and is
// invalidated by Reset.
func (s *Scratch) Boards() []core.Board { return s.buf }

// Truncate drops everything after the first n boards.
func (s *Scratch) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(s.buf) {
		s.buf = s.buf[:n]
	}
}

// Reset empties the scratch without releasing memory.
func (s *Scratch) Reset() { s.buf = s.buf[:0] }
