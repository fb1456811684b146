// Package partial holds sets of partially known boards and joins them.
//
// A List pairs one mask of known cells with the boards that are consistent
// with some constraint on those cells. Merging two lists keeps every pair of
// boards that agree on the cells both lists know and unions their knowledge.
package partial

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"

	"bwlife/internal/core"
	"bwlife/internal/logging"
)

// ErrTooManyStates is returned when a merge would produce more boards than
// the merger's limit. The search that hit it can be retried with a larger
// limit; nothing is corrupted.
var ErrTooManyStates = errors.New("partial: too many states")

// List is a set of boards over a shared mask of known cells. No board has a
// bit outside Mask.
type List struct {
	Mask   core.Board
	States []core.Board
}

// Len returns the number of boards.
func (l List) Len() int { return len(l.States) }

// Empty reports whether the list has no boards.
func (l List) Empty() bool { return len(l.States) == 0 }

// Valid reports whether every board lies inside the mask.
func (l List) Valid() bool {
	for _, s := range l.States {
		if s&^l.Mask != 0 {
			return false
		}
	}
	return true
}

// Merger joins lists. It keeps its index buffers between calls and is not
// safe for concurrent use.
type Merger struct {
	maxStates int
	logger    *slog.Logger

	head []int32
	next []int32

	merges int
	peak   int
}

// NewMerger returns a merger that fails once a list would exceed maxStates
// boards. maxStates <= 0 disables the limit. A nil logger discards output.
func NewMerger(maxStates int, logger *slog.Logger) *Merger {
	return &Merger{maxStates: maxStates, logger: logging.OrDiscard(logger)}
}

// Merge returns every a|b for a in x and b in y that agree on the cells both
// lists know. The result mask is the union of the input masks. If either
// input is empty the result is empty.
func (m *Merger) Merge(x, y List) (List, error) {
	out := List{Mask: x.Mask | y.Mask}
	if x.Empty() || y.Empty() {
		return out, nil
	}
	shared := x.Mask & y.Mask

	build, probe := x.States, y.States
	if len(build) > len(probe) {
		build, probe = probe, build
	}
	hbits := m.index(build, shared)

	capHint := max(len(build), len(probe))
	if m.maxStates > 0 && capHint > m.maxStates {
		capHint = m.maxStates
	}
	out.States = make([]core.Board, 0, capHint)
	for _, p := range probe {
		key := p & shared
		for i := m.head[key.Hash(hbits)]; i >= 0; i = m.next[i] {
			b := build[i]
			if (b^p)&shared != 0 {
				continue
			}
			if m.maxStates > 0 && len(out.States) >= m.maxStates {
				return List{}, fmt.Errorf("%w: more than %d boards merging %d x %d",
					ErrTooManyStates, m.maxStates, len(x.States), len(y.States))
			}
			out.States = append(out.States, b|p)
		}
	}

	m.merges++
	if len(out.States) > m.peak {
		m.peak = len(out.States)
	}
	return out, nil
}

// index chains every board of build into buckets keyed by its shared cells
// and returns the hash width used.
func (m *Merger) index(build []core.Board, shared core.Board) uint {
	hbits := uint(bits.Len(uint(len(build))))
	if hbits > 24 {
		hbits = 24
	}
	if shared == 0 {
		hbits = 0
	}
	buckets := 1 << hbits
	if cap(m.head) < buckets {
		m.head = make([]int32, buckets)
	}
	m.head = m.head[:buckets]
	for i := range m.head {
		m.head[i] = -1
	}
	if cap(m.next) < len(build) {
		m.next = make([]int32, len(build))
	}
	m.next = m.next[:len(build)]

	// insert in reverse so chains iterate in input order
	for i := len(build) - 1; i >= 0; i-- {
		h := (build[i] & shared).Hash(hbits)
		m.next[i] = m.head[h]
		m.head[h] = int32(i)
	}
	return hbits
}

// Finalize marks the end of a search and reports the final list size.
func (m *Merger) Finalize(l List) List {
	m.logger.Debug("merge finalized",
		"states", len(l.States),
		"mask", l.Mask.Hex(),
		"merges", m.merges,
		"peak", m.peak)
	return l
}

// Peak returns the largest list produced since the last Reset.
func (m *Merger) Peak() int { return m.peak }

// Merges returns the number of merges since the last Reset.
func (m *Merger) Merges() int { return m.merges }

// Reset clears the counters.
func (m *Merger) Reset() {
	m.merges = 0
	m.peak = 0
}
