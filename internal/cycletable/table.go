// Package cycletable maps boards to the step at which they were first seen
// during a single trajectory. Storage is a fixed primary bucket array plus a
// fixed overflow arena for collisions; nothing is allocated after New.
package cycletable

import (
	"errors"
	"fmt"
	"math/bits"

	"bwlife/internal/core"
)

// ErrArenaExhausted is returned by Insert when a collision needs an overflow
// slot and none remain.
var ErrArenaExhausted = errors.New("cycletable: overflow arena exhausted")

const (
	noBucket = ^uint32(0)     // bucket holds no entry
	noNext   = ^uint32(0) - 1 // end of a collision chain
)

type entry struct {
	key  core.Board
	step uint32
	next uint32 // arena index, noNext or noBucket
}

// Table is a chained hash table keyed by board. Each epoch (between Clears)
// must insert a given board at most once; callers Lookup before Insert.
type Table struct {
	buckets []entry
	arena   []entry
	used    uint32
	bits    uint
}

// New allocates a table with tableLen primary buckets and arenaLen overflow
// slots. tableLen must be a power of two.
func New(tableLen, arenaLen int) (*Table, error) {
	if tableLen <= 0 || tableLen&(tableLen-1) != 0 {
		return nil, fmt.Errorf("cycletable: table length %d is not a power of two", tableLen)
	}
	if arenaLen < 0 || uint64(arenaLen) >= uint64(noNext) {
		return nil, fmt.Errorf("cycletable: arena length %d out of range", arenaLen)
	}
	t := &Table{
		buckets: make([]entry, tableLen),
		arena:   make([]entry, arenaLen),
		bits:    uint(bits.TrailingZeros(uint(tableLen))),
	}
	t.Clear()
	return t, nil
}

// Clear empties the table. Only the link fields are reset.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i].next = noBucket
	}
	t.used = 0
}

// Insert records that board was seen at step. On a collision the new entry
// is linked directly after the bucket head without walking the chain.
func (t *Table) Insert(board core.Board, step uint32) error {
	head := &t.buckets[board.Hash(t.bits)]
	if head.next == noBucket {
		*head = entry{key: board, step: step, next: noNext}
		return nil
	}
	if int(t.used) == len(t.arena) {
		return ErrArenaExhausted
	}
	id := t.used
	t.used++
	t.arena[id] = entry{key: board, step: step, next: head.next}
	head.next = id
	return nil
}

// Lookup returns the step recorded for board, if any.
func (t *Table) Lookup(board core.Board) (uint32, bool) {
	e := &t.buckets[board.Hash(t.bits)]
	if e.next == noBucket {
		return 0, false
	}
	for {
		if e.key == board {
			return e.step, true
		}
		if e.next == noNext {
			return 0, false
		}
		e = &t.arena[e.next]
	}
}

// Len returns the number of primary buckets.
func (t *Table) Len() int { return len(t.buckets) }

// ArenaLen returns the number of overflow slots.
func (t *Table) ArenaLen() int { return len(t.arena) }

// ArenaUsed returns the number of overflow slots consumed this epoch.
func (t *Table) ArenaUsed() int { return int(t.used) }

// HashBits returns log2 of the bucket count.
func (t *Table) HashBits() uint { return t.bits }
