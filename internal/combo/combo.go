// Package combo enumerates the partial boards formed by a center pattern
// plus every fixed-size subset of a neighbour list.
package combo

import (
	"errors"
	"fmt"

	"bwlife/internal/arena"
	"bwlife/internal/core"
)

// MaxNeighbors bounds the neighbour list length.
const MaxNeighbors = 8

// ErrTooManyNeighbors is returned for neighbour lists longer than MaxNeighbors.
var ErrTooManyNeighbors = errors.New("combo: too many neighbors")

// Generate appends center|OR(subset) to dst for every k-element subset of
// neighbors, in lexicographic order of subset indices. k == 0 appends center
// alone; k > len(neighbors) appends nothing. It stops with
// arena.ErrScratchExhausted if dst fills up.
func Generate(dst *arena.Scratch, center core.Board, neighbors []core.Board, k int) error {
	n := len(neighbors)
	if n > MaxNeighbors {
		return fmt.Errorf("%w: %d", ErrTooManyNeighbors, n)
	}
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return dst.Append(center)
	}

	var idx [MaxNeighbors]int
	for i := range idx {
		idx[i] = i
	}
	for {
		b := center
		for _, j := range idx[:k] {
			b |= neighbors[j]
		}
		if err := dst.Append(b); err != nil {
			return err
		}

		// rightmost index that can still advance
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Binomial returns n choose k, or 0 when k is out of range.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
