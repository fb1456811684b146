package predecessor

import (
	"fmt"
	"slices"

	"bwlife/internal/combo"
	"bwlife/internal/core"
	"bwlife/internal/partial"
)

// CellStates lists every assignment of cell bit and its neighbours that makes
// the cell's next state equal alive. The list mask is the cell plus its
// neighbourhood.
func (s *Searcher) CellStates(bit int, alive bool) (partial.List, error) {
	if bit < 0 || bit >= core.Cells {
		return partial.List{}, fmt.Errorf("predecessor: bit %d out of range", bit)
	}
	center := core.Board(1) << uint(bit)
	nbrs := s.neighbors[bit]
	mask := center
	for _, n := range nbrs {
		mask |= n
	}

	s.scratch.Reset()
	for k := 0; k <= len(nbrs); k++ {
		// dead before, k neighbours
		if s.rule.Births(k) == alive {
			if err := combo.Generate(s.scratch, 0, nbrs, k); err != nil {
				return partial.List{}, fmt.Errorf("predecessor: cell %d: %w", bit, err)
			}
		}
		// alive before, k neighbours
		if s.rule.Survives(k) == alive {
			if err := combo.Generate(s.scratch, center, nbrs, k); err != nil {
				return partial.List{}, fmt.Errorf("predecessor: cell %d: %w", bit, err)
			}
		}
	}
	return partial.List{Mask: mask, States: slices.Clone(s.scratch.Boards())}, nil
}

// cellCounts returns how many per-cell assignments lead to a live and to a
// dead cell under the rule.
func cellCounts(rule core.Rule, nh core.Neighborhood) (alive, dead int) {
	n := nh.Size()
	for k := 0; k <= n; k++ {
		c := combo.Binomial(n, k)
		if rule.Births(k) {
			alive += c
		}
		if rule.Survives(k) {
			alive += c
		}
	}
	return alive, 2<<uint(n) - alive
}
