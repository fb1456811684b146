package core

// Evaluator advances boards under a fixed rule and neighbourhood.
type Evaluator struct {
	rule Rule
	nh   Neighborhood
	// counts with a non-zero truth-table entry, precomputed for the hot loop
	born []int
	kept []int
}

// NewEvaluator builds an evaluator for the rule in the given neighbourhood.
// Table entries above the neighbourhood size are ignored.
func NewEvaluator(rule Rule, nh Neighborhood) *Evaluator {
	e := &Evaluator{rule: rule, nh: nh}
	for k := 0; k <= nh.Size(); k++ {
		if rule.Births(k) {
			e.born = append(e.born, k)
		}
		if rule.Survives(k) {
			e.kept = append(e.kept, k)
		}
	}
	return e
}

// Rule returns the evaluator's rule.
func (e *Evaluator) Rule() Rule { return e.rule }

// Neighborhood returns the evaluator's neighbourhood.
func (e *Evaluator) Neighborhood() Neighborhood { return e.nh }

// counter is a bit-sliced per-cell neighbour count; bit i of n[j] is bit j of
// cell i's count.
type counter [4]Board

func (c *counter) add(x Board) {
	for j := 0; j < 3; j++ {
		carry := c[j] & x
		c[j] ^= x
		x = carry
	}
	c[3] |= x
}

// equal returns the cells whose count is exactly k.
func (c *counter) equal(k int) Board {
	m := Full
	for j := 0; j < 4; j++ {
		if k>>uint(j)&1 != 0 {
			m &= c[j]
		} else {
			m &^= c[j]
		}
	}
	return m
}

// Step returns the next generation of s.
func (e *Evaluator) Step(s Board) Board {
	var c counter
	left, right := s.XRoll(1), s.XRoll(7)
	up, down := s.YRoll(1), s.YRoll(7)
	switch e.nh {
	case VonNeumann:
		c.add(left)
		c.add(right)
		c.add(up)
		c.add(down)
	case Diagonal:
		c.add(up.XRoll(1))
		c.add(up.XRoll(7))
		c.add(down.XRoll(1))
		c.add(down.XRoll(7))
	default:
		c.add(left)
		c.add(right)
		c.add(up)
		c.add(down)
		c.add(up.XRoll(1))
		c.add(up.XRoll(7))
		c.add(down.XRoll(1))
		c.add(down.XRoll(7))
	}

	var born, kept Board
	for _, k := range e.born {
		born |= c.equal(k)
	}
	for _, k := range e.kept {
		kept |= c.equal(k)
	}
	return ^s&born | s&kept
}

// StepN applies Step n times.
func (e *Evaluator) StepN(s Board, n int) Board {
	for i := 0; i < n; i++ {
		s = e.Step(s)
	}
	return s
}

// Count returns the number of live neighbours of cell (row, col), computed
// directly from the offsets. It is the reference for Step.
func (e *Evaluator) Count(s Board, row, col int) int {
	k := 0
	for _, o := range e.nh.Offsets() {
		if s.Cell(row+o[0], col+o[1]) {
			k++
		}
	}
	return k
}
