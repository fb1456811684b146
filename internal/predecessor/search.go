// Package predecessor computes the exact set of boards that step to a target
// board. Each cell contributes the local assignments consistent with its
// next state; the search joins these partial lists until every cell is known.
package predecessor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bwlife/internal/arena"
	"bwlife/internal/core"
	"bwlife/internal/keysort"
	"bwlife/internal/logging"
	"bwlife/internal/partial"
)

// Strategy selects the order in which cell lists are joined.
type Strategy uint8

const (
	// DivideAndConquer splits the board into halves down to single cells and
	// joins sibling regions on the way back up.
	DivideAndConquer Strategy = iota
	// RowFold joins cells one at a time into a running list, pairing rows 0
	// and 1 column by column before sweeping the remaining rows.
	RowFold
)

func (s Strategy) String() string {
	switch s {
	case DivideAndConquer:
		return "dc"
	case RowFold:
		return "rowfold"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy accepts the names produced by String.
func ParseStrategy(v string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "dc", "divide", "recursive":
		return DivideAndConquer, nil
	case "rowfold", "row", "linear":
		return RowFold, nil
	}
	return 0, fmt.Errorf("predecessor: unknown strategy %q", v)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Options configures a Searcher.
type Options struct {
	Strategy Strategy
	// Canonicalize searches a symmetric image of the target chosen so the
	// most constraining cells are joined first.
	Canonicalize bool
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Searcher finds predecessors under one rule and neighbourhood. It borrows a
// scratch buffer and a merger, and is not safe for concurrent use.
type Searcher struct {
	rule      core.Rule
	nh        core.Neighborhood
	scratch   *arena.Scratch
	merger    *partial.Merger
	opts      Options
	log       *slog.Logger
	neighbors [core.Cells][]core.Board
	// > 0 when live target cells admit fewer assignments than dead ones
	bias int
}

// New returns a searcher for eval's rule and neighbourhood.
func New(eval *core.Evaluator, scratch *arena.Scratch, merger *partial.Merger, opts Options) *Searcher {
	log := logging.OrDiscard(opts.Logger)
	s := &Searcher{
		rule:    eval.Rule(),
		nh:      eval.Neighborhood(),
		scratch: scratch,
		merger:  merger,
		opts:    opts,
		log:     log,
	}
	for bit := range s.neighbors {
		s.neighbors[bit] = s.nh.Neighbors(bit)
	}
	alive, dead := cellCounts(s.rule, s.nh)
	s.bias = dead - alive
	return s
}

// Orientation returns the orientation Find would search target in.
func (s *Searcher) Orientation(target core.Board) Orientation {
	if !s.opts.Canonicalize || s.bias == 0 {
		return Orientation{}
	}
	return orient(target, s.bias > 0)
}

// Find returns every board that steps to target, sorted ascending without
// duplicates. A partial.ErrTooManyStates error means the search was abandoned
// at the merger's limit; arena.ErrScratchExhausted means the scratch is too
// small for the rule.
func (s *Searcher) Find(target core.Board) ([]core.Board, error) {
	o := s.Orientation(target)
	t := o.Apply(target)
	s.merger.Reset()

	var (
		list partial.List
		err  error
	)
	switch s.opts.Strategy {
	case RowFold:
		list, err = s.rowFold(t)
	default:
		list, err = s.region(t, 0, core.Side, core.Side)
	}
	if err != nil {
		return nil, fmt.Errorf("predecessor: target %s: %w", target.Hex(), err)
	}
	list = s.merger.Finalize(list)

	states := list.States
	if !o.IsIdentity() {
		for i, b := range states {
			states[i] = o.Invert(b)
		}
	}
	states = keysort.Unique(states)
	s.log.Debug("predecessors found",
		"target", target.Hex(),
		"strategy", s.opts.Strategy,
		"orientation", o.Transform,
		"roll_x", o.X,
		"roll_y", o.Y,
		"count", len(states),
		"peak", s.merger.Peak())
	return states, nil
}

// Advance returns the union of the predecessors of every board in boards,
// sorted without duplicates.
func (s *Searcher) Advance(boards []core.Board) ([]core.Board, error) {
	var out []core.Board
	for _, b := range boards {
		preds, err := s.Find(b)
		if err != nil {
			return nil, err
		}
		out = append(out, preds...)
	}
	return keysort.Unique(out), nil
}

// region solves the h x w block of cells whose lowest bit is origin. Wider
// blocks split left/right, taller or square blocks split bottom/top, and the
// halves are joined. The second half is skipped when the first has no states.
func (s *Searcher) region(target core.Board, origin, h, w int) (partial.List, error) {
	if w == 1 && h == 1 {
		return s.CellStates(origin, target>>uint(origin)&1 != 0)
	}
	var step int
	if w > h {
		w /= 2
		step = w
	} else {
		h /= 2
		step = h * core.Side
	}
	a, err := s.region(target, origin, h, w)
	if err != nil || a.Empty() {
		return a, err
	}
	b, err := s.region(target, origin+step, h, w)
	if err != nil {
		return partial.List{}, err
	}
	return s.merger.Merge(a, b)
}

// rowFoldOrder interleaves rows 0 and 1 so 2x2 blocks close early, then
// walks the remaining cells in bit order.
var rowFoldOrder = func() [core.Cells]int {
	var order [core.Cells]int
	i := 0
	for col := 0; col < core.Side; col++ {
		order[i], order[i+1] = col, col+core.Side
		i += 2
	}
	for bit := 2 * core.Side; bit < core.Cells; bit++ {
		order[i] = bit
		i++
	}
	return order
}()

func (s *Searcher) rowFold(target core.Board) (partial.List, error) {
	acc := partial.List{States: []core.Board{0}}
	for _, bit := range rowFoldOrder {
		cell, err := s.CellStates(bit, target>>uint(bit)&1 != 0)
		if err != nil {
			return partial.List{}, err
		}
		acc, err = s.merger.Merge(acc, cell)
		if err != nil {
			return partial.List{}, err
		}
		if acc.Empty() {
			break
		}
	}
	return acc, nil
}

// IsLimit reports whether err came from the merger's state limit rather
// than a fault in the search.
func IsLimit(err error) bool {
	return errors.Is(err, partial.ErrTooManyStates)
}
