// Package classify runs a board forward until it repeats and reports how the
// orbit ends.
package classify

import (
	"errors"
	"fmt"
	"log/slog"

	"bwlife/internal/core"
	"bwlife/internal/cycletable"
	"bwlife/internal/logging"
)

// Class is the eventual fate of an orbit.
type Class uint8

const (
	// Empty orbits die out completely.
	Empty Class = iota
	// Constant orbits settle on a non-empty still life.
	Constant
	// Cycle orbits oscillate with period above one.
	Cycle

	// NumClasses is the number of classes.
	NumClasses = 3
)

func (c Class) String() string {
	switch c {
	case Empty:
		return "empty"
	case Constant:
		return "const"
	case Cycle:
		return "cycle"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Record describes one classified orbit. End is the first repeated board,
// Transient the number of steps before the cycle is entered.
type Record struct {
	Start     core.Board `json:"start" yaml:"start"`
	End       core.Board `json:"end" yaml:"end"`
	Class     Class      `json:"class" yaml:"class"`
	Transient uint32     `json:"transient" yaml:"transient"`
	Period    uint32     `json:"period" yaml:"period"`
}

var (
	// ErrOverflow matches errors from orbits that outgrew the cycle table.
	ErrOverflow = errors.New("classify: cycle table overflow")
	// ErrOutOfBounds matches errors from orbits whose period or transient
	// exceeds the configured maximum.
	ErrOutOfBounds = errors.New("classify: period or transient out of bounds")
)

// OverflowError reports a trial aborted because the cycle table ran out of
// overflow slots.
type OverflowError struct {
	Start core.Board
	Step  uint32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("classify: arena exhausted at step %d starting from %s", e.Step, e.Start.Hex())
}

// Unwrap lets errors.Is match both ErrOverflow and cycletable.ErrArenaExhausted.
func (e *OverflowError) Unwrap() []error {
	return []error{ErrOverflow, cycletable.ErrArenaExhausted}
}

// BoundsError reports a trial discarded because its period or step count is
// larger than the histograms accept.
type BoundsError struct {
	Start  core.Board
	Period uint32
	Step   uint32

	reason string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("classify: out of bounds (%s): p=%03d, t=%03d, s=%s",
		e.Reason(), e.Period, e.Step, e.Start.Hex())
}

// Reason names which bound failed: "p", "t" or "p+t".
func (e *BoundsError) Reason() string {
	return e.reason
}

// Unwrap returns ErrOutOfBounds.
func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Options configures a Classifier.
type Options struct {
	// MaxPeriod is the largest period accepted.
	MaxPeriod uint32
	// MaxTransient is the largest step index accepted.
	MaxTransient uint32
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Classifier owns a cycle table and reuses it for every trial. It is not safe
// for concurrent use.
type Classifier struct {
	eval  *core.Evaluator
	table *cycletable.Table
	opts  Options
	log   *slog.Logger
}

// New returns a classifier stepping with eval and detecting repeats in table.
func New(eval *core.Evaluator, table *cycletable.Table, opts Options) *Classifier {
	log := logging.OrDiscard(opts.Logger)
	return &Classifier{eval: eval, table: table, opts: opts, log: log}
}

// Classify runs start forward until a board repeats.
func (c *Classifier) Classify(start core.Board) (Record, error) {
	c.table.Clear()

	state := start
	var step, period uint32
	for step = 0; ; step++ {
		if seen, ok := c.table.Lookup(state); ok {
			period = step - seen
			break
		}
		if err := c.table.Insert(state, step); err != nil {
			c.log.Debug("cycle table overflow", "start", start.Hex(), "step", step)
			return Record{}, &OverflowError{Start: start, Step: step}
		}
		state = c.eval.Step(state)
	}

	if reason := c.bounds(period, step); reason != "" {
		return Record{}, &BoundsError{Start: start, Period: period, Step: step, reason: reason}
	}

	rec := Record{
		Start:     start,
		End:       state,
		Transient: step - period,
		Period:    period,
	}
	switch {
	case state == 0:
		rec.Class = Empty
	case period == 1:
		rec.Class = Constant
	default:
		rec.Class = Cycle
	}
	c.log.Debug("classified",
		"start", start.Hex(),
		"class", rec.Class,
		"transient", rec.Transient,
		"period", rec.Period,
		"arena_used", c.table.ArenaUsed())
	return rec, nil
}

func (c *Classifier) bounds(period, step uint32) string {
	p := period > c.opts.MaxPeriod
	t := step > c.opts.MaxTransient
	switch {
	case p && t:
		return "p+t"
	case p:
		return "p"
	case t:
		return "t"
	}
	return ""
}
