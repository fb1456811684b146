// Package stats aggregates classification records and predecessor counts
// from long-running sweeps.
//
// A Collector keeps per-class counts, period and transient histograms sized
// by the configured maxima, a sparse histogram of predecessor counts, and
// error tallies. It also flags records that are worth a closer look: values
// never or rarely seen before, long transients ending in long cycles, and a
// few structural coincidences between the start and end boards.
//
// Collectors are safe for concurrent use.
package stats

import (
	"errors"
	"math/bits"
	"sort"
	"sync"

	"bwlife/internal/classify"
	"bwlife/internal/core"
	"bwlife/internal/partial"
)

// Interest is a bit set of reasons a record stands out.
type Interest uint8

const (
	// RareTransient: the transient length has been seen exactly once.
	RareTransient Interest = 1 << iota
	// RarePeriod: the period has been seen exactly once.
	RarePeriod
	// LongOrbit: a long transient leading into a long cycle.
	LongOrbit
	// NewTransient: first time this transient length appears.
	NewTransient
	// NewPeriod: first time this period appears.
	NewPeriod
	// NearHalf: a still life with slightly under half the cells alive.
	NearHalf
	// Covering: start and non-empty end together cover every cell.
	Covering
	// Inverse: the end board is the complement of the start board.
	Inverse
)

var interestNames = []string{
	"rare_transient", "rare_period", "long_orbit", "new_transient",
	"new_period", "near_half", "covering", "inverse",
}

// Names lists the flags set in i.
func (i Interest) Names() []string {
	var out []string
	for bit, name := range interestNames {
		if i&(1<<bit) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// Count returns the number of flags set.
func (i Interest) Count() int { return bits.OnesCount8(uint8(i)) }

const (
	longTransient = 196
	longPeriod    = 36
	halfLow       = 26
	halfHigh      = 32
	// flags that fire often stop counting as interesting on their own after
	// this many hits
	dampAfter = 5
)

// Options configures a Collector.
type Options struct {
	MaxPeriod    uint32
	MaxTransient uint32
	// Metrics mirrors every update when non-nil.
	Metrics *Metrics
}

// Collector accumulates sweep results.
type Collector struct {
	mu sync.Mutex

	opts       Options
	counts     [classify.NumClasses]uint64
	periods    []uint64
	transients []uint64
	indegrees  map[uint64]uint64
	searches   uint64

	overflows   uint64
	outOfBounds uint64
	limits      uint64

	longDamp int
	halfDamp int
}

// NewCollector returns an empty collector.
func NewCollector(opts Options) *Collector {
	c := &Collector{
		opts:       opts,
		periods:    make([]uint64, int(opts.MaxPeriod)+1),
		transients: make([]uint64, int(opts.MaxTransient)+1),
		indegrees:  make(map[uint64]uint64),
		longDamp:   dampAfter,
		halfDamp:   dampAfter,
	}
	return c
}

// Add records one classification and returns why it is interesting, or zero.
func (c *Collector) Add(rec classify.Record) Interest {
	c.mu.Lock()
	defer c.mu.Unlock()

	if int(rec.Period) >= len(c.periods) || int(rec.Transient) >= len(c.transients) {
		c.outOfBounds++
		if c.opts.Metrics != nil {
			c.opts.Metrics.observeError("out_of_bounds")
		}
		return 0
	}

	c.counts[rec.Class]++
	interest := c.interest(rec)
	c.transients[rec.Transient]++
	c.periods[rec.Period]++

	if c.opts.Metrics != nil {
		c.opts.Metrics.observe(rec, interest)
	}
	return interest
}

// interest evaluates the flags against the histograms before rec is counted.
func (c *Collector) interest(rec classify.Record) Interest {
	var in Interest
	t, p := c.transients[rec.Transient], c.periods[rec.Period]
	if t == 1 {
		in |= RareTransient
	}
	if p == 1 {
		in |= RarePeriod
	}
	if rec.Transient > longTransient && rec.Period > longPeriod {
		if c.longDamp > 0 {
			c.longDamp--
		}
		in |= LongOrbit
	}
	if t == 0 {
		in |= NewTransient
	}
	if p == 0 {
		in |= NewPeriod
	}
	if pop := rec.End.Population(); rec.Class == classify.Constant && halfLow < pop && pop < halfHigh {
		if c.halfDamp > 0 {
			c.halfDamp--
		}
		in |= NearHalf
	}
	if rec.Class != classify.Empty && rec.Start|rec.End == core.Full {
		in |= Covering
	}
	if rec.Start^rec.End == core.Full {
		in &^= RarePeriod
		in |= Inverse
	}

	switch {
	case in == LongOrbit && c.longDamp == 0:
		return 0
	case in == NearHalf && c.halfDamp == 0:
		return 0
	}
	return in
}

// AddError tallies a failed trial or search by kind. Unknown errors are
// ignored and reported false.
func (c *Collector) AddError(err error) bool {
	var kind string
	c.mu.Lock()
	switch {
	case errors.Is(err, classify.ErrOverflow):
		c.overflows++
		kind = "overflow"
	case errors.Is(err, classify.ErrOutOfBounds):
		c.outOfBounds++
		kind = "out_of_bounds"
	case errors.Is(err, partial.ErrTooManyStates):
		c.limits++
		kind = "state_limit"
	}
	c.mu.Unlock()
	if kind == "" {
		return false
	}
	if c.opts.Metrics != nil {
		c.opts.Metrics.observeError(kind)
	}
	return true
}

// AddIndegree records the number of predecessors found for one board and
// returns how many boards have now had that count.
func (c *Collector) AddIndegree(n uint64) uint64 {
	c.mu.Lock()
	c.indegrees[n]++
	c.searches++
	seen := c.indegrees[n]
	c.mu.Unlock()
	if c.opts.Metrics != nil {
		c.opts.Metrics.observeIndegree(n)
	}
	return seen
}

// Trials returns the number of classified records.
func (c *Collector) Trials() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trials()
}

func (c *Collector) trials() uint64 {
	var n uint64
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Merge adds other's totals into c. Histograms beyond c's bounds are counted
// as out of bounds.
func (c *Collector) Merge(other *Collector) {
	if other == c {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, v := range other.counts {
		c.counts[i] += v
	}
	for i, v := range other.periods {
		if i < len(c.periods) {
			c.periods[i] += v
		} else {
			c.outOfBounds += v
		}
	}
	for i, v := range other.transients {
		if i < len(c.transients) {
			c.transients[i] += v
		} else {
			c.outOfBounds += v
		}
	}
	for k, v := range other.indegrees {
		c.indegrees[k] += v
	}
	c.searches += other.searches
	c.overflows += other.overflows
	c.outOfBounds += other.outOfBounds
	c.limits += other.limits
}

// Reset zeroes every total.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Collector) reset() {
	c.counts = [classify.NumClasses]uint64{}
	clear(c.periods)
	clear(c.transients)
	clear(c.indegrees)
	c.searches = 0
	c.overflows = 0
	c.outOfBounds = 0
	c.limits = 0
}

// Summary is a point-in-time copy of a collector. Histograms only hold
// non-zero buckets.
type Summary struct {
	RunID      string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Rule       string            `json:"rule,omitempty" yaml:"rule,omitempty"`
	Trials     uint64            `json:"trials" yaml:"trials"`
	Searches   uint64            `json:"searches" yaml:"searches"`
	Counts     map[string]uint64 `json:"counts" yaml:"counts"`
	Periods    map[uint32]uint64 `json:"periods" yaml:"periods"`
	Transients map[uint32]uint64 `json:"transients" yaml:"transients"`
	Indegrees  map[uint64]uint64 `json:"indegrees" yaml:"indegrees"`
	Errors     map[string]uint64 `json:"errors" yaml:"errors"`
}

// Snapshot copies the current totals.
func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// SnapshotAndReset copies the current totals and zeroes them in one step, as
// done at each checkpoint. Every update lands in exactly one summary.
func (c *Collector) SnapshotAndReset() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snapshot()
	c.reset()
	return s
}

func (c *Collector) snapshot() Summary {
	s := Summary{
		Trials:     c.trials(),
		Searches:   c.searches,
		Counts:     make(map[string]uint64, classify.NumClasses),
		Periods:    make(map[uint32]uint64),
		Transients: make(map[uint32]uint64),
		Indegrees:  make(map[uint64]uint64, len(c.indegrees)),
		Errors: map[string]uint64{
			"overflow":      c.overflows,
			"out_of_bounds": c.outOfBounds,
			"state_limit":   c.limits,
		},
	}
	for i, v := range c.counts {
		s.Counts[classify.Class(i).String()] = v
	}
	for i, v := range c.periods {
		if v != 0 {
			s.Periods[uint32(i)] = v
		}
	}
	for i, v := range c.transients {
		if v != 0 {
			s.Transients[uint32(i)] = v
		}
	}
	for k, v := range c.indegrees {
		s.Indegrees[k] = v
	}
	return s
}

// Bucket is one histogram entry.
type Bucket struct {
	Key   uint64
	Count uint64
}

// Sorted returns the entries of a histogram map ordered by key.
func Sorted[K ~uint32 | ~uint64](h map[K]uint64) []Bucket {
	out := make([]Bucket, 0, len(h))
	for k, v := range h {
		out = append(out, Bucket{Key: uint64(k), Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
