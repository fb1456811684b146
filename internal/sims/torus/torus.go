// Package torus is a viewable simulation of a single 8x8 toroidal board.
package torus

import (
	"fmt"
	"strconv"

	"bwlife/internal/classify"
	"bwlife/internal/config"
	"bwlife/internal/core"
	"bwlife/pkg/bwlife"
	pcore "bwlife/pkg/core"
)

// Torus steps one board under a configured rule and remembers how the board
// it was reset to is classified. The board is tiled Tiles x Tiles times so
// the wrap-around is visible.
type Torus struct {
	eng   *bwlife.Engine
	grid  *core.ByteGrid
	tiles int

	start core.Board
	board core.Board
	gen   int

	rec    classify.Record
	recErr error
}

// New returns a Torus for cfg. tiles below 1 is treated as 1.
func New(cfg config.Config, tiles int) (*Torus, error) {
	eng, err := bwlife.New(cfg, nil)
	if err != nil {
		return nil, err
	}
	tiles = max(tiles, 1)
	return &Torus{
		eng:   eng,
		grid:  core.NewByteGrid(tiles*core.Side, tiles*core.Side),
		tiles: tiles,
	}, nil
}

// FromMap builds a Torus from flag-style options. "tiles" sets the tiling;
// every other key is a config override. Invalid settings fall back to the
// defaults, and it panics if the defaults themselves are rejected.
func FromMap(opts map[string]string) *Torus {
	tiles := 3
	if v, err := strconv.Atoi(opts["tiles"]); err == nil && v > 0 {
		tiles = v
	}
	t, err := New(config.FromMap(opts), tiles)
	if err == nil {
		return t
	}
	t, err = New(config.DefaultConfig(), tiles)
	if err != nil {
		panic(fmt.Sprintf("torus: default config: %v", err))
	}
	return t
}

// Name returns the simulation identifier.
func (t *Torus) Name() string { return "torus" }

// Size returns the grid dimensions.
func (t *Torus) Size() core.Size { return core.Size{W: t.grid.W, H: t.grid.H} }

// Cells exposes the tiled board.
func (t *Torus) Cells() []uint8 { return t.grid.Cells() }

// Reset starts over from a random board drawn from seed.
func (t *Torus) Reset(seed int64) {
	t.SetBoard(pcore.NewRNG(seed).Board())
}

// SetBoard starts over from b and classifies it.
func (t *Torus) SetBoard(b core.Board) {
	t.start, t.board, t.gen = b, b, 0
	t.rec, t.recErr = t.eng.Classify(b)
	t.grid.Load(b)
}

// Step advances one generation.
func (t *Torus) Step() {
	t.board = t.eng.Step(t.board)
	t.gen++
	t.grid.Load(t.board)
}

// Board returns the current board.
func (t *Torus) Board() core.Board { return t.board }

// Generation returns the number of steps since the last reset.
func (t *Torus) Generation() int { return t.gen }

// Record returns the classification of the starting board.
func (t *Torus) Record() (classify.Record, error) { return t.rec, t.recErr }

// CycleEntry returns the first repeated board once the orbit has reached
// its cycle.
func (t *Torus) CycleEntry() (core.Board, bool) {
	if t.recErr != nil || t.gen < int(t.rec.Transient) {
		return 0, false
	}
	return t.rec.End, true
}

// Status describes the rule, generation and fate of the current orbit.
func (t *Torus) Status() string {
	rule := t.eng.Config().Rule
	head := fmt.Sprintf("%s gen %d pop %d", rule, t.gen, t.board.Population())
	if t.recErr != nil {
		return head + " | " + t.recErr.Error()
	}
	phase := "transient"
	if t.gen >= int(t.rec.Transient) {
		phase = "cycling"
	}
	return fmt.Sprintf("%s | %s t=%d p=%d %s", head, t.rec.Class, t.rec.Transient, t.rec.Period, phase)
}

func init() {
	core.Register("torus", func(cfg map[string]string) core.Sim {
		return FromMap(cfg)
	})
}
