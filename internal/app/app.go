//go:build ebiten

package app

import (
	"time"

	"bwlife/internal/core"
	"bwlife/internal/render"
	"bwlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// boardSim is implemented by sims backed by a single 8x8 board.
type boardSim interface {
	Board() core.Board
	SetBoard(core.Board)
	CycleEntry() (core.Board, bool)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	palette render.Palette

	scale     int
	paused    bool
	tickOnce  bool
	highlight bool
	seed      int64
	// start, when set, replaces the seeded board on R.
	start    core.Board
	hasStart bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, scale),
		palette: render.DefaultPalette,
		scale:   scale,
		seed:    seed,
	}
}

// SetStart fixes the board restored by R, for sims that hold a single board.
func (g *Game) SetStart(b core.Board) bool {
	bs, ok := g.sim.(boardSim)
	if !ok {
		return false
	}
	g.start, g.hasStart = b, true
	bs.SetBoard(b)
	return true
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.hasStart = false
	g.sim.Reset(seed)
	g.tickOnce = false
}

func (g *Game) restart() {
	if bs, ok := g.sim.(boardSim); ok && g.hasStart {
		bs.SetBoard(g.start)
		g.tickOnce = false
		return
	}
	g.Reset(g.seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.highlight = !g.highlight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if bs, ok := g.sim.(boardSim); ok {
		b := bs.Board()
		ref := b
		if entry, ok := bs.CycleEntry(); ok && g.highlight {
			ref = entry
		}
		g.painter.BlitBoard(screen, b, ref, g.palette, g.scale)
	} else {
		g.painter.Blit(screen, g.sim.Cells(), g.palette.On, g.palette.Off, g.scale)
	}
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
