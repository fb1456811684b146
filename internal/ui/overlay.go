//go:build ebiten

package ui

import (
	"image/color"

	"bwlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight = 14
	padding    = 4
)

// Overlay draws the sim's status line on a translucent strip along the top
// of the view. Tab toggles it.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool

	strip *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, show: true}
	o.strip = ebiten.NewImage(1, 1)
	o.strip.Fill(color.RGBA{A: 170})
	return o
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	status, ok := o.sim.(core.Status)
	if !ok {
		return
	}
	line := status.Status()
	w := screen.Bounds().Dx()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), lineHeight+2*padding)
	screen.DrawImage(o.strip, op)

	text.Draw(screen, line, basicfont.Face7x13, padding, padding+basicfont.Face7x13.Ascent, color.White)
}
