package render

import (
	"image/color"

	"bwlife/internal/core"
)

// Palette colours live and dead cells. Highlight marks cells that differ
// from a reference board, such as the first board of a detected cycle.
type Palette struct {
	On        color.Color
	Off       color.Color
	Highlight color.Color
}

// DefaultPalette is white on black with amber highlights.
var DefaultPalette = Palette{
	On:        color.White,
	Off:       color.Black,
	Highlight: color.RGBA{R: 244, G: 208, B: 63, A: 255},
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	onPx, offPx := rgba(on), rgba(off)
	for i, c := range cells {
		px := offPx
		if c != 0 {
			px = onPx
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}

// fillBoardRGBA paints an 8x8 board tiled over a w x h pixel buffer, one
// pixel per cell, in the orientation of core.ByteGrid.Load. Cells that differ
// from ref use the highlight colour.
func fillBoardRGBA(buf []byte, w, h int, b, ref core.Board, p Palette) {
	onPx, offPx, hiPx := rgba(p.On), rgba(p.Off), rgba(p.Highlight)
	diff := b ^ ref
	for y := 0; y < h; y++ {
		row := core.Side - 1 - y%core.Side
		for x := 0; x < w; x++ {
			col := core.Side - 1 - x%core.Side
			px := offPx
			switch {
			case diff.Cell(row, col) && p.Highlight != nil:
				px = hiPx
			case b.Cell(row, col):
				px = onPx
			}
			base := (y*w + x) * 4
			copy(buf[base:base+4], px[:])
		}
	}
}
