package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Renderers consume it; boards are loaded into it one cell per byte.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}

// Load tiles the board across the grid. Screen row 0 shows board row 7 and
// screen column 0 shows board column 7, matching Board.String.
func (g *ByteGrid) Load(b Board) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var v uint8
			if b.Cell(Side-1-y%Side, Side-1-x%Side) {
				v = 1
			}
			g.data[g.Index(x, y)] = v
		}
	}
}

// Board reads the top-left 8x8 window back into a Board.
func (g *ByteGrid) Board() Board {
	var b Board
	for y := 0; y < Side && y < g.H; y++ {
		for x := 0; x < Side && x < g.W; x++ {
			if g.data[g.Index(x, y)] != 0 {
				b = b.With(Side-1-y, Side-1-x, true)
			}
		}
	}
	return b
}
