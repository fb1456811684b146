package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/core"
)

func TestPlainBoardMatchesString(t *testing.T) {
	txt := NewText(false)
	assert.False(t, txt.Color())

	b := core.Board(0x0000001c00000000)
	assert.Equal(t, b.String(), txt.Board(b))
	assert.Equal(t, "blinker\n"+b.String(), txt.Titled("blinker", b))

	parsed, err := core.ParseBoard(txt.Board(b))
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
}

func TestPlainRow(t *testing.T) {
	txt := NewText(false)
	a, b := core.Bit(7, 7), core.Bit(0, 0)
	out := txt.Row([]core.Board{a, b, a}, 2)

	blocks := strings.Split(out, "\n\n")
	require.Len(t, blocks, 2)

	lines := strings.Split(blocks[0], "\n")
	require.Len(t, lines, core.Side)
	aLines := strings.Split(a.String(), "\n")
	bLines := strings.Split(b.String(), "\n")
	for i := range lines {
		assert.Equal(t, aLines[i]+"  "+bLines[i], lines[i])
	}
	assert.Equal(t, a.String(), blocks[1])
}

func TestColoredBoard(t *testing.T) {
	txt := NewText(true)
	out := txt.Board(core.Bit(3, 3))
	assert.Equal(t, 1, strings.Count(out, "██"))
	assert.Equal(t, core.Cells-1, strings.Count(out, "··"))
}

func pixel(buf []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestFillBoardRGBA(t *testing.T) {
	const w, h = 2 * core.Side, core.Side
	buf := make([]byte, w*h*4)
	on, off, hi := rgba(DefaultPalette.On), rgba(DefaultPalette.Off), rgba(DefaultPalette.Highlight)

	b := core.Bit(7, 7) | core.Bit(0, 0)
	fillBoardRGBA(buf, w, h, b, b, DefaultPalette)
	assert.Equal(t, on, pixel(buf, w, 0, 0), "top-left is row 7, column 7")
	assert.Equal(t, on, pixel(buf, w, core.Side, 0), "tiles repeat")
	assert.Equal(t, on, pixel(buf, w, core.Side-1, core.Side-1))
	assert.Equal(t, off, pixel(buf, w, 1, 0))

	fillBoardRGBA(buf, w, h, b, core.Bit(7, 7), DefaultPalette)
	assert.Equal(t, on, pixel(buf, w, 0, 0))
	assert.Equal(t, hi, pixel(buf, w, core.Side-1, core.Side-1))

	plain := DefaultPalette
	plain.Highlight = nil
	fillBoardRGBA(buf, w, h, b, 0, plain)
	assert.Equal(t, on, pixel(buf, w, core.Side-1, core.Side-1))
}

func TestFillBinaryRGBA(t *testing.T) {
	cells := []uint8{0, 1, 2}
	buf := make([]byte, len(cells)*4)
	red := color.RGBA{R: 255, A: 255}
	fillBinaryRGBA(buf, cells, red, color.Black)
	assert.Equal(t, [4]byte{0, 0, 0, 255}, pixel(buf, 3, 0, 0))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixel(buf, 3, 1, 0))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixel(buf, 3, 2, 0))
}
