package core

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Board is an 8x8 toroidal grid of binary cells. Cell (row, col) is stored in
// bit 8*row+col.
type Board uint64

const (
	// Side is the width and height of a Board.
	Side = 8
	// Cells is the number of cells on a Board.
	Cells = Side * Side

	// Full has every cell alive.
	Full Board = ^Board(0)

	lowCols = 0x0101010101010101
)

// Bit returns the board with only cell (row, col) alive.
func Bit(row, col int) Board {
	return 1 << uint((row&7)*Side+(col&7))
}

// Cell reports whether cell (row, col) is alive. Coordinates wrap.
func (b Board) Cell(row, col int) bool {
	return b&Bit(row, col) != 0
}

// With returns b with cell (row, col) set to alive.
func (b Board) With(row, col int, alive bool) Board {
	if alive {
		return b | Bit(row, col)
	}
	return b &^ Bit(row, col)
}

// Row returns the eight cells of the given row, column 0 in the low bit.
func (b Board) Row(row int) uint8 {
	return uint8(b >> uint((row&7)*Side))
}

// Population counts the live cells.
func (b Board) Population() int {
	return bits.OnesCount64(uint64(b))
}

// XRoll cyclically shifts every row by n columns towards column 0.
func (b Board) XRoll(n int) Board {
	x := uint(n & 7)
	if x == 0 {
		return b
	}
	mask := Board(lowCols * (0xff >> x))
	return (b>>x)&mask | (b<<(Side-x))&^mask
}

// YRoll cyclically shifts the board by n rows towards row 0.
func (b Board) YRoll(n int) Board {
	return Board(bits.RotateLeft64(uint64(b), -Side*(n&7)))
}

// Hash maps the board into [0, 2^nbits) with a multiplicative hash.
func (b Board) Hash(nbits uint) uint32 {
	if nbits == 0 {
		return 0
	}
	return uint32(uint64(b) * 0xff51afd7ed558ccd >> (64 - nbits))
}

// Hex formats the board as a zero padded hexadecimal literal.
func (b Board) Hex() string {
	return fmt.Sprintf("0x%016x", uint64(b))
}

// String draws the board as eight lines of '#' and '.', row 7 first and
// column 7 leftmost.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Side * (Side + 1))
	for row := Side - 1; row >= 0; row-- {
		for col := Side - 1; col >= 0; col-- {
			if b.Cell(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ErrBadBoard is returned by ParseBoard for input it cannot interpret.
var ErrBadBoard = errors.New("core: malformed board")

// ParseBoard reads a board from a hexadecimal literal (0x...), a decimal
// integer, or eight text rows in the layout produced by String. In text form
// '#', '*', 'o' and '1' are alive and '.', '_' and '0' are dead.
func ParseBoard(s string) (Board, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrBadBoard)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrBadBoard, err)
		}
		return Board(v), nil
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Board(v), nil
	}

	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '/' || r == ' ' })
	if len(lines) != Side {
		return 0, fmt.Errorf("%w: want %d rows, got %d", ErrBadBoard, Side, len(lines))
	}
	var b Board
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) != Side {
			return 0, fmt.Errorf("%w: row %d has %d cells", ErrBadBoard, i, len(line))
		}
		row := Side - 1 - i
		for j := 0; j < Side; j++ {
			col := Side - 1 - j
			switch line[j] {
			case '#', '*', 'o', 'O', '1':
				b = b.With(row, col, true)
			case '.', '_', '0':
			default:
				return 0, fmt.Errorf("%w: unexpected %q at row %d", ErrBadBoard, line[j], i)
			}
		}
	}
	return b, nil
}
