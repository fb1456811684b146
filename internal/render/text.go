package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"bwlife/internal/core"
)

var (
	colorAlive = lipgloss.Color("#2CD7C7")
	colorDead  = lipgloss.Color("#2C4A54")
	colorFrame = lipgloss.Color("#16858E")
)

// Text renders boards for a terminal. Without colour it produces exactly
// core.Board.String, so output stays parseable by core.ParseBoard.
type Text struct {
	color bool
	alive lipgloss.Style
	dead  lipgloss.Style
	frame lipgloss.Style
	title lipgloss.Style
}

// NewText returns a renderer. color enables ANSI styling and a frame.
func NewText(color bool) *Text {
	return &Text{
		color: color,
		alive: lipgloss.NewStyle().Foreground(colorAlive),
		dead:  lipgloss.NewStyle().Foreground(colorDead),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true).Foreground(colorAlive),
	}
}

// ForFile picks colour when f is a terminal.
func ForFile(f *os.File) *Text {
	fd := f.Fd()
	return NewText(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// Color reports whether output is styled.
func (t *Text) Color() bool { return t.color }

// Board draws one board, row 7 on top and column 7 on the left.
func (t *Text) Board(b core.Board) string {
	if !t.color {
		return b.String()
	}
	var sb strings.Builder
	for row := core.Side - 1; row >= 0; row-- {
		for col := core.Side - 1; col >= 0; col-- {
			if b.Cell(row, col) {
				sb.WriteString(t.alive.Render("██"))
			} else {
				sb.WriteString(t.dead.Render("··"))
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return t.frame.Render(sb.String())
}

// Titled draws a board under a one-line caption.
func (t *Text) Titled(title string, b core.Board) string {
	if !t.color {
		return title + "\n" + b.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, t.title.Render(title), t.Board(b))
}

// Row lays boards out side by side, perRow to a line.
func (t *Text) Row(boards []core.Board, perRow int) string {
	if perRow <= 0 {
		perRow = 4
	}
	var blocks []string
	for start := 0; start < len(boards); start += perRow {
		end := min(start+perRow, len(boards))
		parts := make([]string, 0, 2*(end-start))
		for i, b := range boards[start:end] {
			if i > 0 {
				parts = append(parts, "  ")
			}
			parts = append(parts, t.Board(b))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(blocks, "\n\n")
}
