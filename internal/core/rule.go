package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Neighborhood selects which surrounding cells are counted.
type Neighborhood uint8

const (
	// Moore counts all eight surrounding cells.
	Moore Neighborhood = iota
	// VonNeumann counts the four orthogonal cells.
	VonNeumann
	// Diagonal counts the four diagonal cells.
	Diagonal
)

// Size returns the number of neighbours counted.
func (n Neighborhood) Size() int {
	if n == Moore {
		return 8
	}
	return 4
}

// Offsets lists the (row, col) displacements of each neighbour.
func (n Neighborhood) Offsets() [][2]int {
	switch n {
	case VonNeumann:
		return [][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	case Diagonal:
		return [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	default:
		return [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	}
}

// Neighbors returns the single-cell boards of every neighbour of the given
// bit index.
func (n Neighborhood) Neighbors(bit int) []Board {
	row, col := bit/Side, bit%Side
	offs := n.Offsets()
	out := make([]Board, len(offs))
	for i, o := range offs {
		out[i] = Bit(row+o[0], col+o[1])
	}
	return out
}

func (n Neighborhood) String() string {
	switch n {
	case Moore:
		return "moore"
	case VonNeumann:
		return "vonneumann"
	case Diagonal:
		return "diagonal"
	}
	return fmt.Sprintf("neighborhood(%d)", uint8(n))
}

// ParseNeighborhood accepts the names produced by String plus a few short forms.
func ParseNeighborhood(s string) (Neighborhood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "moore", "m":
		return Moore, nil
	case "vonneumann", "von-neumann", "von_neumann", "v", "vn":
		return VonNeumann, nil
	case "diagonal", "diag", "d", "x":
		return Diagonal, nil
	}
	return 0, fmt.Errorf("core: unknown neighborhood %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (n Neighborhood) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Neighborhood) UnmarshalText(text []byte) error {
	v, err := ParseNeighborhood(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Rule is an outer-totalistic truth table. Bit k of Birth is set when a dead
// cell with k live neighbours becomes alive; bit k of Survive is set when a
// live cell with k live neighbours stays alive.
type Rule struct {
	Birth   uint16
	Survive uint16
}

// Life is Conway's B3/S23.
var Life = Rule{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// ErrBadRule is returned when a rule string cannot be parsed or does not fit
// the neighbourhood.
var ErrBadRule = errors.New("core: invalid rule")

// Births reports whether a dead cell with k neighbours is born.
func (r Rule) Births(k int) bool { return k >= 0 && k <= 8 && r.Birth>>uint(k)&1 != 0 }

// Survives reports whether a live cell with k neighbours survives.
func (r Rule) Survives(k int) bool { return k >= 0 && k <= 8 && r.Survive>>uint(k)&1 != 0 }

// Next returns the next state of a cell.
func (r Rule) Next(alive bool, k int) bool {
	if alive {
		return r.Survives(k)
	}
	return r.Births(k)
}

// Fits reports whether every table entry is reachable in the neighbourhood.
func (r Rule) Fits(n Neighborhood) bool {
	limit := uint16(1)<<uint(n.Size()+1) - 1
	return r.Birth&^limit == 0 && r.Survive&^limit == 0
}

// String formats the rule in B/S notation, e.g. "B3/S23".
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for k := 0; k <= 8; k++ {
		if r.Births(k) {
			sb.WriteByte(byte('0' + k))
		}
	}
	sb.WriteString("/S")
	for k := 0; k <= 8; k++ {
		if r.Survives(k) {
			sb.WriteByte(byte('0' + k))
		}
	}
	return sb.String()
}

// ParseRule reads B/S notation ("B3/S23", "b36/s23") or the name of a rule
// from Rules.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if r, ok := Rules[strings.ToLower(s)]; ok {
		return r, nil
	}
	parts := strings.Split(strings.ToUpper(s), "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q", ErrBadRule, s)
	}
	var r Rule
	for _, p := range parts {
		if p == "" {
			return Rule{}, fmt.Errorf("%w: %q", ErrBadRule, s)
		}
		var dst *uint16
		switch p[0] {
		case 'B':
			dst = &r.Birth
		case 'S':
			dst = &r.Survive
		default:
			return Rule{}, fmt.Errorf("%w: %q", ErrBadRule, s)
		}
		for _, c := range p[1:] {
			if c < '0' || c > '8' {
				return Rule{}, fmt.Errorf("%w: digit %q in %q", ErrBadRule, c, s)
			}
			*dst |= 1 << uint(c-'0')
		}
	}
	return r, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) error {
	v, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Rules holds well known rules by lowercase name.
var Rules = map[string]Rule{
	"life":       Life,
	"highlife":   {Birth: 1<<3 | 1<<6, Survive: 1<<2 | 1<<3},
	"seeds":      {Birth: 1 << 2},
	"daynight":   {Birth: 1<<3 | 1<<6 | 1<<7 | 1<<8, Survive: 1<<3 | 1<<4 | 1<<6 | 1<<7 | 1<<8},
	"replicator": {Birth: 1<<1 | 1<<3 | 1<<5 | 1<<7, Survive: 1<<1 | 1<<3 | 1<<5 | 1<<7},
	"2x2":        {Birth: 1<<3 | 1<<6, Survive: 1<<1 | 1<<2 | 1<<5},
	"maze":       {Birth: 1 << 3, Survive: 0x3e},
	"identity":   {Survive: 0x1ff},
}

// RuleNames returns the keys of Rules in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(Rules))
	for name := range Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
