package cipher

import (
	"fmt"
	"strings"
)

// Filler pads the grid once the message has no letters left.
const Filler byte = 'X'

// Grid is a rectangular block of uppercase letters, stored row-major.
// Width is the row length and Height the number of rows. A Grid is not
// modified after Fill returns it.
type Grid struct {
	Width, Height int
	cells         [][]byte
}

// Option customizes Fill.
type Option func(*fillOptions)

type fillOptions struct {
	filler byte
}

// WithFiller replaces the default padding letter.
func WithFiller(filler byte) Option {
	return func(o *fillOptions) {
		o.filler = filler
	}
}

// ParseFiller accepts a single letter, in either case, and returns it
// uppercased for use with WithFiller.
func ParseFiller(s string) (byte, error) {
	t := strings.TrimSpace(s)
	if len(t) != 1 || !isUpper(toUpper(t[0])) {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidFiller, s)
	}
	return toUpper(t[0]), nil
}

// Fill lays the alphabetic characters of message into a width×height grid
// in row-major order, uppercasing them. Non-letters are skipped and never
// take a cell. Cells left over once the letters run out get the filler;
// letters beyond width*height are never read.
//
// Returns ErrEmptyGrid if either dimension is not positive and
// ErrInvalidFiller if a WithFiller option is not in A-Z.
func Fill(message string, width, height int, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, width, height)
	}
	o := fillOptions{filler: Filler}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if !isUpper(o.filler) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidFiller, o.filler)
	}

	cells := make([][]byte, height)
	cursor := 0
	for r := 0; r < height; r++ {
		row := make([]byte, width)
		for c := range row {
			cursor = nextLetter(message, cursor)
			if cursor < len(message) {
				row[c] = toUpper(message[cursor])
				cursor++
				continue
			}
			row[c] = o.filler
		}
		cells[r] = row
	}
	return &Grid{Width: width, Height: height, cells: cells}, nil
}

// At returns the letter at (row, col). It panics when out of range, like a
// slice index.
func (g *Grid) At(row, col int) byte {
	return g.cells[row][col]
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// Len is the number of cells, Width*Height.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// Rows returns each row as a string, top to bottom.
func (g *Grid) Rows() []string {
	rows := make([]string, len(g.cells))
	for i, row := range g.cells {
		rows[i] = string(row)
	}
	return rows
}

// Letters returns the grid contents in row-major order.
func (g *Grid) Letters() string {
	return strings.Join(g.Rows(), "")
}

// String renders the grid one row per line with letters separated by a
// space.
func (g *Grid) String() string {
	var b strings.Builder
	for r, row := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, ch := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// nextLetter returns the index of the first ASCII letter at or after i, or
// len(s) if there is none.
func nextLetter(s string, i int) int {
	for i < len(s) && !isLetter(s[i]) {
		i++
	}
	return i
}

func isLetter(b byte) bool {
	return isUpper(b) || (b >= 'a' && b <= 'z')
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
