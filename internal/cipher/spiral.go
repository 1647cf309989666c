package cipher

import "strings"

// Point is a grid coordinate.
type Point struct {
	Row, Col int
}

// heading is a unit step along one axis.
type heading struct {
	dRow, dCol int
}

var (
	north = heading{dRow: -1}
	south = heading{dRow: 1}
	west  = heading{dCol: -1}
	east  = heading{dCol: 1}
)

// leg is one straight segment of a ring, from and to inclusive.
type leg struct {
	from, to Point
	heading  heading
}

// ringLegs returns the four legs of ring k in reading order. Legs whose end
// lies behind their start are empty.
func ringLegs(width, height, k int, dir Direction) [4]leg {
	top, bottom := k, height-1-k
	left, right := k, width-1-k
	if dir == CounterClockwise {
		return [4]leg{
			{from: Point{top, right}, to: Point{top, left}, heading: west},
			{from: Point{top + 1, left}, to: Point{bottom - 1, left}, heading: south},
			{from: Point{bottom, left}, to: Point{bottom, right}, heading: east},
			{from: Point{bottom - 1, right}, to: Point{top + 1, right}, heading: north},
		}
	}
	return [4]leg{
		{from: Point{top, right}, to: Point{bottom, right}, heading: south},
		{from: Point{bottom, right - 1}, to: Point{bottom, left + 1}, heading: west},
		{from: Point{bottom, left}, to: Point{top, left}, heading: north},
		{from: Point{top, left + 1}, to: Point{top, right - 1}, heading: east},
	}
}

// traversal owns the visited layer for one spiral read.
type traversal struct {
	width, height int
	visited       [][]bool
	count         int
	route         []Point
}

func newTraversal(width, height int) *traversal {
	visited := make([][]bool, height)
	for r := range visited {
		visited[r] = make([]bool, width)
	}
	return &traversal{
		width:   width,
		height:  height,
		visited: visited,
		route:   make([]Point, 0, width*height),
	}
}

func (t *traversal) done() bool {
	return t.count == t.width*t.height
}

// walk visits every cell on the segment from..to, stepping by h. Cells that
// are out of range or already visited are passed over.
func (t *traversal) walk(from, to Point, h heading) {
	n := (to.Row-from.Row)*h.dRow + (to.Col-from.Col)*h.dCol + 1
	p := from
	for i := 0; i < n; i++ {
		t.visit(p)
		p.Row += h.dRow
		p.Col += h.dCol
	}
}

func (t *traversal) visit(p Point) {
	if p.Row < 0 || p.Row >= t.height || p.Col < 0 || p.Col >= t.width {
		return
	}
	if t.visited[p.Row][p.Col] {
		return
	}
	t.visited[p.Row][p.Col] = true
	t.count++
	t.route = append(t.route, p)
}

// Route returns the order in which a width×height grid is read for dir.
// Every cell appears exactly once. Non-positive dimensions yield nil.
func Route(width, height int, dir Direction) []Point {
	if width <= 0 || height <= 0 {
		return nil
	}
	t := newTraversal(width, height)
	rings := (min(width, height) + 1) / 2
	for k := 0; k < rings && !t.done(); k++ {
		for _, l := range ringLegs(width, height, k, dir) {
			if t.done() {
				break
			}
			t.walk(l.from, l.to, l.heading)
		}
	}
	return t.route
}

// Encrypt reads g along its spiral route and returns the ciphertext. The
// result is a permutation of g's cells and has length g.Len().
func Encrypt(g *Grid, dir Direction) string {
	if g == nil {
		return ""
	}
	route := Route(g.Width, g.Height, dir)
	var b strings.Builder
	b.Grow(len(route))
	for _, p := range route {
		b.WriteByte(g.cells[p.Row][p.Col])
	}
	return b.String()
}

// Encode fills a grid from message and encrypts it in one step.
func Encode(message string, width, height int, dir Direction, opts ...Option) (string, error) {
	g, err := Fill(message, width, height, opts...)
	if err != nil {
		return "", err
	}
	return Encrypt(g, dir), nil
}
