package canvas

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BlockRune fills a painted cell.
const BlockRune = '█'

// Cell is one rendered character cell.
type Cell struct {
	Rune  rune
	Color colorful.Color
	// Set is false for cells nothing was drawn on.
	Set bool
}

// Grid is a rendered canvas indexed as Grid[row][col].
type Grid [][]Cell

// Render rasterizes the visible primitives, then overlay on top of them.
func (c *Canvas) Render(overlay ...Primitive) Grid {
	g := newGrid(c.cols, c.rows)
	area := image.Rect(0, 0, c.cols, c.rows)
	for _, p := range c.prims {
		if p.Visible && onGrid(p, area) {
			g.draw(p)
		}
	}
	for i := range overlay {
		g.draw(&overlay[i])
	}
	return g
}

// onGrid reports whether any cell p paints can fall inside area.
func onGrid(p *Primitive, area image.Rectangle) bool {
	r := brushRadius(p.Style.Width)
	return p.Bounds().Inset(-r).Overlaps(area)
}

func newGrid(cols, rows int) Grid {
	g := make(Grid, rows)
	for y := range g {
		g[y] = make([]Cell, cols)
	}
	return g
}

func (g Grid) inside(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

func (g Grid) set(x, y int, r rune, col colorful.Color) {
	if g.inside(x, y) {
		g[y][x] = Cell{Rune: r, Color: col, Set: true}
	}
}

// brushRadius maps a stroke width to the half-size of the square stamp.
func brushRadius(width int) int {
	if width <= 1 {
		return 0
	}
	return (width - 1) / 4
}

func (g Grid) stamp(x, y, radius int, col colorful.Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			g.set(x+dx, y+dy, BlockRune, col)
		}
	}
}

func (g Grid) draw(p *Primitive) {
	col := p.Style.Color
	r := brushRadius(p.Style.Width)

	switch p.Kind {
	case KindLine:
		g.line(p.Points[0], p.Points[1], r, col)
	case KindRectangle:
		a, b := p.Points[0], p.Points[1]
		g.line(Point{a.X, a.Y}, Point{b.X, a.Y}, r, col)
		g.line(Point{b.X, a.Y}, Point{b.X, b.Y}, r, col)
		g.line(Point{b.X, b.Y}, Point{a.X, b.Y}, r, col)
		g.line(Point{a.X, b.Y}, Point{a.X, a.Y}, r, col)
	case KindPolygon:
		n := len(p.Points)
		for i := 0; i < n; i++ {
			g.line(p.Points[i], p.Points[(i+1)%n], r, col)
		}
	case KindOval:
		g.oval(p.Points[0], p.Points[1], r, col)
	case KindPoint:
		g.stamp(p.Points[0].X, p.Points[0].Y, r, col)
	case KindText:
		at := p.Points[0]
		x, y := at.X, at.Y
		for _, ch := range p.Text {
			if ch == '\n' {
				x = at.X
				y++
				continue
			}
			g.set(x, y, ch, col)
			x++
		}
	case KindImage:
		at := p.Points[0]
		b := p.Thumb.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c, ok := colorful.MakeColor(p.Thumb.At(x, y))
				if !ok {
					continue
				}
				g.set(at.X+x-b.Min.X, at.Y+y-b.Min.Y, BlockRune, c)
			}
		}
	}
}

// line plots a Bresenham line.
func (g Grid) line(a, b Point, radius int, col colorful.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		g.stamp(x, y, radius, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// oval plots the ellipse inscribed in the box spanned by a and b.
func (g Grid) oval(a, b Point, radius int, col colorful.Color) {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	if x0 == x1 || y0 == y1 {
		g.line(Point{x0, y0}, Point{x1, y1}, radius, col)
		return
	}

	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := float64(x1-x0) / 2
	ry := float64(y1-y0) / 2

	steps := max(16, int(4*(rx+ry)))
	prev := Point{int(math.Round(cx + rx)), int(math.Round(cy))}
	for i := 1; i <= steps; i++ {
		t := 2 * math.Pi * float64(i) / float64(steps)
		pt := Point{int(math.Round(cx + rx*math.Cos(t))), int(math.Round(cy + ry*math.Sin(t)))}
		g.line(prev, pt, radius, col)
		prev = pt
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
