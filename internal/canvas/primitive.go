package canvas

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/makulo1234/termpaint/internal/history"
)

type Kind int

const (
	KindLine Kind = iota + 1
	KindOval
	KindRectangle
	KindPolygon
	KindPoint
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindOval:
		return "oval"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	case KindPoint:
		return "point"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Point is a position in canvas cells.
type Point struct {
	X, Y int
}

// Style is how a primitive is stroked.
type Style struct {
	Color colorful.Color
	// Width is the stroke width in export pixels, 1..10.
	Width int
}

// Primitive is one retained drawing element.
type Primitive struct {
	Handle history.Handle
	Kind   Kind
	// Points holds the geometry. Ovals and rectangles store two opposite
	// corners of their bounding box; text and images store their top-left.
	Points []Point
	Text   string
	// Image is the full-resolution source of an imported image and Thumb
	// its one-pixel-per-cell sample.
	Image   image.Image
	Thumb   image.Image
	Style   Style
	Visible bool
}

// Bounds returns the bounding box of the primitive in cells, inclusive of
// Min and exclusive of Max.
func (p *Primitive) Bounds() image.Rectangle {
	switch p.Kind {
	case KindText:
		at := p.Points[0]
		w, h := textExtent(p.Text)
		return image.Rect(at.X, at.Y, at.X+w, at.Y+h)
	case KindImage:
		at := p.Points[0]
		b := p.Thumb.Bounds()
		return image.Rect(at.X, at.Y, at.X+b.Dx(), at.Y+b.Dy())
	}
	r := image.Rectangle{Min: image.Pt(p.Points[0].X, p.Points[0].Y), Max: image.Pt(p.Points[0].X+1, p.Points[0].Y+1)}
	for _, pt := range p.Points[1:] {
		r = r.Union(image.Rect(pt.X, pt.Y, pt.X+1, pt.Y+1))
	}
	return r
}

func (p Primitive) clone() Primitive {
	p.Points = append([]Point(nil), p.Points...)
	return p
}

func textExtent(text string) (w, h int) {
	h = 1
	line := 0
	for _, r := range text {
		if r == '\n' {
			h++
			line = 0
			continue
		}
		line++
		if line > w {
			w = line
		}
	}
	return w, h
}
