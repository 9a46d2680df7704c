// Package canvas is the retained-mode drawing surface. Every committed
// shape is kept as a Primitive addressed by a history.Handle and can be
// hidden and shown again without being recreated.
package canvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/makulo1234/termpaint/internal/history"
)

var (
	ErrBadGeometry = errors.New("bad geometry")
	ErrUnknownKind = errors.New("unknown primitive kind")
)

// Canvas holds primitives in z-order. It is not safe for concurrent use;
// hand other goroutines a Snapshot instead.
type Canvas struct {
	cols       int
	rows       int
	background colorful.Color

	prims []*Primitive
	index map[history.Handle]*Primitive
	next  history.Handle
}

var _ history.Surface = (*Canvas)(nil)

// New returns an empty canvas of cols x rows cells.
func New(cols, rows int, background colorful.Color) *Canvas {
	c := &Canvas{
		background: background,
		index:      make(map[history.Handle]*Primitive),
		next:       1,
	}
	c.Resize(cols, rows)
	return c
}

// Create adds a visible shape primitive and returns its handle.
func (c *Canvas) Create(kind Kind, points []Point, style Style) (history.Handle, error) {
	switch kind {
	case KindLine, KindOval, KindRectangle:
		if len(points) != 2 {
			return 0, fmt.Errorf("%s needs 2 points, got %d: %w", kind, len(points), ErrBadGeometry)
		}
	case KindPolygon:
		if len(points) < 2 {
			return 0, fmt.Errorf("polygon needs at least 2 points, got %d: %w", len(points), ErrBadGeometry)
		}
	case KindPoint:
		if len(points) != 1 {
			return 0, fmt.Errorf("point needs 1 point, got %d: %w", len(points), ErrBadGeometry)
		}
	case KindText, KindImage:
		return 0, fmt.Errorf("%s has its own constructor: %w", kind, ErrUnknownKind)
	default:
		return 0, fmt.Errorf("kind %d: %w", kind, ErrUnknownKind)
	}
	return c.add(Primitive{
		Kind:   kind,
		Points: append([]Point(nil), points...),
		Style:  normalizeStyle(style),
	}), nil
}

// CreateText adds a text primitive anchored at its top-left cell.
func (c *Canvas) CreateText(at Point, text string, style Style) (history.Handle, error) {
	if text == "" {
		return 0, fmt.Errorf("empty text: %w", ErrBadGeometry)
	}
	return c.add(Primitive{
		Kind:   KindText,
		Points: []Point{at},
		Text:   text,
		Style:  normalizeStyle(style),
	}), nil
}

// CreateImage adds an image primitive. thumb is src sampled down to one
// pixel per cell and fixes the footprint on the canvas.
func (c *Canvas) CreateImage(at Point, src, thumb image.Image) (history.Handle, error) {
	if src == nil || thumb == nil || thumb.Bounds().Empty() {
		return 0, fmt.Errorf("image has no pixels: %w", ErrBadGeometry)
	}
	return c.add(Primitive{
		Kind:   KindImage,
		Points: []Point{at},
		Image:  src,
		Thumb:  thumb,
		Style:  Style{Width: 1},
	}), nil
}

func (c *Canvas) add(p Primitive) history.Handle {
	p.Handle = c.next
	p.Visible = true
	c.next++
	c.prims = append(c.prims, &p)
	c.index[p.Handle] = &p
	return p.Handle
}

// SetVisible shows or hides a primitive. Unknown handles are ignored.
func (c *Canvas) SetVisible(h history.Handle, visible bool) {
	if p, ok := c.index[h]; ok {
		p.Visible = visible
	}
}

func (c *Canvas) IsVisible(h history.Handle) bool {
	p, ok := c.index[h]
	return ok && p.Visible
}

// Primitive returns a copy of the primitive behind h.
func (c *Canvas) Primitive(h history.Handle) (Primitive, bool) {
	p, ok := c.index[h]
	if !ok {
		return Primitive{}, false
	}
	return p.clone(), true
}

// Len returns the number of primitives, hidden ones included.
func (c *Canvas) Len() int { return len(c.prims) }

// ClearAll deletes every primitive. Handles are not reused.
func (c *Canvas) ClearAll() {
	c.prims = nil
	c.index = make(map[history.Handle]*Primitive)
}

// Resize changes the canvas size. Primitives outside the new area are
// kept and clipped when rendered.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Background() colorful.Color { return c.background }

// Snapshot is an immutable copy of the visible drawing.
type Snapshot struct {
	Cols       int
	Rows       int
	Background colorful.Color
	Primitives []Primitive
}

// Snapshot copies the visible primitives in z-order.
func (c *Canvas) Snapshot() Snapshot {
	s := Snapshot{Cols: c.cols, Rows: c.rows, Background: c.background}
	for _, p := range c.prims {
		if p.Visible {
			s.Primitives = append(s.Primitives, p.clone())
		}
	}
	return s
}

func normalizeStyle(s Style) Style {
	if s.Width < 1 {
		s.Width = 1
	}
	return s
}
