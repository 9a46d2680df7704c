// Package export writes the visible drawing to image and document files.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/makulo1234/termpaint/internal/canvas"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format int

const (
	FormatPNG Format = iota + 1
	FormatPDF
	FormatPostScript
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatPDF:
		return "pdf"
	case FormatPostScript:
		return "ps"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions Save understands.
var Extensions = []string{".ps", ".pdf", ".png"}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	case ".ps", ".eps":
		return FormatPostScript, nil
	}
	return 0, fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Options controls how cells map to output units.
type Options struct {
	// CellWidth and CellHeight are the size of one canvas cell in pixels
	// (PNG) or points (PDF, PostScript).
	CellWidth  float64
	CellHeight float64
}

func DefaultOptions() Options {
	return Options{CellWidth: 8, CellHeight: 16}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.CellWidth <= 0 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = d.CellHeight
	}
	return o
}

// Save writes snap to path in the format named by its extension.
func Save(path string, snap canvas.Snapshot, opts Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, format, snap, opts); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// Write encodes snap to w.
func Write(w io.Writer, format Format, snap canvas.Snapshot, opts Options) error {
	opts = opts.normalized()
	switch format {
	case FormatPNG:
		return writePNG(w, snap, opts)
	case FormatPDF:
		return writePDF(w, snap, opts)
	case FormatPostScript:
		return writePostScript(w, snap, opts)
	}
	return fmt.Errorf("format %d: %w", format, ErrUnsupportedFormat)
}

// layout converts cell coordinates to output coordinates with the origin
// at the top-left corner.
type layout struct {
	cw, ch float64
	width  float64
	height float64
}

func newLayout(snap canvas.Snapshot, opts Options) layout {
	return layout{
		cw:     opts.CellWidth,
		ch:     opts.CellHeight,
		width:  float64(snap.Cols) * opts.CellWidth,
		height: float64(snap.Rows) * opts.CellHeight,
	}
}

// center returns the middle of cell p.
func (l layout) center(p canvas.Point) (float64, float64) {
	return float64(p.X)*l.cw + l.cw/2, float64(p.Y)*l.ch + l.ch/2
}

// corner returns the top-left of cell p.
func (l layout) corner(p canvas.Point) (float64, float64) {
	return float64(p.X) * l.cw, float64(p.Y) * l.ch
}

// box returns the top-left and size of the box spanned by the centers of
// cells a and b.
func (l layout) box(a, b canvas.Point) (x, y, w, h float64) {
	x0, y0 := l.center(a)
	x1, y1 := l.center(b)
	return math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1 - x0), math.Abs(y1 - y0)
}

func (l layout) fontSize() float64 {
	return l.ch * 0.8
}

func textLines(s string) []string {
	return strings.Split(s, "\n")
}

func rgb255(p canvas.Primitive) (int, int, int) {
	r, g, b := p.Style.Color.Clamped().RGB255()
	return int(r), int(g), int(b)
}
