package export

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/imageio"
)

// psProlog defines the procedures the page body uses.
const psProlog = `/ellipse { % cx cy rx ry
  matrix currentmatrix 5 1 roll
  4 2 roll translate scale
  0 0 1 0 360 arc
  setmatrix
} def
1 setlinecap
1 setlinejoin
`

func writePostScript(w io.Writer, snap canvas.Snapshot, opts Options) error {
	l := newLayout(snap, opts)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%%!PS-Adobe-3.0\n")
	fmt.Fprintf(bw, "%%%%Creator: termpaint\n")
	fmt.Fprintf(bw, "%%%%BoundingBox: 0 0 %d %d\n", int(math.Ceil(l.width)), int(math.Ceil(l.height)))
	fmt.Fprintf(bw, "%%%%Pages: 1\n%%%%EndComments\n")
	bw.WriteString(psProlog)
	fmt.Fprintf(bw, "%%%%Page: 1 1\n")

	r, g, b := snap.Background.Clamped().RGB255()
	fmt.Fprintf(bw, "%s setrgbcolor\n", psRGB(int(r), int(g), int(b)))
	fmt.Fprintf(bw, "0 0 %.2f %.2f rectfill\n", l.width, l.height)
	fmt.Fprintf(bw, "/Courier findfont %.2f scalefont setfont\n", l.fontSize())

	for _, p := range snap.Primitives {
		drawPostScript(bw, l, p)
	}

	fmt.Fprintf(bw, "showpage\n%%%%EOF\n")
	return bw.Flush()
}

// flip converts a top-left-origin y to PostScript's bottom-left origin.
func (l layout) flip(y float64) float64 {
	return l.height - y
}

func drawPostScript(w *bufio.Writer, l layout, p canvas.Primitive) {
	fmt.Fprintf(w, "%s setrgbcolor %d setlinewidth\n", psRGB(rgb255(p)), p.Style.Width)

	switch p.Kind {
	case canvas.KindLine:
		x1, y1 := l.center(p.Points[0])
		x2, y2 := l.center(p.Points[1])
		fmt.Fprintf(w, "newpath %.2f %.2f moveto %.2f %.2f lineto stroke\n", x1, l.flip(y1), x2, l.flip(y2))
	case canvas.KindRectangle:
		x, y, bw, bh := l.box(p.Points[0], p.Points[1])
		fmt.Fprintf(w, "%.2f %.2f %.2f %.2f rectstroke\n", x, l.flip(y+bh), bw, bh)
	case canvas.KindOval:
		x, y, bw, bh := l.box(p.Points[0], p.Points[1])
		fmt.Fprintf(w, "newpath %.2f %.2f %.2f %.2f ellipse stroke\n", x+bw/2, l.flip(y+bh/2), math.Max(bw/2, 0.01), math.Max(bh/2, 0.01))
	case canvas.KindPolygon:
		w.WriteString("newpath")
		for i, pt := range p.Points {
			x, y := l.center(pt)
			op := "lineto"
			if i == 0 {
				op = "moveto"
			}
			fmt.Fprintf(w, " %.2f %.2f %s", x, l.flip(y), op)
		}
		w.WriteString(" closepath stroke\n")
	case canvas.KindPoint:
		x, y := l.center(p.Points[0])
		fmt.Fprintf(w, "newpath %.2f %.2f %.2f 0 360 arc fill\n", x, l.flip(y), math.Max(float64(p.Style.Width)/2, 1))
	case canvas.KindText:
		x, y := l.corner(p.Points[0])
		for i, line := range textLines(p.Text) {
			baseline := y + float64(i+1)*l.ch - l.ch*0.25
			fmt.Fprintf(w, "%.2f %.2f moveto (%s) show\n", x, l.flip(baseline), psEscape(line))
		}
	case canvas.KindImage:
		writePostScriptImage(w, l, p)
	}
}

func writePostScriptImage(w *bufio.Writer, l layout, p canvas.Primitive) {
	x, y := l.corner(p.Points[0])
	b := p.Thumb.Bounds()
	bw := float64(b.Dx()) * l.cw
	bh := float64(b.Dy()) * l.ch
	pw, ph := max(int(math.Round(bw)), 1), max(int(math.Round(bh)), 1)
	img := imageio.Scale(p.Image, pw, ph)

	fmt.Fprintf(w, "gsave\n%.2f %.2f translate %.2f %.2f scale\n", x, l.flip(y+bh), bw, bh)
	fmt.Fprintf(w, "/picstr %d string def\n", pw*3)
	fmt.Fprintf(w, "%d %d 8 [%d 0 0 %d 0 %d] {currentfile picstr readhexstring pop} false 3 colorimage\n", pw, ph, pw, -ph, ph)

	ib := img.Bounds()
	for yy := ib.Min.Y; yy < ib.Max.Y; yy++ {
		for xx := ib.Min.X; xx < ib.Max.X; xx++ {
			c := color.RGBAModel.Convert(img.At(xx, yy)).(color.RGBA)
			fmt.Fprintf(w, "%02x%02x%02x", c.R, c.G, c.B)
		}
		w.WriteByte('\n')
	}
	w.WriteString("grestore\n")
}

func psRGB(r, g, b int) string {
	return fmt.Sprintf("%.3f %.3f %.3f", float64(r)/255, float64(g)/255, float64(b)/255)
}

var psEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func psEscape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 32 || r > 126 {
			r = '?'
		}
		sb.WriteRune(r)
	}
	return psEscaper.Replace(sb.String())
}
