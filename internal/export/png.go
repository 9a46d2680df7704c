package export

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/imageio"
)

func writePNG(w io.Writer, snap canvas.Snapshot, opts Options) error {
	l := newLayout(snap, opts)

	dc := gg.NewContext(int(math.Ceil(l.width)), int(math.Ceil(l.height)))
	dc.SetColor(snap.Background)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	face, err := loadFace(gomono.TTF, l.fontSize())
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	for _, p := range snap.Primitives {
		drawPNG(dc, l, p)
	}

	return dc.EncodePNG(w)
}

func loadFace(ttf []byte, size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawPNG(dc *gg.Context, l layout, p canvas.Primitive) {
	dc.SetColor(p.Style.Color.Clamped())
	dc.SetLineWidth(float64(p.Style.Width))

	switch p.Kind {
	case canvas.KindLine:
		x1, y1 := l.center(p.Points[0])
		x2, y2 := l.center(p.Points[1])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	case canvas.KindRectangle:
		x, y, w, h := l.box(p.Points[0], p.Points[1])
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
	case canvas.KindOval:
		x, y, w, h := l.box(p.Points[0], p.Points[1])
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
		dc.Stroke()
	case canvas.KindPolygon:
		for i, pt := range p.Points {
			x, y := l.center(pt)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	case canvas.KindPoint:
		x, y := l.center(p.Points[0])
		dc.DrawCircle(x, y, math.Max(float64(p.Style.Width)/2, 1))
		dc.Fill()
	case canvas.KindText:
		x, y := l.corner(p.Points[0])
		for i, line := range textLines(p.Text) {
			dc.DrawString(line, x, y+float64(i+1)*l.ch-l.ch*0.25)
		}
	case canvas.KindImage:
		x, y := l.corner(p.Points[0])
		b := p.Thumb.Bounds()
		w := int(math.Round(float64(b.Dx()) * l.cw))
		h := int(math.Round(float64(b.Dy()) * l.ch))
		dc.DrawImage(imageio.Scale(p.Image, w, h), int(x), int(y))
	}
}
