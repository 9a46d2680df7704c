package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"math"

	"codeberg.org/go-pdf/fpdf"

	"github.com/makulo1234/termpaint/internal/canvas"
	"github.com/makulo1234/termpaint/internal/imageio"
)

func writePDF(w io.Writer, snap canvas.Snapshot, opts Options) error {
	l := newLayout(snap, opts)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.width, Ht: l.height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r, g, b := snap.Background.Clamped().RGB255()
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.Rect(0, 0, l.width, l.height, "F")

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.SetFont("Courier", "", l.fontSize())
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, p := range snap.Primitives {
		if err := drawPDF(pdf, l, p, i, tr); err != nil {
			return err
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

func drawPDF(pdf *fpdf.Fpdf, l layout, p canvas.Primitive, seq int, tr func(string) string) error {
	r, g, b := rgb255(p)
	pdf.SetDrawColor(r, g, b)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(r, g, b)
	pdf.SetLineWidth(float64(p.Style.Width))

	switch p.Kind {
	case canvas.KindLine:
		x1, y1 := l.center(p.Points[0])
		x2, y2 := l.center(p.Points[1])
		pdf.Line(x1, y1, x2, y2)
	case canvas.KindRectangle:
		x, y, w, h := l.box(p.Points[0], p.Points[1])
		pdf.Rect(x, y, w, h, "D")
	case canvas.KindOval:
		x, y, w, h := l.box(p.Points[0], p.Points[1])
		pdf.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, "D")
	case canvas.KindPolygon:
		pts := make([]fpdf.PointType, len(p.Points))
		for i, pt := range p.Points {
			pts[i].X, pts[i].Y = l.center(pt)
		}
		pdf.Polygon(pts, "D")
	case canvas.KindPoint:
		x, y := l.center(p.Points[0])
		pdf.Circle(x, y, math.Max(float64(p.Style.Width)/2, 1), "F")
	case canvas.KindText:
		x, y := l.corner(p.Points[0])
		for i, line := range textLines(p.Text) {
			pdf.Text(x, y+float64(i+1)*l.ch-l.ch*0.25, tr(line))
		}
	case canvas.KindImage:
		x, y := l.corner(p.Points[0])
		bounds := p.Thumb.Bounds()
		w := float64(bounds.Dx()) * l.cw
		h := float64(bounds.Dy()) * l.ch

		var buf bytes.Buffer
		scaled := imageio.Scale(p.Image, int(math.Round(w)), int(math.Round(h)))
		if err := png.Encode(&buf, scaled); err != nil {
			return fmt.Errorf("encoding image %d: %w", seq, err)
		}
		name := fmt.Sprintf("img%d", seq)
		imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.ImageOptions(name, x, y, w, h, false, imgOpts, 0, "")
	}
	return nil
}
