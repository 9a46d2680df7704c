package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/makulo1234/termpaint/internal/canvas"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

func sampleSnapshot(t *testing.T) canvas.Snapshot {
	t.Helper()
	c := canvas.New(10, 6, white)
	style := canvas.Style{Color: black, Width: 2}

	_, err := c.Create(canvas.KindLine, []canvas.Point{{X: 0, Y: 0}, {X: 9, Y: 5}}, style)
	require.NoError(t, err)
	_, err = c.Create(canvas.KindRectangle, []canvas.Point{{X: 1, Y: 1}, {X: 4, Y: 3}}, style)
	require.NoError(t, err)
	_, err = c.Create(canvas.KindOval, []canvas.Point{{X: 5, Y: 1}, {X: 8, Y: 4}}, style)
	require.NoError(t, err)
	_, err = c.Create(canvas.KindPolygon, []canvas.Point{{X: 0, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 3}}, style)
	require.NoError(t, err)
	_, err = c.Create(canvas.KindPoint, []canvas.Point{{X: 7, Y: 5}}, style)
	require.NoError(t, err)
	_, err = c.CreateText(canvas.Point{X: 1, Y: 4}, "a(b)\\", style)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 4; i++ {
		img.Set(i, i, color.RGBA{R: 200, A: 255})
	}
	_, err = c.CreateImage(canvas.Point{X: 6, Y: 0}, img, img)
	require.NoError(t, err)

	return c.Snapshot()
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out.png", FormatPNG, false},
		{"OUT.PNG", FormatPNG, false},
		{"doc.pdf", FormatPDF, false},
		{"art.ps", FormatPostScript, false},
		{"art.eps", FormatPostScript, false},
		{"art.gif", 0, true},
		{"noext", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPNG, sampleSnapshot(t), DefaultOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 96), img.Bounds())

	r, g, b, _ := img.At(79, 95).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "background corner")
}

func TestWritePNGBlankCanvas(t *testing.T) {
	snap := canvas.New(3, 2, white).Snapshot()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPNG, snap, Options{CellWidth: 4, CellHeight: 4}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sampleSnapshot(t), DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePostScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPostScript, sampleSnapshot(t), DefaultOptions()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%!PS-Adobe-3.0\n"))
	assert.Contains(t, out, "%%BoundingBox: 0 0 80 96\n")
	assert.Contains(t, out, "ellipse stroke")
	assert.Contains(t, out, "rectstroke")
	assert.Contains(t, out, "closepath stroke")
	assert.Contains(t, out, `(a\(b\)\\) show`)
	assert.Contains(t, out, "colorimage")
	assert.True(t, strings.HasSuffix(out, "showpage\n%%EOF\n"))
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format(42), canvas.Snapshot{}, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot(t)

	for _, ext := range Extensions {
		path := filepath.Join(dir, "drawing"+ext)
		require.NoError(t, Save(path, snap, DefaultOptions()), ext)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	bad := filepath.Join(dir, "drawing.bmp")
	assert.ErrorIs(t, Save(bad, snap, DefaultOptions()), ErrUnsupportedFormat)
	_, err := os.Stat(bad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFace(t *testing.T) {
	face, err := loadFace(gomono.TTF, 14)
	require.NoError(t, err)
	assert.Positive(t, face.Metrics().Height.Ceil())

	_, err = loadFace([]byte("not a font"), 14)
	var formatErr truetype.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "failed to parse font")
}
