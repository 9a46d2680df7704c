package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	img, format, err := Decode(bytes.NewReader(pngBytes(t, 8, 4)))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestDecodeRejectsText(t *testing.T) {
	_, _, err := Decode(strings.NewReader("definitely not a picture"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeRejectsTruncatedPNG(t *testing.T) {
	data := pngBytes(t, 8, 8)
	_, _, err := Decode(bytes.NewReader(data[:40]))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotImage)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 3, 3), 0o644))

	img, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		w, h             int
		maxCols, maxRows int
		cols, rows       int
	}{
		{"small image keeps size", 10, 20, 80, 40, 10, 10},
		{"wide image limited by cols", 400, 100, 40, 40, 40, 5},
		{"tall image limited by rows", 100, 400, 80, 20, 10, 20},
		{"tiny box", 100, 100, 1, 1, 1, 1},
		{"no room", 10, 10, 0, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			cols, rows := Fit(img, tt.maxCols, tt.maxRows)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.rows, rows)
		})
	}
}

func TestSample(t *testing.T) {
	img, _, err := Decode(bytes.NewReader(pngBytes(t, 16, 16)))
	require.NoError(t, err)

	thumb := Sample(img, 4, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), thumb.Bounds())
}
