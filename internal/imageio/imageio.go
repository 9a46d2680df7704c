// Package imageio loads images for placement on the canvas.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage    = errors.New("not an image")
	ErrUnsupported = errors.New("unsupported image format")
)

// CellAspect is the height of a terminal cell divided by its width.
const CellAspect = 2.0

// headerSize is how much filetype needs to sniff any image format it knows.
const headerSize = 262

// Load reads and decodes the image at path.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(f)
}

// Decode sniffs r and decodes it. The returned string is the detected
// format name, for example "png".
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}

	head := data
	if len(head) > headerSize {
		head = head[:headerSize]
	}
	if !filetype.IsImage(head) {
		return nil, "", ErrNotImage
	}
	kind, _ := filetype.Match(head)

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, kind.Extension, fmt.Errorf("%s: %w", kind.MIME.Value, ErrUnsupported)
		}
		return nil, kind.Extension, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}
	return img, format, nil
}

// Fit returns the largest cell footprint that keeps the image's aspect
// ratio and fits in maxCols x maxRows. Images never grow beyond one pixel
// per cell column.
func Fit(img image.Image, maxCols, maxRows int) (cols, rows int) {
	b := img.Bounds()
	if b.Empty() || maxCols < 1 || maxRows < 1 {
		return 0, 0
	}

	w := float64(b.Dx())
	h := float64(b.Dy()) / CellAspect

	scale := min(float64(maxCols)/w, float64(maxRows)/h, 1)
	cols = max(int(w*scale), 1)
	rows = max(int(h*scale), 1)
	return cols, rows
}

// Sample resamples img to one pixel per cell.
func Sample(img image.Image, cols, rows int) image.Image {
	return transform.Resize(img, cols, rows, transform.Box)
}

// Scale resamples img to exactly w x h pixels for export.
func Scale(img image.Image, w, h int) image.Image {
	return transform.Resize(img, w, h, transform.CatmullRom)
}
