// Package imaging provides image decoding, the filter chain, crop/rotate
// transforms, stroke rasterization, and flattened export for the editor.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff"
)

// Load opens and decodes an image file into the editor's working format.
func Load(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Decode reads any registered raster format (PNG, JPEG, TIFF) and
// normalizes it to straight-alpha NRGBA, the format every later stage
// operates on.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts an image to NRGBA, copying only when necessary. The
// result always has its origin at (0, 0).
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of the image.
func Clone(img *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)
	return dst
}
