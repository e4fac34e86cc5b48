package imaging

import (
	"image"
	"image/draw"
)

// Crop extracts the given natural-pixel rectangle into a fresh image. The
// rectangle is clipped to the source bounds; an empty result yields nil.
// Filters are deliberately not baked in here: cropping changes geometry
// only, and the live filter state keeps applying to the new base.
func Crop(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	if src == nil {
		return nil
	}
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// Rotate90 rotates the image a quarter turn clockwise into a fresh image
// with swapped dimensions. Output pixel (x, y) takes source pixel
// (y, srcH-1-x).
func Rotate90(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			si := src.PixOffset(b.Min.X+y, b.Min.Y+h-1-x)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
