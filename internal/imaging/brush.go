package imaging

import (
	"image"
	"image/color"
	"math"

	"photo-editor/pkg/geometry"
)

// DrawStroke rasterizes a full point sequence onto dst. Points are in dst
// pixel space; callers apply whatever coordinate scaling the target needs
// before calling. A single point renders as a dot. Eraser strokes remove
// alpha instead of painting, cutting through the base image and any strokes
// drawn earlier in the same target.
func DrawStroke(dst *image.NRGBA, points []geometry.Point2D, width float64, col color.RGBA, eraser bool) {
	if dst == nil || len(points) == 0 {
		return
	}
	DrawSegment(dst, points[0], points[0], width, col, eraser)
	for i := 1; i < len(points); i++ {
		DrawSegment(dst, points[i-1], points[i], width, col, eraser)
	}
}

// DrawSegment rasterizes one line segment with round caps by stamping the
// brush along its length. Stamping a and b equal paints a dot, which is how
// the zero-length segment of a fresh stroke becomes visible immediately.
func DrawSegment(dst *image.NRGBA, a, b geometry.Point2D, width float64, col color.RGBA, eraser bool) {
	if dst == nil {
		return
	}
	radius := width / 2
	if radius <= 0 {
		radius = 0.5
	}

	dist := a.Distance(b)
	steps := int(math.Ceil(dist))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := geometry.Point2D{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		}
		stampBrush(dst, p, radius, col, eraser)
	}
}

// stampBrush paints one round brush footprint centered at p. Coverage fades
// over the outermost pixel so strokes keep a soft edge at any scale.
func stampBrush(dst *image.NRGBA, p geometry.Point2D, radius float64, col color.RGBA, eraser bool) {
	bounds := dst.Bounds()
	x0 := int(math.Floor(p.X - radius - 1))
	x1 := int(math.Ceil(p.X + radius + 1))
	y0 := int(math.Floor(p.Y - radius - 1))
	y1 := int(math.Ceil(p.Y + radius + 1))

	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - p.X
			dy := float64(y) + 0.5 - p.Y
			d := math.Sqrt(dx*dx + dy*dy)
			cov := radius + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			i := dst.PixOffset(x, y)
			if eraser {
				erasePixel(dst.Pix[i:i+4], cov)
			} else {
				blendPixel(dst.Pix[i:i+4], col, cov)
			}
		}
	}
}

// blendPixel composites the brush color over a straight-alpha pixel with
// the given coverage as source alpha.
func blendPixel(px []byte, col color.RGBA, cov float64) {
	sa := cov * float64(col.A) / 255
	if sa <= 0 {
		return
	}
	da := float64(px[3]) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}

	blendChannel := func(s, d byte) byte {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / outA
		if v > 255 {
			v = 255
		}
		return byte(v + 0.5)
	}
	px[0] = blendChannel(col.R, px[0])
	px[1] = blendChannel(col.G, px[1])
	px[2] = blendChannel(col.B, px[2])
	px[3] = byte(outA*255 + 0.5)
}

// erasePixel subtracts alpha where the brush passes (destination-out).
func erasePixel(px []byte, cov float64) {
	remaining := float64(px[3]) * (1 - cov)
	px[3] = byte(remaining + 0.5)
	if px[3] == 0 {
		px[0], px[1], px[2] = 0, 0, 0
	}
}
