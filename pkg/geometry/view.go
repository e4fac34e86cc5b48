package geometry

// ViewTransform relates the three coordinate spaces the editor works in:
// the displayed image rectangle in screen units, the backing store of the
// draw surface in device pixels, and the working image's natural pixel grid.
//
// It is a pure value recomputed from measured layout before every render or
// pointer calculation; nothing is cached across geometry changes.
type ViewTransform struct {
	// Display is the on-screen rectangle the image occupies, in screen
	// units, relative to the draw surface origin (letterbox offsets
	// included in X/Y).
	Display Rect

	// Natural is the working image size in its own pixels.
	Natural Size

	// DeviceScale is the number of device pixels per screen unit.
	DeviceScale float64
}

// NewViewTransform builds a ViewTransform for the given displayed rectangle,
// natural image size, and device pixel ratio.
func NewViewTransform(display Rect, natural Size, deviceScale float64) ViewTransform {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	return ViewTransform{Display: display, Natural: natural, DeviceScale: deviceScale}
}

// ScaleX returns natural pixels per screen unit horizontally. A degenerate
// displayed width yields 1 so callers never divide by zero.
func (v ViewTransform) ScaleX() float64 {
	if v.Display.Width <= 0 {
		return 1
	}
	return v.Natural.Width / v.Display.Width
}

// ScaleY returns natural pixels per screen unit vertically.
func (v ViewTransform) ScaleY() float64 {
	if v.Display.Height <= 0 {
		return 1
	}
	return v.Natural.Height / v.Display.Height
}

// AvgScale returns the mean of the axis scales. Stroke widths are scaled by
// this single factor so a round brush stays visually round even when the
// displayed aspect ratio differs slightly from the natural one.
func (v ViewTransform) AvgScale() float64 {
	return (v.ScaleX() + v.ScaleY()) / 2
}

// ToNatural maps a point in screen units, relative to the displayed image's
// top-left corner, into natural pixel space.
func (v ViewTransform) ToNatural(p Point2D) Point2D {
	return Point2D{X: p.X * v.ScaleX(), Y: p.Y * v.ScaleY()}
}

// ToDisplay maps a natural-space point back to screen units relative to the
// displayed image's top-left corner.
func (v ViewTransform) ToDisplay(p Point2D) Point2D {
	return Point2D{X: p.X / v.ScaleX(), Y: p.Y / v.ScaleY()}
}

// RectToNatural maps a display-space rectangle (relative to the displayed
// image's top-left corner) into natural pixel space.
func (v ViewTransform) RectToNatural(r Rect) Rect {
	tl := v.ToNatural(r.TopLeft())
	return Rect{
		X:      tl.X,
		Y:      tl.Y,
		Width:  r.Width * v.ScaleX(),
		Height: r.Height * v.ScaleY(),
	}
}

// ToDevice maps a point in screen units, relative to the draw surface
// origin, into device pixels of the backing store.
func (v ViewTransform) ToDevice(p Point2D) Point2D {
	return p.Scale(v.DeviceScale)
}

// SurfaceToImage converts a surface-relative point in screen units to a
// point relative to the displayed image's top-left corner.
func (v ViewTransform) SurfaceToImage(p Point2D) Point2D {
	return p.Sub(v.Display.TopLeft())
}

// Degenerate reports whether the view cannot support meaningful mapping,
// either because nothing is displayed yet or the image has no pixels.
func (v ViewTransform) Degenerate() bool {
	return v.Display.Empty() || v.Natural.Width <= 0 || v.Natural.Height <= 0
}
