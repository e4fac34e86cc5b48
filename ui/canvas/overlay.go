package canvas

import (
	"image"
	"image/color"

	"photo-editor/internal/imaging"
	"photo-editor/internal/stroke"
	"photo-editor/pkg/geometry"
)

// replayStroke paints one stroke from the log onto the device-pixel
// surface. Stroke points are display units relative to the displayed image
// origin; the view supplies the letterbox offset and device scale.
func replayStroke(dst *image.NRGBA, s *stroke.Stroke, view geometry.ViewTransform) {
	if s == nil || len(s.Points) == 0 {
		return
	}
	pts := make([]geometry.Point2D, len(s.Points))
	for i, p := range s.Points {
		pts[i] = view.ToDevice(p.Add(view.Display.TopLeft()))
	}
	imaging.DrawStroke(dst, pts, s.Width*view.DeviceScale, s.Color, s.Eraser)
}

// drawSelectionRect draws the crop rubber band as a dashed rectangle. sel is
// relative to the displayed image origin in display units.
func drawSelectionRect(output *image.NRGBA, sel geometry.Rect, view geometry.ViewTransform) {
	col := color.NRGBA{R: 255, G: 255, B: 0, A: 255}

	tl := view.ToDevice(sel.TopLeft().Add(view.Display.TopLeft()))
	br := view.ToDevice(sel.BottomRight().Add(view.Display.TopLeft()))
	x1, y1 := int(tl.X), int(tl.Y)
	x2, y2 := int(br.X), int(br.Y)

	bounds := output.Bounds()

	// Dashed outline, alternating pixels.
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			output.SetNRGBA(x, y1, col)
		}
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			output.SetNRGBA(x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.SetNRGBA(x1, y, col)
		}
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.SetNRGBA(x2, y, col)
		}
	}
}
