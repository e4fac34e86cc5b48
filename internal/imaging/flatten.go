package imaging

import (
	"image"

	"photo-editor/internal/stroke"
	"photo-editor/pkg/geometry"
)

// Flatten produces the single exported raster at the working image's
// natural resolution: the base with the live filter chain applied, then
// every finalized stroke replayed from the log, rescaled from display
// space into natural pixels. Stroke positions scale per axis; widths scale
// by the average of the two axis factors so round brushes stay round.
func Flatten(base *image.NRGBA, params FilterParams, strokes []*stroke.Stroke, view geometry.ViewTransform) *image.NRGBA {
	if base == nil {
		return nil
	}

	out := params.Apply(base)
	if out == base {
		out = Clone(base)
	}

	widthScale := view.AvgScale()
	for _, s := range strokes {
		if s == nil || len(s.Points) == 0 {
			continue
		}
		pts := make([]geometry.Point2D, len(s.Points))
		for i, p := range s.Points {
			pts[i] = view.ToNatural(p)
		}
		DrawStroke(out, pts, s.Width*widthScale, s.Color, s.Eraser)
	}
	return out
}
