package imaging

import (
	"image/color"
	"testing"

	"photo-editor/internal/stroke"
	"photo-editor/pkg/geometry"
)

func identityView(w, h float64) geometry.ViewTransform {
	return geometry.NewViewTransform(
		geometry.NewRect(0, 0, w, h),
		geometry.Size{Width: w, Height: h},
		1,
	)
}

func TestFlattenBakesFiltersAndStroke(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	params := DefaultFilters()
	params.Brightness = 150
	params.Grayscale = 50

	log := stroke.NewLog()
	log.Begin(geometry.Point2D{X: 50, Y: 50}, color.RGBA{R: 255, A: 255}, 6, false)
	log.Append(geometry.Point2D{X: 100, Y: 50})
	log.Finalize()

	out := Flatten(base, params, log.Strokes(), identityView(400, 300))

	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 300 {
		t.Fatalf("export size = %v, want 400x300", out.Bounds())
	}
	// Uniform gray is unchanged by grayscale; brightness 150% lifts it.
	if got := out.NRGBAAt(10, 10); !within(got.R, 150, 2) {
		t.Fatalf("filtered base = %+v, want ~150 gray", got)
	}
	// The red segment runs along y=50 from x=50 to x=100.
	if got := out.NRGBAAt(75, 50); got.R != 255 || got.G == got.R {
		t.Fatalf("stroke missing at (75,50): %+v", got)
	}
	// Base must not be mutated by the export.
	if base.NRGBAAt(10, 10).R != 100 {
		t.Fatal("flatten mutated the working image")
	}
}

func TestFlattenRescalesStrokesToNaturalSpace(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{A: 255})
	// Image displayed at half size: scaleX = scaleY = 2.
	view := geometry.NewViewTransform(
		geometry.NewRect(0, 0, 200, 150),
		geometry.Size{Width: 400, Height: 300},
		1,
	)

	log := stroke.NewLog()
	log.Begin(geometry.Point2D{X: 10, Y: 10}, color.RGBA{R: 255, A: 255}, 6, false)
	log.Finalize()

	out := Flatten(base, DefaultFilters(), log.Strokes(), view)

	// Captured at (10,10) width 6 -> natural (20,20) width 12.
	if got := out.NRGBAAt(20, 20); got.R != 255 {
		t.Fatalf("stroke center not at (20,20): %+v", got)
	}
	if got := out.NRGBAAt(20, 25); got.R < 200 {
		t.Fatalf("scaled brush should reach 5px from center: %+v", got)
	}
	if got := out.NRGBAAt(20, 28); got.R != 0 {
		t.Fatalf("scaled brush too wide, painted 8px out: %+v", got)
	}
}

func TestFlattenEraserCutsExport(t *testing.T) {
	base := solidImage(100, 100, color.NRGBA{R: 50, G: 60, B: 70, A: 255})

	log := stroke.NewLog()
	log.Begin(geometry.Point2D{X: 30, Y: 50}, color.RGBA{R: 255, A: 255}, 8, false)
	log.Append(geometry.Point2D{X: 70, Y: 50})
	log.Finalize()
	log.Begin(geometry.Point2D{X: 50, Y: 30}, color.RGBA{}, 8, true)
	log.Append(geometry.Point2D{X: 50, Y: 70})
	log.Finalize()

	out := Flatten(base, DefaultFilters(), log.Strokes(), identityView(100, 100))

	if got := out.NRGBAAt(50, 50); got.A != 0 {
		t.Fatalf("eraser must cut through image and stroke, alpha = %d", got.A)
	}
	if got := out.NRGBAAt(30, 50); got.R != 255 {
		t.Fatalf("stroke missing outside erased band: %+v", got)
	}
	if got := out.NRGBAAt(10, 10); got.A != 255 {
		t.Fatal("base damaged away from strokes")
	}
}

func TestFlattenNilBase(t *testing.T) {
	if out := Flatten(nil, DefaultFilters(), nil, identityView(10, 10)); out != nil {
		t.Fatal("flatten of nil base should return nil")
	}
}

func TestFlattenDegenerateViewFallsBackToScaleOne(t *testing.T) {
	base := solidImage(50, 50, color.NRGBA{A: 255})

	log := stroke.NewLog()
	log.Begin(geometry.Point2D{X: 25, Y: 25}, color.RGBA{B: 255, A: 255}, 4, false)
	log.Finalize()

	// A zero display rect must not divide by zero; strokes map 1:1.
	out := Flatten(base, DefaultFilters(), log.Strokes(), geometry.ViewTransform{
		Natural:     geometry.Size{Width: 50, Height: 50},
		DeviceScale: 1,
	})
	if got := out.NRGBAAt(25, 25); got.B != 255 {
		t.Fatalf("stroke not mapped at scale 1: %+v", got)
	}
}
