package imaging

import (
	"image/color"
	"testing"
)

func TestGaussianBlurZeroRadiusReturnsSource(t *testing.T) {
	src := solidImage(16, 16, color.NRGBA{R: 30, G: 60, B: 90, A: 255})

	if got := gaussianBlur(src, 0); got != src {
		t.Fatal("zero radius should return the source untouched")
	}
	if got := gaussianBlur(src, -3); got != src {
		t.Fatal("negative radius should return the source untouched")
	}
}

func TestApplySkipsBlurAtZeroRadius(t *testing.T) {
	src := solidImage(16, 16, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	params := DefaultFilters()
	params.Brightness = 50

	out := params.Apply(src)
	if out == src {
		t.Fatal("non-neutral chain must not return the source")
	}
	if got := out.NRGBAAt(8, 8); !within(got.R, 100, 2) {
		t.Fatalf("brightness not applied: %+v", got)
	}
}
