package imaging

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func within(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestNeutralFiltersReturnSource(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	out := DefaultFilters().Apply(src)
	if out != src {
		t.Fatal("neutral chain should return the source image untouched")
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	p := DefaultFilters()
	p.Invert = 100
	_ = p.Apply(src)
	if src.Pix[0] != 100 {
		t.Fatalf("source mutated: pix[0] = %d", src.Pix[0])
	}
}

func TestBrightnessScalesChannels(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 100, G: 50, B: 25, A: 255})
	p := DefaultFilters()
	p.Brightness = 200

	out := p.Apply(src)
	got := out.NRGBAAt(0, 0)
	if !within(got.R, 200, 2) || !within(got.G, 100, 2) || !within(got.B, 50, 2) {
		t.Fatalf("brightness 200%% gave %+v", got)
	}
}

func TestGrayscaleFullEqualizesChannels(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 200, G: 50, B: 100, A: 255})
	p := DefaultFilters()
	p.Grayscale = 100

	got := p.Apply(src).NRGBAAt(0, 0)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("grayscale 100%% should equalize channels, got %+v", got)
	}
	// Rec. 709 luminance of (200, 50, 100).
	want := uint8(0.2126*200 + 0.7152*50 + 0.0722*100 + 0.5)
	if !within(got.R, want, 2) {
		t.Fatalf("luminance = %d, want ~%d", got.R, want)
	}
}

func TestInvertFull(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 0, G: 128, B: 255, A: 255})
	p := DefaultFilters()
	p.Invert = 100

	got := p.Apply(src).NRGBAAt(0, 0)
	if !within(got.R, 255, 1) || !within(got.G, 127, 1) || !within(got.B, 0, 1) {
		t.Fatalf("invert 100%% gave %+v", got)
	}
}

func TestOpacityScalesAlphaOnly(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 80, G: 90, B: 100, A: 200})
	p := DefaultFilters()
	p.Opacity = 50

	got := p.Apply(src).NRGBAAt(0, 0)
	if !within(got.A, 100, 1) {
		t.Fatalf("alpha = %d, want ~100", got.A)
	}
	if !within(got.R, 80, 1) || !within(got.G, 90, 1) || !within(got.B, 100, 1) {
		t.Fatalf("opacity must not touch color channels, got %+v", got)
	}
}

func TestContrastKeepsMidpoint(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	p := DefaultFilters()
	p.Contrast = 200

	got := p.Apply(src).NRGBAAt(0, 0)
	if !within(got.R, 128, 2) {
		t.Fatalf("midpoint should be fixed under contrast, got %+v", got)
	}
}

func TestSepiaFullReferencePixel(t *testing.T) {
	src := solidImage(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	p := DefaultFilters()
	p.Sepia = 100

	got := p.Apply(src).NRGBAAt(0, 0)
	// Standard sepia matrix rows applied to uniform gray 100.
	wantR := uint8(100*(0.393+0.769+0.189) + 0.5)
	wantG := uint8(100*(0.349+0.686+0.168) + 0.5)
	wantB := uint8(100*(0.272+0.534+0.131) + 0.5)
	if !within(got.R, wantR, 2) || !within(got.G, wantG, 2) || !within(got.B, wantB, 2) {
		t.Fatalf("sepia gave %+v, want ~(%d,%d,%d)", got, wantR, wantG, wantB)
	}
}

func TestChainOrderBrightnessBeforeInvert(t *testing.T) {
	src := solidImage(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	p := DefaultFilters()
	p.Brightness = 200
	p.Invert = 100

	// brightness first: 100/255*2 = 0.784, inverted = 0.216 -> ~55.
	// The reverse order would give 255 after clamping.
	got := p.Apply(src).NRGBAAt(0, 0)
	if !within(got.R, 55, 3) {
		t.Fatalf("chain order violated: got %d, want ~55", got.R)
	}
}

func TestHueRotateFullCircleIsIdentity(t *testing.T) {
	src := solidImage(1, 1, color.NRGBA{R: 180, G: 60, B: 20, A: 255})
	p := DefaultFilters()
	p.HueRotate = 360

	got := p.Apply(src).NRGBAAt(0, 0)
	if !within(got.R, 180, 2) || !within(got.G, 60, 2) || !within(got.B, 20, 2) {
		t.Fatalf("360° hue rotation should be identity, got %+v", got)
	}
}
