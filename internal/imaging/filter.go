package imaging

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FilterParams is a snapshot of the nine filter channels. Values arrive
// already clamped by the sliders that own them; the chain does not
// re-validate. Percentage channels use 100 as neutral, blur is a radius in
// display pixels, hue rotation is in degrees.
type FilterParams struct {
	Blur       float64 // 0..20 px
	Grayscale  float64 // 0..100 %
	Brightness float64 // 0..200 %
	Contrast   float64 // 0..200 %
	HueRotate  float64 // 0..360 deg
	Invert     float64 // 0..100 %
	Opacity    float64 // 0..100 %
	Saturate   float64 // 0..200 %
	Sepia      float64 // 0..100 %
}

// DefaultFilters returns the neutral setting of every channel.
func DefaultFilters() FilterParams {
	return FilterParams{
		Brightness: 100,
		Contrast:   100,
		Opacity:    100,
		Saturate:   100,
	}
}

// Neutral reports whether applying the chain would be an identity operation.
func (p FilterParams) Neutral() bool {
	return p == DefaultFilters()
}

// Apply runs the filter chain over src and returns the filtered image. The
// channel order is fixed: blur, grayscale, brightness, contrast, hue-rotate,
// invert, opacity, saturate, sepia. The same implementation serves the live
// preview and the export path, so the two can never disagree. src is not
// modified; when every channel is neutral src is returned as-is.
func (p FilterParams) Apply(src *image.NRGBA) *image.NRGBA {
	if src == nil || p.Neutral() {
		return src
	}

	out := src
	if p.Blur > 0 {
		out = gaussianBlur(out, p.Blur)
	}
	if out == src {
		out = Clone(src)
	}

	m := p.colorMatrix()
	alpha := p.Opacity / 100

	for i := 0; i < len(out.Pix); i += 4 {
		r := float64(out.Pix[i]) / 255
		g := float64(out.Pix[i+1]) / 255
		b := float64(out.Pix[i+2]) / 255

		nr := m.At(0, 0)*r + m.At(0, 1)*g + m.At(0, 2)*b + m.At(0, 3)
		ng := m.At(1, 0)*r + m.At(1, 1)*g + m.At(1, 2)*b + m.At(1, 3)
		nb := m.At(2, 0)*r + m.At(2, 1)*g + m.At(2, 2)*b + m.At(2, 3)

		out.Pix[i] = clamp8(nr)
		out.Pix[i+1] = clamp8(ng)
		out.Pix[i+2] = clamp8(nb)
		out.Pix[i+3] = clamp8(float64(out.Pix[i+3]) / 255 * alpha)
	}
	return out
}

// colorMatrix composes the per-channel color operations into one homogeneous
// 4x4 transform over (r, g, b, 1). Opacity is excluded; it scales alpha
// separately.
func (p FilterParams) colorMatrix() *mat.Dense {
	m := identityMatrix()
	// Operations apply left-to-right in chain order, so each one
	// left-multiplies the accumulated matrix.
	for _, op := range []*mat.Dense{
		grayscaleMatrix(p.Grayscale / 100),
		brightnessMatrix(p.Brightness / 100),
		contrastMatrix(p.Contrast / 100),
		hueRotateMatrix(p.HueRotate),
		invertMatrix(p.Invert / 100),
		saturateMatrix(p.Saturate / 100),
		sepiaMatrix(p.Sepia / 100),
	} {
		var next mat.Dense
		next.Mul(op, m)
		m = &next
	}
	return m
}

func identityMatrix() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// lerpMatrix returns a*(1-t) + b*t.
func lerpMatrix(a, b *mat.Dense, t float64) *mat.Dense {
	var sa, sb mat.Dense
	sa.Scale(1-t, a)
	sb.Scale(t, b)
	var out mat.Dense
	out.Add(&sa, &sb)
	return &out
}

// grayscaleMatrix interpolates toward the Rec. 709 luminance projection.
func grayscaleMatrix(t float64) *mat.Dense {
	full := mat.NewDense(4, 4, []float64{
		0.2126, 0.7152, 0.0722, 0,
		0.2126, 0.7152, 0.0722, 0,
		0.2126, 0.7152, 0.0722, 0,
		0, 0, 0, 1,
	})
	return lerpMatrix(identityMatrix(), full, t)
}

func brightnessMatrix(s float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	})
}

// contrastMatrix scales channel values about the 0.5 midpoint.
func contrastMatrix(s float64) *mat.Dense {
	o := 0.5 - 0.5*s
	return mat.NewDense(4, 4, []float64{
		s, 0, 0, o,
		0, s, 0, o,
		0, 0, s, o,
		0, 0, 0, 1,
	})
}

// hueRotateMatrix is the standard SVG feColorMatrix hue rotation.
func hueRotateMatrix(degrees float64) *mat.Dense {
	rad := degrees * math.Pi / 180
	c := math.Cos(rad)
	s := math.Sin(rad)
	return mat.NewDense(4, 4, []float64{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0,
		0, 0, 0, 1,
	})
}

// invertMatrix interpolates each channel toward its complement.
func invertMatrix(t float64) *mat.Dense {
	s := 1 - 2*t
	return mat.NewDense(4, 4, []float64{
		s, 0, 0, t,
		0, s, 0, t,
		0, 0, s, t,
		0, 0, 0, 1,
	})
}

func saturateMatrix(s float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0,
		0, 0, 0, 1,
	})
}

func sepiaMatrix(t float64) *mat.Dense {
	full := mat.NewDense(4, 4, []float64{
		0.393, 0.769, 0.189, 0,
		0.349, 0.686, 0.168, 0,
		0.272, 0.534, 0.131, 0,
		0, 0, 0, 1,
	})
	return lerpMatrix(identityMatrix(), full, t)
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
