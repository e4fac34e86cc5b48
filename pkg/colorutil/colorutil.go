// Package colorutil provides shared color utilities for the photo editor.
package colorutil

import (
	"fmt"
	"image/color"
)

// Brush palette colors offered by the draw panel.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// ParseHex parses "#rrggbb" or "#rgb" into an opaque RGBA color.
func ParseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r *= 17
		g *= 17
		b *= 17
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ToHex formats a color as "#rrggbb", discarding alpha.
func ToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
