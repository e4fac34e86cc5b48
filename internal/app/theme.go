package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTheme is the application theme. It pins the variant to the user's
// dark-mode preference instead of following the OS.
type EditorTheme struct {
	Dark bool
}

var _ fyne.Theme = (*EditorTheme)(nil)

func (t *EditorTheme) variant() fyne.ThemeVariant {
	if t.Dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func (t *EditorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x3F, G: 0x51, B: 0xB5, A: 0xFF}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0x80}
	default:
		return theme.DefaultTheme().Color(name, t.variant())
	}
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}
