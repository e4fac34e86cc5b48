package panels

import (
	"fmt"
	"image/color"

	"photo-editor/internal/app"
	"photo-editor/pkg/colorutil"
	"photo-editor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// brushColors is the palette offered by the color selector.
var brushColors = []struct {
	name string
	col  color.RGBA
}{
	{"Red", colorutil.Red},
	{"Black", colorutil.Black},
	{"White", colorutil.White},
	{"Green", colorutil.Green},
	{"Blue", colorutil.Blue},
	{"Yellow", colorutil.Yellow},
	{"Magenta", colorutil.Magenta},
}

// DrawPanel exposes drawing mode, brush settings, and undo/clear.
type DrawPanel struct {
	state  *app.State
	prefs  *prefs.Prefs
	widget fyne.CanvasObject

	modeCheck *widget.Check
}

// NewDrawPanel creates the drawing tools panel.
func NewDrawPanel(state *app.State, p *prefs.Prefs) *DrawPanel {
	dp := &DrawPanel{state: state, prefs: p}

	// Restore persisted brush settings.
	brush := state.Brush()
	brush.Width = p.Float(prefs.KeyBrushSize, brush.Width)
	if hex := p.String(prefs.KeyBrushColor); hex != "" {
		if c, err := colorutil.ParseHex(hex); err == nil {
			brush.Color = c
		}
	}
	state.SetBrush(brush)

	dp.modeCheck = widget.NewCheck("Drawing mode", func(on bool) {
		if on {
			state.SetTool(app.ToolDraw)
		} else if state.Tool() == app.ToolDraw {
			state.SetTool(app.ToolNone)
		}
	})

	names := make([]string, len(brushColors))
	selected := colorutil.ToHex(brush.Color)
	selectedName := brushColors[0].name
	for i, bc := range brushColors {
		names[i] = bc.name
		if colorutil.ToHex(bc.col) == selected {
			selectedName = bc.name
		}
	}
	colorSelect := widget.NewSelect(names, func(name string) {
		for _, bc := range brushColors {
			if bc.name == name {
				b := dp.state.Brush()
				b.Color = bc.col
				dp.state.SetBrush(b)
				dp.prefs.SetString(prefs.KeyBrushColor, colorutil.ToHex(bc.col))
				return
			}
		}
	})
	colorSelect.SetSelected(selectedName)

	sizeLabel := widget.NewLabel(fmt.Sprintf("Size: %.0f", brush.Width))
	sizeSlider := widget.NewSlider(1, 30)
	sizeSlider.Step = 1
	sizeSlider.Value = brush.Width
	sizeSlider.OnChanged = func(v float64) {
		b := dp.state.Brush()
		b.Width = v
		dp.state.SetBrush(b)
		dp.prefs.SetFloat(prefs.KeyBrushSize, v)
		sizeLabel.SetText(fmt.Sprintf("Size: %.0f", v))
	}

	eraserCheck := widget.NewCheck("Eraser", func(on bool) {
		b := dp.state.Brush()
		b.Eraser = on
		dp.state.SetBrush(b)
	})

	undoBtn := widget.NewButton("Undo Stroke", func() {
		dp.state.UndoStroke()
	})
	clearBtn := widget.NewButton("Clear Strokes", func() {
		dp.state.ClearStrokes()
	})

	dp.widget = container.NewVBox(
		dp.modeCheck,
		widget.NewLabel("Brush color:"),
		colorSelect,
		sizeLabel,
		sizeSlider,
		eraserCheck,
		widget.NewSeparator(),
		undoBtn,
		clearBtn,
	)

	// Keep the checkbox honest when another panel grabs the tool.
	state.On(app.EventToolChanged, func(data interface{}) {
		tool, ok := data.(app.Tool)
		if !ok {
			return
		}
		if (tool == app.ToolDraw) != dp.modeCheck.Checked {
			dp.modeCheck.SetChecked(tool == app.ToolDraw)
		}
	})

	return dp
}

// Container returns the panel's root object.
func (dp *DrawPanel) Container() fyne.CanvasObject {
	return dp.widget
}
