package panels

import (
	"fmt"

	"photo-editor/internal/app"
	"photo-editor/pkg/geometry"
	"photo-editor/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TransformPanel exposes the destructive operations: crop and rotate. Both
// replace the working image and wipe strokes and the crop selection.
type TransformPanel struct {
	state  *app.State
	canvas *canvas.EditorCanvas
	widget fyne.CanvasObject

	selectCheck *widget.Check
	selLabel    *widget.Label
	applyBtn    *widget.Button
}

// NewTransformPanel creates the crop/rotate panel.
func NewTransformPanel(state *app.State, cvs *canvas.EditorCanvas) *TransformPanel {
	tp := &TransformPanel{state: state, canvas: cvs}

	tp.selLabel = widget.NewLabel("No selection")

	tp.selectCheck = widget.NewCheck("Select crop area", func(on bool) {
		if on {
			state.SetTool(app.ToolCrop)
		} else if state.Tool() == app.ToolCrop {
			state.SetTool(app.ToolNone)
		}
	})

	tp.applyBtn = widget.NewButton("Apply Crop", func() {
		// No selection is a quiet no-op.
		state.ApplyCrop(tp.canvas.View())
	})
	tp.applyBtn.Disable()

	clearBtn := widget.NewButton("Clear Selection", func() {
		state.SetCrop(nil)
	})

	rotateBtn := widget.NewButton("Rotate 90° CW", func() {
		state.Rotate()
	})

	tp.widget = container.NewVBox(
		widget.NewCard("Crop", "", container.NewVBox(
			tp.selectCheck,
			tp.selLabel,
			tp.applyBtn,
			clearBtn,
		)),
		widget.NewCard("Rotate", "", container.NewVBox(
			widget.NewLabel("Bakes current filters into the image."),
			rotateBtn,
		)),
	)

	cvs.OnCropDone(func(r geometry.Rect) {
		state.SetCrop(&r)
	})

	state.On(app.EventCropChanged, func(data interface{}) {
		sel, _ := data.(*geometry.Rect)
		if sel == nil {
			tp.selLabel.SetText("No selection")
			tp.applyBtn.Disable()
			return
		}
		tp.selLabel.SetText(fmt.Sprintf("%.0f×%.0f at (%.0f, %.0f)",
			sel.Width, sel.Height, sel.X, sel.Y))
		tp.applyBtn.Enable()
	})

	state.On(app.EventToolChanged, func(data interface{}) {
		tool, ok := data.(app.Tool)
		if !ok {
			return
		}
		if (tool == app.ToolCrop) != tp.selectCheck.Checked {
			tp.selectCheck.SetChecked(tool == app.ToolCrop)
		}
	})

	return tp
}

// Container returns the panel's root object.
func (tp *TransformPanel) Container() fyne.CanvasObject {
	return tp.widget
}
