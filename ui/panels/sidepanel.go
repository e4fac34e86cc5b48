package panels

import (
	"photo-editor/internal/app"
	"photo-editor/ui/canvas"
	"photo-editor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel groups the editing panels into tabs.
type SidePanel struct {
	tabs *container.AppTabs

	Filter    *FilterPanel
	Draw      *DrawPanel
	Transform *TransformPanel
}

// NewSidePanel creates the tabbed side panel.
func NewSidePanel(state *app.State, cvs *canvas.EditorCanvas, p *prefs.Prefs) *SidePanel {
	sp := &SidePanel{
		Filter:    NewFilterPanel(state),
		Draw:      NewDrawPanel(state, p),
		Transform: NewTransformPanel(state, cvs),
	}

	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Filters", sp.Filter.Container()),
		container.NewTabItem("Draw", sp.Draw.Container()),
		container.NewTabItem("Transform", sp.Transform.Container()),
	)
	return sp
}

// Container returns the panel's root object.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.tabs
}
