// Package panels provides the side panel tabs: filters, drawing tools, and
// crop/rotate transforms.
package panels

import (
	"fmt"

	"photo-editor/internal/app"
	"photo-editor/internal/imaging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// filterChannel describes one slider row.
type filterChannel struct {
	name     string
	min, max float64
	unit     string
	get      func(*imaging.FilterParams) *float64
}

var filterChannels = []filterChannel{
	{"Blur", 0, 20, "px", func(p *imaging.FilterParams) *float64 { return &p.Blur }},
	{"Grayscale", 0, 100, "%", func(p *imaging.FilterParams) *float64 { return &p.Grayscale }},
	{"Brightness", 0, 200, "%", func(p *imaging.FilterParams) *float64 { return &p.Brightness }},
	{"Contrast", 0, 200, "%", func(p *imaging.FilterParams) *float64 { return &p.Contrast }},
	{"Hue Rotate", 0, 360, "°", func(p *imaging.FilterParams) *float64 { return &p.HueRotate }},
	{"Invert", 0, 100, "%", func(p *imaging.FilterParams) *float64 { return &p.Invert }},
	{"Opacity", 0, 100, "%", func(p *imaging.FilterParams) *float64 { return &p.Opacity }},
	{"Saturate", 0, 200, "%", func(p *imaging.FilterParams) *float64 { return &p.Saturate }},
	{"Sepia", 0, 100, "%", func(p *imaging.FilterParams) *float64 { return &p.Sepia }},
}

// FilterPanel holds the nine filter sliders. The sliders own the numeric
// ranges; the rest of the editor only ever sees clamped snapshots.
type FilterPanel struct {
	state     *app.State
	widget    fyne.CanvasObject
	sliders   []*widget.Slider
	valueRows []*widget.Label
	updating  bool
}

// NewFilterPanel creates the filter slider panel.
func NewFilterPanel(state *app.State) *FilterPanel {
	fp := &FilterPanel{state: state}

	rows := make([]fyne.CanvasObject, 0, len(filterChannels)*2+1)
	params := state.Filters()

	for i := range filterChannels {
		ch := filterChannels[i]
		value := widget.NewLabel(fmt.Sprintf("%s: %.0f%s", ch.name, *ch.get(&params), ch.unit))
		slider := widget.NewSlider(ch.min, ch.max)
		slider.Step = 1
		slider.Value = *ch.get(&params)
		slider.OnChanged = func(v float64) {
			if fp.updating {
				return
			}
			p := fp.state.Filters()
			*ch.get(&p) = v
			value.SetText(fmt.Sprintf("%s: %.0f%s", ch.name, v, ch.unit))
			fp.state.SetFilters(p)
		}

		fp.sliders = append(fp.sliders, slider)
		fp.valueRows = append(fp.valueRows, value)
		rows = append(rows, value, slider)
	}

	reset := widget.NewButton("Reset Filters", func() {
		fp.state.SetFilters(imaging.DefaultFilters())
	})
	rows = append(rows, reset)

	fp.widget = container.NewVScroll(container.NewVBox(rows...))

	// Rotate resets the filter state; keep the sliders in sync.
	state.On(app.EventFiltersChanged, func(interface{}) {
		fp.sync()
	})

	return fp
}

// sync pushes the state's filter snapshot back into the sliders.
func (fp *FilterPanel) sync() {
	params := fp.state.Filters()
	fp.updating = true
	for i := range filterChannels {
		ch := filterChannels[i]
		v := *ch.get(&params)
		if fp.sliders[i].Value != v {
			fp.sliders[i].SetValue(v)
		}
		fp.valueRows[i].SetText(fmt.Sprintf("%s: %.0f%s", ch.name, v, ch.unit))
	}
	fp.updating = false
}

// Container returns the panel's root object.
func (fp *FilterPanel) Container() fyne.CanvasObject {
	return fp.widget
}
