// Package canvas provides the editor canvas: the displayed image with its
// overlay draw surface, crop rubber band, and zoom handling.
package canvas

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"photo-editor/internal/app"
	"photo-editor/internal/imaging"
	"photo-editor/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// EditorCanvas displays the working image with filters applied and hosts
// the overlay draw surface. The raster is a disposable render target: every
// frame recomputes view geometry and, when anything changed, replays the
// whole stroke log. Only an active drag paints incrementally, and purely
// for responsiveness.
type EditorCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// Display state. zoom is in display units per natural pixel; with
	// fitToWindow set it is recomputed from the viewport every frame.
	zoom        float64
	fitToWindow bool

	// view is the geometry of the most recent frame. It is recomputed
	// before it is trusted for pointer mapping or export.
	view geometry.ViewTransform

	// content is the composited filtered base plus strokes, in device
	// pixels, rebuilt whenever geometry or model state changes.
	content     *image.NRGBA
	contentView geometry.ViewTransform
	contentOK   bool

	// filtered caches the filter chain output for the current base.
	filtered    *image.NRGBA
	filteredFor imaging.FilterParams
	filteredSrc *image.NRGBA

	// Capture state for the active drag.
	lastPoint geometry.Point2D

	// Crop rubber band, in surface coordinates.
	selecting   bool
	selectStart geometry.Point2D
	selectEnd   geometry.Point2D

	onStrokeDone func()
	onCropDone   func(geometry.Rect)
}

var _ fyne.Widget = (*EditorCanvas)(nil)
var _ fyne.Draggable = (*EditorCanvas)(nil)
var _ fyne.Tappable = (*EditorCanvas)(nil)

// NewEditorCanvas creates the canvas bound to the editing session.
func NewEditorCanvas(state *app.State) *EditorCanvas {
	ec := &EditorCanvas{
		state:       state,
		zoom:        1.0,
		fitToWindow: true,
	}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.ExtendBaseWidget(ec)

	// Any model change invalidates the composited content; the next frame
	// replays from the stroke log. Re-sync is idempotent and cheap, so
	// redundant invalidations are harmless.
	invalidate := func(interface{}) {
		ec.contentOK = false
		ec.Refresh()
	}
	state.On(app.EventImageLoaded, func(data interface{}) {
		ec.fitToWindow = true
		invalidate(data)
	})
	state.On(app.EventImageReplaced, invalidate)
	state.On(app.EventFiltersChanged, invalidate)
	state.On(app.EventStrokesChanged, invalidate)
	state.On(app.EventCropChanged, func(interface{}) { ec.Refresh() })
	state.On(app.EventToolChanged, func(interface{}) { ec.Refresh() })

	return ec
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// MinSize keeps the canvas from collapsing before an image loads.
func (ec *EditorCanvas) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// View returns the most recently computed view transform. Callers use it to
// map crop selections and stroke coordinates into natural pixels; before
// the first frame it is degenerate and mapping falls back to scale 1.
func (ec *EditorCanvas) View() geometry.ViewTransform {
	return ec.view
}

// OnStrokeDone registers a callback fired when a stroke is finalized.
func (ec *EditorCanvas) OnStrokeDone(fn func()) {
	ec.onStrokeDone = fn
}

// OnCropDone registers a callback fired when a rubber-band selection
// completes, with the rectangle relative to the displayed image.
func (ec *EditorCanvas) OnCropDone(fn func(geometry.Rect)) {
	ec.onCropDone = fn
}

// SetZoom sets an absolute zoom (display units per natural pixel) and
// disables fit-to-window.
func (ec *EditorCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ec.zoom = zoom
	ec.fitToWindow = false
	ec.Refresh()
}

// ZoomIn increases the zoom level.
func (ec *EditorCanvas) ZoomIn() {
	ec.SetZoom(ec.currentZoom() * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ec *EditorCanvas) ZoomOut() {
	ec.SetZoom(ec.currentZoom() / zoomStep)
}

// ActualSize displays one natural pixel per display unit.
func (ec *EditorCanvas) ActualSize() {
	ec.SetZoom(1)
}

// FitToWindow re-enables automatic fit of the image to the viewport.
func (ec *EditorCanvas) FitToWindow() {
	ec.fitToWindow = true
	ec.Refresh()
}

// Refresh redraws the raster.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

func (ec *EditorCanvas) currentZoom() float64 {
	if ec.fitToWindow {
		return ec.fitZoom()
	}
	return ec.zoom
}

// fitZoom computes the zoom that letterboxes the image into the viewport.
func (ec *EditorCanvas) fitZoom() float64 {
	nat := ec.state.NaturalSize()
	size := ec.Size()
	if nat.Width <= 0 || nat.Height <= 0 || size.Width <= 0 || size.Height <= 0 {
		return 1
	}
	zx := float64(size.Width) / nat.Width
	zy := float64(size.Height) / nat.Height
	if zy < zx {
		return zy
	}
	return zx
}

// computeView measures the current layout and derives the frame geometry:
// the displayed image rectangle (centered, letterboxed) in display units
// and the device scale of the backing store.
func (ec *EditorCanvas) computeView(devW, devH int) geometry.ViewTransform {
	size := ec.Size()
	nat := ec.state.NaturalSize()

	deviceScale := 1.0
	if size.Width > 0 {
		deviceScale = float64(devW) / float64(size.Width)
	}

	zoom := ec.currentZoom()
	dispW := nat.Width * zoom
	dispH := nat.Height * zoom
	dx := (float64(size.Width) - dispW) / 2
	dy := (float64(size.Height) - dispH) / 2

	return geometry.NewViewTransform(
		geometry.NewRect(dx, dy, dispW, dispH),
		nat,
		deviceScale,
	)
}

// draw is the raster drawing function. w and h are device pixels.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	output := image.NewNRGBA(image.Rect(0, 0, w, h))

	// Opaque dark backdrop; erased stroke regions show through to it.
	bg := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	stddraw.Draw(output, output.Bounds(), image.NewUniform(bg), image.Point{}, stddraw.Src)

	img := ec.state.Image()
	if img == nil || w == 0 || h == 0 {
		return output
	}

	ec.view = ec.computeView(w, h)
	if ec.view.Degenerate() {
		// Layout has not settled yet; the next refresh will remeasure.
		return output
	}

	if !ec.contentOK || ec.view != ec.contentView || ec.content == nil {
		ec.rebuildContent(w, h)
	}
	stddraw.Draw(output, output.Bounds(), ec.content, image.Point{}, stddraw.Over)

	if sel := ec.activeSelection(); sel != nil {
		drawSelectionRect(output, *sel, ec.view)
	}

	return output
}

// rebuildContent recomposites the filtered base and replays the entire
// stroke log at the current geometry. The pixel surface is never the source
// of truth; resizing it simply triggers this redraw-from-model.
func (ec *EditorCanvas) rebuildContent(w, h int) {
	content := image.NewNRGBA(image.Rect(0, 0, w, h))

	filtered := ec.filteredImage()
	dr := deviceRect(ec.view.Display, ec.view.DeviceScale)
	xdraw.ApproxBiLinear.Scale(content, dr, filtered, filtered.Bounds(), xdraw.Src, nil)

	log := ec.state.Strokes()
	for _, s := range log.Strokes() {
		replayStroke(content, s, ec.view)
	}
	if cur := log.Current(); cur != nil {
		replayStroke(content, cur, ec.view)
	}

	ec.content = content
	ec.contentView = ec.view
	ec.contentOK = true
}

// filteredImage returns the filter chain output for the current base,
// cached until the base or the filter snapshot changes.
func (ec *EditorCanvas) filteredImage() *image.NRGBA {
	img := ec.state.Image()
	params := ec.state.Filters()
	if ec.filtered == nil || ec.filteredSrc != img || ec.filteredFor != params {
		ec.filtered = params.Apply(img)
		ec.filteredSrc = img
		ec.filteredFor = params
	}
	return ec.filtered
}

// activeSelection returns the rubber band in progress, or the stored crop
// selection, as a rectangle relative to the displayed image.
func (ec *EditorCanvas) activeSelection() *geometry.Rect {
	if ec.selecting {
		r := normalizedRect(ec.selectStart, ec.selectEnd)
		img := ec.view.SurfaceToImage(r.TopLeft())
		out := geometry.NewRect(img.X, img.Y, r.Width, r.Height)
		return &out
	}
	return ec.state.Crop()
}

// Dragged handles both stroke capture and the crop rubber band, depending
// on the active tool. With no tool active the event is ignored so the
// canvas stays inert.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	if ec.view.Degenerate() {
		return
	}
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	switch ec.state.Tool() {
	case app.ToolDraw:
		ec.dragDraw(pos)
	case app.ToolCrop:
		if !ec.selecting {
			ec.selecting = true
			ec.selectStart = pos
		}
		ec.selectEnd = pos
		ec.Refresh()
	}
}

// dragDraw appends to the in-progress stroke and paints only the newest
// segment into the cached content, keeping the drag responsive. The full
// log replay on the next geometry change repaints it authoritatively.
func (ec *EditorCanvas) dragDraw(pos geometry.Point2D) {
	p := ec.view.SurfaceToImage(pos)
	log := ec.state.Strokes()
	brush := ec.state.Brush()

	if !log.Capturing() {
		log.Begin(p, brush.Color, brush.Width, brush.Eraser)
		// Zero-length segment so a fresh stroke is visible immediately.
		ec.stampSegment(p, p, brush)
	} else {
		log.Append(p)
		ec.stampSegment(ec.lastPoint, p, brush)
	}
	ec.lastPoint = p
	ec.Refresh()
}

// stampSegment paints one segment incrementally into the cached content.
func (ec *EditorCanvas) stampSegment(a, b geometry.Point2D, brush app.Brush) {
	if ec.content == nil || !ec.contentOK {
		return
	}
	v := ec.contentView
	da := v.ToDevice(a.Add(v.Display.TopLeft()))
	db := v.ToDevice(b.Add(v.Display.TopLeft()))
	imaging.DrawSegment(ec.content, da, db, brush.Width*v.DeviceScale, brush.Color, brush.Eraser)
}

// DragEnd finalizes the stroke or the crop selection.
func (ec *EditorCanvas) DragEnd() {
	switch ec.state.Tool() {
	case app.ToolDraw:
		if ec.state.Strokes().Capturing() {
			ec.state.Strokes().Finalize()
			if ec.onStrokeDone != nil {
				ec.onStrokeDone()
			}
		}
	case app.ToolCrop:
		if !ec.selecting {
			return
		}
		ec.selecting = false
		r := normalizedRect(ec.selectStart, ec.selectEnd)
		img := ec.view.SurfaceToImage(r.TopLeft())
		sel := geometry.NewRect(img.X, img.Y, r.Width, r.Height)
		if !sel.Empty() && ec.onCropDone != nil {
			ec.onCropDone(sel)
		}
	}
	ec.Refresh()
}

// Tapped paints a dot when drawing: a tap is a stroke with a single point,
// rendered as a degenerate segment.
func (ec *EditorCanvas) Tapped(ev *fyne.PointEvent) {
	if ec.state.Tool() != app.ToolDraw || ec.view.Degenerate() {
		return
	}
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	p := ec.view.SurfaceToImage(pos)
	brush := ec.state.Brush()

	log := ec.state.Strokes()
	log.Begin(p, brush.Color, brush.Width, brush.Eraser)
	ec.stampSegment(p, p, brush)
	log.Finalize()
	if ec.onStrokeDone != nil {
		ec.onStrokeDone()
	}
	ec.Refresh()
}

// normalizedRect builds a rectangle from two drag corners in any order.
func normalizedRect(a, b geometry.Point2D) geometry.Rect {
	x0, x1 := a.X, b.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := a.Y, b.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return geometry.NewRect(x0, y0, x1-x0, y1-y0)
}

// deviceRect converts a display-space rectangle to backing-store pixels.
// Coordinates go negative when the image is zoomed past the viewport, so
// rounding must not truncate toward zero.
func deviceRect(r geometry.Rect, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X*scale)),
		int(math.Round(r.Y*scale)),
		int(math.Round((r.X+r.Width)*scale)),
		int(math.Round((r.Y+r.Height)*scale)),
	)
}
