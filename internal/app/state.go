// Package app provides application state, events, and lifecycle helpers.
package app

import (
	"image"
	"image/color"
	"log"
	"sync"

	"photo-editor/internal/imaging"
	"photo-editor/internal/stroke"
	"photo-editor/pkg/colorutil"
	"photo-editor/pkg/geometry"
)

// Tool is the active canvas interaction mode.
type Tool int

const (
	ToolNone Tool = iota
	ToolDraw
	ToolCrop
)

// Brush holds the current drawing settings.
type Brush struct {
	Color  color.RGBA
	Width  float64
	Eraser bool
}

// EventType identifies application events.
type EventType int

const (
	// EventImageLoaded fires after an upload decode installs a new image.
	EventImageLoaded EventType = iota
	// EventImageReplaced fires after crop or rotate swap the working image.
	EventImageReplaced
	// EventLoadFailed fires when a decode fails; prior state is untouched.
	EventLoadFailed
	EventFiltersChanged
	EventStrokesChanged
	EventCropChanged
	EventToolChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State is the single editing session: exactly one working image at a time,
// with the stroke log and crop selection that belong to it. Replacing the
// image invalidates both, since their coordinates refer to geometry that no
// longer exists.
type State struct {
	mu sync.RWMutex

	img     *image.NRGBA
	loadGen uint64

	params  imaging.FilterParams
	strokes *stroke.Log
	crop    *geometry.Rect

	tool  Tool
	brush Brush

	listeners map[EventType][]EventListener
}

// NewState creates an empty editing session.
func NewState() *State {
	return &State{
		params:    imaging.DefaultFilters(),
		strokes:   stroke.NewLog(),
		brush:     Brush{Color: colorutil.Red, Width: 6},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Image returns the current working image, or nil before the first load.
func (s *State) Image() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// NaturalSize returns the working image dimensions in its own pixels.
func (s *State) NaturalSize() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.img == nil {
		return geometry.Size{}
	}
	b := s.img.Bounds()
	return geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// LoadImageAsync decodes the file off the caller's thread and installs the
// result. Decoding is the only asynchronous operation in the session; if a
// newer load (or a crop/rotate) lands first, the stale result is discarded
// (last-writer-wins on the working image).
func (s *State) LoadImageAsync(path string) {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	go func() {
		img, err := imaging.Load(path)
		if err != nil {
			log.Printf("image load failed: %v", err)
			s.Emit(EventLoadFailed, err)
			return
		}
		s.InstallImage(gen, img)
	}()
}

// BeginLoad reserves a load generation. Exposed for decode paths that do not
// go through LoadImageAsync (and for tests of the supersede rule).
func (s *State) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadGen++
	return s.loadGen
}

// InstallImage installs a decoded image if its generation is still current.
// A stale generation means the user moved on; the result is discarded.
func (s *State) InstallImage(gen uint64, img *image.NRGBA) {
	s.mu.Lock()
	if gen != s.loadGen {
		s.mu.Unlock()
		log.Printf("discarding superseded image decode (gen %d)", gen)
		return
	}
	s.img = img
	s.strokes.Clear()
	s.crop = nil
	s.mu.Unlock()

	s.Emit(EventImageLoaded, img)
	s.Emit(EventCropChanged, (*geometry.Rect)(nil))
}

// replaceImage swaps the working image for the result of a destructive
// operation and invalidates everything keyed to the old geometry. Bumping
// the load generation also retires any decode still in flight.
func (s *State) replaceImage(img *image.NRGBA) {
	s.mu.Lock()
	s.img = img
	s.loadGen++
	s.strokes.Clear()
	s.crop = nil
	s.mu.Unlock()

	s.Emit(EventImageReplaced, img)
	s.Emit(EventCropChanged, (*geometry.Rect)(nil))
}

// Filters returns the current filter snapshot.
func (s *State) Filters() imaging.FilterParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// SetFilters replaces the filter snapshot.
func (s *State) SetFilters(p imaging.FilterParams) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
	s.Emit(EventFiltersChanged, p)
}

// Strokes returns the stroke log. The log carries its own lock, so the
// decode goroutine clearing it cannot race capture on the UI thread.
func (s *State) Strokes() *stroke.Log {
	return s.strokes
}

// UndoStroke drops the most recent stroke; no-op when the log is empty.
func (s *State) UndoStroke() {
	s.strokes.Undo()
	s.Emit(EventStrokesChanged, nil)
}

// ClearStrokes drops all strokes; no-op when the log is empty.
func (s *State) ClearStrokes() {
	s.strokes.Clear()
	s.Emit(EventStrokesChanged, nil)
}

// Crop returns the active crop selection in display coordinates relative to
// the displayed image, or nil when there is none.
func (s *State) Crop() *geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crop
}

// SetCrop stores a crop selection produced by the rubber band.
func (s *State) SetCrop(r *geometry.Rect) {
	s.mu.Lock()
	s.crop = r
	s.mu.Unlock()
	s.Emit(EventCropChanged, r)
}

// ApplyCrop maps the active selection into natural pixels through the view
// and replaces the working image with that sub-rectangle. With no selection
// or a degenerate view it is a no-op. Filters are not baked in; they keep
// applying live to the cropped base.
func (s *State) ApplyCrop(view geometry.ViewTransform) {
	s.mu.RLock()
	sel := s.crop
	img := s.img
	s.mu.RUnlock()

	if sel == nil || img == nil || view.Degenerate() {
		return
	}

	nat := view.RectToNatural(*sel)
	rect := image.Rect(
		int(nat.X+0.5), int(nat.Y+0.5),
		int(nat.X+nat.Width+0.5), int(nat.Y+nat.Height+0.5),
	)
	cropped := imaging.Crop(img, rect)
	if cropped == nil {
		return
	}

	log.Printf("crop applied: %dx%d -> %dx%d",
		img.Bounds().Dx(), img.Bounds().Dy(),
		cropped.Bounds().Dx(), cropped.Bounds().Dy())
	s.replaceImage(cropped)
}

// Rotate turns the image 90 degrees clockwise. The current filter look is
// baked into the rotated base and the filter state resets to neutral, so
// repeated rotates never double-apply a filter.
func (s *State) Rotate() {
	s.mu.RLock()
	img := s.img
	params := s.params
	s.mu.RUnlock()

	if img == nil {
		return
	}

	rotated := imaging.Rotate90(params.Apply(img))

	s.mu.Lock()
	s.params = imaging.DefaultFilters()
	s.mu.Unlock()
	s.Emit(EventFiltersChanged, imaging.DefaultFilters())

	s.replaceImage(rotated)
}

// Export flattens the session into a natural-resolution raster using the
// given view for stroke rescaling. Returns nil before the first load.
func (s *State) Export(view geometry.ViewTransform) *image.NRGBA {
	s.mu.RLock()
	img := s.img
	params := s.params
	s.mu.RUnlock()

	if img == nil {
		return nil
	}
	return imaging.Flatten(img, params, s.strokes.Strokes(), view)
}

// Tool returns the active interaction tool.
func (s *State) Tool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetTool switches the interaction tool. Any capture in progress simply
// stops receiving events; the stroke drawn so far is finalized.
func (s *State) SetTool(t Tool) {
	s.mu.Lock()
	if s.tool == t {
		s.mu.Unlock()
		return
	}
	s.tool = t
	s.mu.Unlock()

	if s.strokes.Capturing() {
		s.strokes.Finalize()
		s.Emit(EventStrokesChanged, nil)
	}
	s.Emit(EventToolChanged, t)
}

// Brush returns the current brush settings.
func (s *State) Brush() Brush {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brush
}

// SetBrush updates the brush settings.
func (s *State) SetBrush(b Brush) {
	s.mu.Lock()
	s.brush = b
	s.mu.Unlock()
}
