// Package stroke holds the freehand annotation model. The stroke log is the
// single source of truth for everything drawn over the image; render targets
// are disposable and replayed from the log whenever geometry changes.
package stroke

import (
	"image/color"
	"sync"

	"photo-editor/pkg/geometry"

	"github.com/google/uuid"
)

// Stroke is one continuous drawing or erasing gesture. Points are stored in
// display coordinates relative to the displayed image's top-left corner at
// capture time, and are never mutated once the stroke is finalized.
type Stroke struct {
	ID     string
	Points []geometry.Point2D
	Color  color.RGBA
	Width  float64
	Eraser bool
}

// Log is an ordered sequence of finalized strokes plus at most one stroke
// being captured. Capture happens on the UI thread, but an asynchronous
// image decode clears the log from its own goroutine, so the log carries
// its own lock.
type Log struct {
	mu      sync.Mutex
	strokes []*Stroke
	current *Stroke
}

// NewLog creates an empty stroke log.
func NewLog() *Log {
	return &Log{}
}

// Begin starts capturing a new stroke at the given point. Any stroke still
// in progress is finalized first.
func (l *Log) Begin(p geometry.Point2D, col color.RGBA, width float64, eraser bool) *Stroke {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		l.strokes = append(l.strokes, l.current)
	}
	l.current = &Stroke{
		ID:     uuid.NewString(),
		Points: []geometry.Point2D{p},
		Color:  col,
		Width:  width,
		Eraser: eraser,
	}
	return l.current
}

// Append adds a point to the stroke in progress. It is a no-op when no
// capture is active.
func (l *Log) Append(p geometry.Point2D) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return
	}
	l.current.Points = append(l.current.Points, p)
}

// Finalize commits the in-progress stroke to the log. A stroke with a single
// point is kept; it renders as a dot.
func (l *Log) Finalize() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return
	}
	l.strokes = append(l.strokes, l.current)
	l.current = nil
}

// Current returns the stroke being captured, or nil. The returned stroke is
// still being appended to; read it only from the capturing thread.
func (l *Log) Current() *Stroke {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Capturing reports whether a stroke is in progress.
func (l *Log) Capturing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current != nil
}

// Strokes returns the finalized strokes in draw order. The returned slice
// must not be mutated by callers.
func (l *Log) Strokes() []*Stroke {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.strokes
}

// Len returns the number of finalized strokes.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.strokes)
}

// Undo drops the most recently finalized stroke. Undo on an empty log is a
// no-op.
func (l *Log) Undo() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.strokes) == 0 {
		return
	}
	l.strokes = l.strokes[:len(l.strokes)-1]
}

// Clear drops all strokes, including any capture in progress. Safe to call
// from the decode goroutine while the UI thread is capturing.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.strokes = nil
	l.current = nil
}
