package stroke

import (
	"testing"

	"photo-editor/pkg/colorutil"
	"photo-editor/pkg/geometry"
)

func TestBeginAppendFinalize(t *testing.T) {
	l := NewLog()

	s := l.Begin(geometry.Point2D{X: 1, Y: 2}, colorutil.Red, 6, false)
	if !l.Capturing() {
		t.Fatal("expected capture in progress after Begin")
	}
	if s.ID == "" {
		t.Fatal("expected stroke to get an ID")
	}
	l.Append(geometry.Point2D{X: 3, Y: 4})
	l.Append(geometry.Point2D{X: 5, Y: 6})
	l.Finalize()

	if l.Capturing() {
		t.Fatal("capture should end on Finalize")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	got := l.Strokes()[0]
	if len(got.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(got.Points))
	}
	if got.Points[2] != (geometry.Point2D{X: 5, Y: 6}) {
		t.Fatalf("last point = %v", got.Points[2])
	}
}

func TestSinglePointStrokeIsKept(t *testing.T) {
	l := NewLog()
	l.Begin(geometry.Point2D{X: 10, Y: 10}, colorutil.Black, 3, false)
	l.Finalize()

	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (tap renders as a dot)", l.Len())
	}
	if len(l.Strokes()[0].Points) != 1 {
		t.Fatalf("points = %d, want 1", len(l.Strokes()[0].Points))
	}
}

func TestAppendWithoutBeginIsNoop(t *testing.T) {
	l := NewLog()
	l.Append(geometry.Point2D{X: 1, Y: 1})
	if l.Len() != 0 || l.Capturing() {
		t.Fatal("Append without Begin must not create strokes")
	}
}

func TestUndoStackLaw(t *testing.T) {
	l := NewLog()
	for i := 0; i < 5; i++ {
		l.Begin(geometry.Point2D{X: float64(i), Y: 0}, colorutil.Blue, 4, false)
		l.Finalize()
	}

	for want := 4; want >= 0; want-- {
		l.Undo()
		if l.Len() != want {
			t.Fatalf("after undo Len = %d, want %d", l.Len(), want)
		}
	}
	// Undo past empty stays at zero.
	l.Undo()
	l.Undo()
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after undo on empty log", l.Len())
	}
}

func TestClearDropsEverything(t *testing.T) {
	l := NewLog()
	l.Begin(geometry.Point2D{}, colorutil.Black, 2, false)
	l.Finalize()
	l.Begin(geometry.Point2D{X: 1}, colorutil.Black, 2, true)

	l.Clear()
	if l.Len() != 0 || l.Capturing() {
		t.Fatal("Clear must drop finalized and in-progress strokes")
	}

	// Clear on empty is a no-op, not a panic.
	l.Clear()
}

func TestBeginWhileCapturingFinalizesPrevious(t *testing.T) {
	l := NewLog()
	l.Begin(geometry.Point2D{}, colorutil.Black, 2, false)
	l.Begin(geometry.Point2D{X: 9}, colorutil.Black, 2, false)

	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (first stroke auto-finalized)", l.Len())
	}
	if !l.Capturing() {
		t.Fatal("second stroke should still be capturing")
	}
}

// Capture runs on the UI thread while an asynchronous decode may clear the
// log from its own goroutine. Run with -race.
func TestConcurrentCaptureAndClear(t *testing.T) {
	l := NewLog()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			l.Clear()
		}
	}()

	for i := 0; i < 500; i++ {
		l.Begin(geometry.Point2D{X: float64(i)}, colorutil.Red, 4, false)
		l.Append(geometry.Point2D{X: float64(i), Y: 1})
		l.Finalize()
		for range l.Strokes() {
		}
	}
	<-done

	// The interleaving is unspecified; the log just has to stay coherent.
	l.Clear()
	if l.Len() != 0 || l.Capturing() {
		t.Fatal("log inconsistent after concurrent use")
	}
}
