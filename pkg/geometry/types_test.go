package geometry

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	a := Point2D{X: 3, Y: 4}
	b := Point2D{X: 1, Y: 2}

	if got := a.Add(b); got != (Point2D{X: 4, Y: 6}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Point2D{X: 2, Y: 2}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Point2D{X: 6, Y: 8}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := (Point2D{}).Distance(a); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestRectEmpty(t *testing.T) {
	cases := []struct {
		r    Rect
		want bool
	}{
		{NewRect(0, 0, 10, 10), false},
		{NewRect(5, 5, 0, 10), true},
		{NewRect(5, 5, 10, -1), true},
		{Rect{}, true},
	}
	for _, c := range cases {
		if got := c.r.Empty(); got != c.want {
			t.Errorf("Empty(%+v) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestRectCorners(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if got := r.TopLeft(); got != (Point2D{X: 10, Y: 20}) {
		t.Errorf("TopLeft = %+v", got)
	}
	if got := r.BottomRight(); got != (Point2D{X: 40, Y: 60}) {
		t.Errorf("BottomRight = %+v", got)
	}
	if got := r.Center(); got != (Point2D{X: 25, Y: 40}) {
		t.Errorf("Center = %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.Contains(Point2D{X: 5, Y: 5}) || !r.Contains(Point2D{X: 0, Y: 10}) {
		t.Error("interior and edge points should be contained")
	}
	if r.Contains(Point2D{X: 11, Y: 5}) {
		t.Error("outside point reported as contained")
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	if got := a.Intersect(b); got != NewRect(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v", got)
	}
	if got := a.Intersect(NewRect(20, 20, 5, 5)); !got.Empty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
}
