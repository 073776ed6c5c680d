package tiling

import "testing"

func TestRectClampDiff(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	got := Rect{X: -10, Y: 20, Width: 50, Height: 100}.ClampDiff(bounds)
	want := Rect{X: 0, Y: 20, Width: 40, Height: 80}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRectApply(t *testing.T) {
	got := Rect{X: 10, Y: 10, Width: 100, Height: 100}.Apply(Rect{X: 64, Width: -64})
	want := Rect{X: 74, Y: 10, Width: 36, Height: 100}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRectIntersects_HalfOpen(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if a.Intersects(Rect{X: 10, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("expected touching rectangles not to intersect")
	}
	if !a.Intersects(Rect{X: 9, Y: 9, Width: 10, Height: 10}) {
		t.Fatalf("expected overlapping rectangles to intersect")
	}
}

func TestRectExpand(t *testing.T) {
	got := Rect{X: 10, Y: 20, Width: 30, Height: 40}.Expand(4)
	want := Rect{X: 6, Y: 16, Width: 38, Height: 48}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
