package tiler

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/tiling"
)

func TestGrabOpOperation(t *testing.T) {
	from := tiling.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	op := GrabOp{Window: 1, Rect: from}

	cases := []struct {
		name   string
		change tiling.Rect
		want   Movement
	}{
		{"unchanged", from, MovementNone},
		{"grow down", tiling.Rect{X: 100, Y: 100, Width: 400, Height: 364}, Grow | MoveDown},
		{"shrink up", tiling.Rect{X: 100, Y: 100, Width: 400, Height: 236}, Shrink | MoveUp},
		{"grow right", tiling.Rect{X: 100, Y: 100, Width: 464, Height: 300}, Grow | MoveRight},
		{"shrink left", tiling.Rect{X: 100, Y: 100, Width: 336, Height: 300}, Shrink | MoveLeft},
		{"grow up", tiling.Rect{X: 100, Y: 36, Width: 400, Height: 364}, Grow | MoveUp},
		{"shrink down", tiling.Rect{X: 100, Y: 164, Width: 400, Height: 236}, Shrink | MoveDown},
		{"grow left", tiling.Rect{X: 36, Y: 100, Width: 464, Height: 300}, Grow | MoveLeft},
		{"shrink right", tiling.Rect{X: 164, Y: 100, Width: 336, Height: 300}, Shrink | MoveRight},
		{"moved", tiling.Rect{X: 164, Y: 164, Width: 400, Height: 300}, Moved},
	}
	for _, tc := range cases {
		if got := op.Operation(tc.change); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestMovementString(t *testing.T) {
	if got := MovementNone.String(); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := (Grow | MoveRight).String(); got != "grow|right" {
		t.Fatalf("expected grow|right, got %q", got)
	}
	if Moved == MovementNone {
		t.Fatalf("expected Moved to be a distinct flag")
	}
}
