package windows

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/platform/platformtest"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// grid of four windows:
//
//	1 2
//	3 4
func quadBackend() *platformtest.Backend {
	b := platformtest.New(tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	b.AddWindow(1, tiling.Rect{X: 0, Y: 0, Width: 960, Height: 540})
	b.AddWindow(2, tiling.Rect{X: 960, Y: 0, Width: 960, Height: 540})
	b.AddWindow(3, tiling.Rect{X: 0, Y: 540, Width: 960, Height: 540})
	b.AddWindow(4, tiling.Rect{X: 960, Y: 540, Width: 960, Height: 540})
	return b
}

func TestSelector_FromFocused(t *testing.T) {
	b := quadBackend()
	b.SetActive(1)
	s := NewSelector(NewRegistry(b))

	cases := []struct {
		dir  tiling.Direction
		want platform.WindowID
		ok   bool
	}{
		{tiling.Right, 2, true},
		{tiling.Down, 3, true},
		{tiling.Left, 0, false},
		{tiling.Up, 0, false},
	}
	for _, tc := range cases {
		got, ok := s.Select(tc.dir, nil)
		if ok != tc.ok {
			t.Fatalf("%s: expected ok=%v, got %v", tc.dir, tc.ok, ok)
		}
		if ok && got.ID != tc.want {
			t.Fatalf("%s: expected window %d, got %d", tc.dir, tc.want, got.ID)
		}
	}
}

func TestSelector_FromExplicitWindow(t *testing.T) {
	b := quadBackend()
	b.SetActive(1)
	r := NewRegistry(b)
	s := NewSelector(r)

	from, _ := r.Get(4)
	got, ok := s.Select(tiling.Left, from)
	if !ok || got.ID != 3 {
		t.Fatalf("expected window 3 left of 4, got %v", got)
	}
}

func TestSelector_NoFocus(t *testing.T) {
	s := NewSelector(NewRegistry(quadBackend()))
	if _, ok := s.Select(tiling.Right, nil); ok {
		t.Fatalf("expected no selection without a focused window")
	}
}

func TestSelector_FocusDirection(t *testing.T) {
	b := quadBackend()
	b.SetActive(2)
	s := NewSelector(NewRegistry(b))

	s.FocusDirection(tiling.Down)
	calls := b.FocusCalls()
	if len(calls) != 1 || calls[0] != 4 {
		t.Fatalf("expected focus on window 4, got %v", calls)
	}
}
