package windows

import "github.com/1broseidon/snaptile/internal/tiling"

// inDirection reports whether a point lies past (cx, cy) in dir.
var inDirection = map[tiling.Direction]func(cx, cy, x, y int) bool{
	tiling.Left:  func(cx, cy, x, y int) bool { return x < cx },
	tiling.Up:    func(cx, cy, x, y int) bool { return y < cy },
	tiling.Right: func(cx, cy, x, y int) bool { return x > cx },
	tiling.Down:  func(cx, cy, x, y int) bool { return y > cy },
}

// Selector picks the nearest window in a direction.
type Selector struct {
	registry *Registry
}

// NewSelector creates a selector over the registry's windows.
func NewSelector(registry *Registry) *Selector {
	return &Selector{registry: registry}
}

// Select returns the window nearest to from in dir, comparing window
// centers by Manhattan distance. A nil from means the focused window.
// There is no wrap-around: the edge of the layout yields no window.
func (s *Selector) Select(dir tiling.Direction, from *Window) (*Window, bool) {
	if from == nil {
		focused, ok := s.registry.Focused()
		if !ok {
			return nil, false
		}
		from = focused
	}

	cx, cy := from.Rect().Center()
	past := inDirection[dir]
	if past == nil {
		return nil, false
	}

	var best *Window
	bestDist := -1
	for _, w := range s.registry.List() {
		if w.ID == from.ID {
			continue
		}
		x, y := w.Rect().Center()
		if !past(cx, cy, x, y) {
			continue
		}
		dist := abs(x-cx) + abs(y-cy)
		if best == nil || dist < bestDist {
			best, bestDist = w, dist
		}
	}
	return best, best != nil
}

// FocusDirection moves focus to the nearest window in dir.
func (s *Selector) FocusDirection(dir tiling.Direction) {
	if w, ok := s.Select(dir, nil); ok {
		s.registry.Focus(w)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
