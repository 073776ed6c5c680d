package tiling

import (
	"fmt"
	"math"
)

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns Width*Height, or 0 for degenerate rectangles.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Apply adds each component of delta to r.
func (r Rect) Apply(delta Rect) Rect {
	return Rect{
		X:      r.X + delta.X,
		Y:      r.Y + delta.Y,
		Width:  r.Width + delta.Width,
		Height: r.Height + delta.Height,
	}
}

// Intersects reports whether r and other overlap on half-open intervals.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Right() > other.X &&
		r.Bottom() > other.Y &&
		r.X < other.Right() &&
		r.Y < other.Bottom()
}

// Intersection returns the overlapping region of r and other.
// The zero Rect is returned when they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether (x, y) lies within r.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of r.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Expand grows r by margin on every side.
func (r Rect) Expand(margin int) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// ClampDiff clips r to bounds, trimming the size by however much each edge
// overflowed.
func (r Rect) ClampDiff(bounds Rect) Rect {
	if r.X < bounds.X {
		r.Width -= bounds.X - r.X
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Height -= bounds.Y - r.Y
		r.Y = bounds.Y
	}
	if r.Right() > bounds.Right() {
		r.Width = bounds.Right() - r.X
	}
	if r.Bottom() > bounds.Bottom() {
		r.Height = bounds.Bottom() - r.Y
	}
	return r
}

// RoundIncrement rounds value to the nearest multiple of increment, with
// halves rounding up. A non-positive increment leaves value untouched.
func RoundIncrement(value, increment int) int {
	if increment <= 0 {
		return value
	}
	return int(math.Floor(float64(value)/float64(increment)+0.5)) * increment
}
