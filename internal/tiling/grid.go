package tiling

import (
	"math"
	"sort"
)

// Gaps holds the spacing applied around snapped rectangles, in pixels.
// InnerHalf is normally Inner/2 and is applied on each side of an interior
// edge so that neighbors end up Inner pixels apart.
type Gaps struct {
	Inner     int
	InnerHalf int
	Outer     int
}

// Grid describes the tiling grid: the nominal cell size and the gaps.
type Grid struct {
	ColumnSize int
	RowSize    int
	Gaps       Gaps
}

// Cell returns the grid cell for a work area, see MonitorRect.
func (g Grid) Cell(workArea Rect) Rect {
	columns := float64(workArea.Width) / float64(g.ColumnSize)
	rows := float64(workArea.Height) / float64(g.RowSize)
	return MonitorRect(workArea, columns, rows)
}

// MonitorRect returns a grid cell anchored at the monitor origin, sized so
// that columns x rows cells cover the monitor. Ultrawide monitors (21:9 and
// wider) get half-width cells; rotated ultrawides get half-height cells.
func MonitorRect(monitor Rect, columns, rows float64) Rect {
	tileWidth := float64(monitor.Width) / columns
	tileHeight := float64(monitor.Height) / rows

	if monitor.Width*9 >= monitor.Height*21 {
		tileWidth /= 2
	}
	if monitor.Height*9 >= monitor.Width*21 {
		tileHeight /= 2
	}

	return Rect{
		X:      monitor.X,
		Y:      monitor.Y,
		Width:  int(math.Round(tileWidth)),
		Height: int(math.Round(tileHeight)),
	}
}

// TileMonitors returns the work areas that rect overlaps, most overlapped
// first. Ties keep the monitor order.
func TileMonitors(rect Rect, workAreas []Rect) []Rect {
	var hits []Rect
	for _, wa := range workAreas {
		if rect.Intersects(wa) {
			hits = append(hits, wa)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return rect.Intersection(hits[i]).Area() > rect.Intersection(hits[j]).Area()
	})
	return hits
}

// monitorBounds returns the region a snapped rectangle must stay inside.
// The bottom bound is the smallest bottom edge among the monitors, so a
// rectangle may not hang below the shortest monitor it touches.
func monitorBounds(monitors []Rect) Rect {
	minX, minY := monitors[0].X, monitors[0].Y
	maxX, maxY := monitors[0].Right(), monitors[0].Bottom()
	for _, m := range monitors[1:] {
		minX = min(minX, m.X)
		minY = min(minY, m.Y)
		maxX = max(maxX, m.Right())
		maxY = min(maxY, m.Bottom())
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Change moves and resizes overlay by delta, measured in cells, snaps the
// result to the cell grid and applies gaps relative to monitor.
//
// The returned bool is false when the snapped rectangle overlaps no work
// area or leaves the bounds of the monitors it overlaps; callers keep the
// previous overlay in that case.
func (g Grid) Change(overlay, monitor, cell, delta Rect, workAreas []Rect) (Rect, bool) {
	changed := Rect{
		X:      overlay.X + delta.X*cell.Width,
		Y:      overlay.Y + delta.Y*cell.Height,
		Width:  overlay.Width + delta.Width*cell.Width,
		Height: overlay.Height + delta.Height*cell.Height,
	}

	changed.X = RoundIncrement(changed.X-cell.X, cell.Width) + cell.X
	changed.Y = RoundIncrement(changed.Y-cell.Y, cell.Height) + cell.Y
	changed.Width = RoundIncrement(changed.Width, cell.Width)
	changed.Height = RoundIncrement(changed.Height, cell.Height)

	if changed.Width < cell.Width {
		changed.Width = cell.Width
	}
	if changed.Height < cell.Height {
		changed.Height = cell.Height
	}

	monitors := TileMonitors(changed, workAreas)
	if len(monitors) == 0 {
		return overlay, false
	}

	bounds := monitorBounds(monitors)
	if changed.X < bounds.X || changed.Right() > bounds.Right() ||
		changed.Y < bounds.Y || changed.Bottom() > bounds.Bottom() {
		return overlay, false
	}

	return g.applyGaps(changed, monitor, cell), true
}

func (g Grid) applyGaps(r, monitor, cell Rect) Rect {
	r.X, r.Width = g.gapAxis(r.X, r.Width, monitor.X, monitor.Right(), cell.Width)
	r.Y, r.Height = g.gapAxis(r.Y, r.Height, monitor.Y, monitor.Bottom(), cell.Height)
	return r
}

// gapAxis insets one axis of a snapped rectangle. Edges within one cell of
// the monitor boundary get the outer gap, interior edges half the inner gap.
func (g Grid) gapAxis(pos, size, lo, hi, cellSize int) (int, int) {
	first := pos-lo < cellSize
	last := pos+size > hi-cellSize

	switch {
	case first && last:
		return pos + g.Gaps.Outer, size - 2*g.Gaps.Outer
	case first:
		return pos + g.Gaps.Outer, size - (g.Gaps.InnerHalf + g.Gaps.Outer)
	case last:
		return pos + g.Gaps.InnerHalf, size - (g.Gaps.InnerHalf + g.Gaps.Outer)
	default:
		return pos + g.Gaps.InnerHalf, size - g.Gaps.Inner
	}
}
