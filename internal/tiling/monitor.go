package tiling

// LocateMonitor returns the index of the monitor adjacent to monitors[active]
// in direction dir. Only monitors sharing a span on the perpendicular axis
// are considered, and the nearest one past the active monitor wins.
func LocateMonitor(monitors []Rect, active int, dir Direction) (int, bool) {
	if active < 0 || active >= len(monitors) {
		return 0, false
	}
	curr := monitors[active]

	pos := func(r Rect) int { return r.X }
	overlaps := overlapsY
	if dir == Up || dir == Down {
		pos = func(r Rect) int { return r.Y }
		overlaps = overlapsX
	}

	sign := 1
	if dir == Left || dir == Up {
		sign = -1
	}

	best, found := 0, false
	for i, r := range monitors {
		if i == active || !overlaps(r, curr) {
			continue
		}
		if sign*pos(r) <= sign*pos(curr) {
			continue
		}
		if !found || sign*pos(r) < sign*pos(monitors[best]) {
			best, found = i, true
		}
	}
	return best, found
}

// MonitorAt returns the index of the monitor containing the center of r,
// falling back to the monitor r overlaps most.
func MonitorAt(monitors []Rect, r Rect) (int, bool) {
	cx, cy := r.Center()
	for i, m := range monitors {
		if m.ContainsPoint(cx, cy) {
			return i, true
		}
	}
	best, bestArea := 0, 0
	for i, m := range monitors {
		if a := r.Intersection(m).Area(); a > bestArea {
			best, bestArea = i, a
		}
	}
	return best, bestArea > 0
}

func overlapsX(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right()
}

func overlapsY(a, b Rect) bool {
	return a.Y < b.Bottom() && b.Y < a.Bottom()
}
