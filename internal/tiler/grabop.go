package tiler

import (
	"strings"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Movement classifies how a rectangle changed between two poses.
type Movement uint8

const MovementNone Movement = 0

const (
	Moved Movement = 1 << iota
	Grow
	Shrink
	MoveLeft
	MoveUp
	MoveRight
	MoveDown
)

func (m Movement) String() string {
	if m == MovementNone {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Movement
		name string
	}{
		{Moved, "moved"},
		{Grow, "grow"},
		{Shrink, "shrink"},
		{MoveLeft, "left"},
		{MoveUp, "up"},
		{MoveRight, "right"},
		{MoveDown, "down"},
	} {
		if m&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// GrabOp captures a window's pose at the start of a resize step.
type GrabOp struct {
	Window platform.WindowID
	Rect   tiling.Rect
}

// Operation describes the change from the grabbed pose to change.
func (g GrabOp) Operation(change tiling.Rect) Movement {
	from := g.Rect
	sameX := from.X == change.X
	sameY := from.Y == change.Y

	switch {
	case sameX && sameY:
		switch {
		case from.Width == change.Width:
			switch {
			case from.Height == change.Height:
				return MovementNone
			case from.Height < change.Height:
				return Grow | MoveDown
			default:
				return Shrink | MoveUp
			}
		case from.Width < change.Width:
			return Grow | MoveRight
		default:
			return Shrink | MoveLeft
		}
	case sameX:
		if from.Height < change.Height {
			return Grow | MoveUp
		}
		return Shrink | MoveDown
	case sameY:
		if from.Width < change.Width {
			return Grow | MoveLeft
		}
		return Shrink | MoveRight
	default:
		return Moved
	}
}
