package tiling

import "fmt"

// Direction is one of the four cardinal directions used for movement,
// resizing, swapping and neighbor lookup.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every direction in declaration order.
var Directions = []Direction{Left, Up, Right, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q (expected left, up, right or down)", s)
}

// Step returns the unit grid offset for moving one cell in d.
func (d Direction) Step() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	}
	return 0, 0
}
