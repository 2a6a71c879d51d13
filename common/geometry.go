package common

import (
	"fmt"
	"math"
)

// Position is a point in integer world units.
type Position struct {
	X int
	Y int
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |dx| + |dy| between two points.
func (p Position) Manhattan(o Position) int {
	return Abs(p.X-o.X) + Abs(p.Y-o.Y)
}

func (p Position) Distance(o Position) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned box in world units. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Intersects reports whether two boxes share interior area. Touching edges do
// not count as an overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

func (r Rect) TopLeft() Position {
	return Position{X: r.X, Y: r.Y}
}

func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// At returns the same-sized box moved to p.
func (r Rect) At(p Position) Rect {
	return Rect{X: p.X, Y: p.Y, W: r.W, H: r.H}
}

// Grow expands the box by margin on every side.
func (r Rect) Grow(margin int) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Direction is one of the four cardinal directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	panic(fmt.Sprintf("common: unknown direction %d", int(d)))
}

// Vector returns the unit step for the direction.
func (d Direction) Vector() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	panic(fmt.Sprintf("common: unknown direction %d", int(d)))
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("common: unknown direction %d", int(d)))
}

// Perpendicular returns the two directions at right angles to d.
func (d Direction) Perpendicular() [2]Direction {
	if d == Up || d == Down {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}

// Toward returns the directions that reduce the distance from one point to
// another, the axis with the larger error first. Ties prefer the horizontal
// axis. The slice is empty when the points coincide.
func Toward(from, to Position) []Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y

	var horizontal, vertical Direction
	if dx > 0 {
		horizontal = Right
	} else {
		horizontal = Left
	}
	if dy > 0 {
		vertical = Down
	} else {
		vertical = Up
	}

	out := make([]Direction, 0, 2)
	switch {
	case dx == 0 && dy == 0:
	case dx == 0:
		out = append(out, vertical)
	case dy == 0:
		out = append(out, horizontal)
	case Abs(dx) >= Abs(dy):
		out = append(out, horizontal, vertical)
	default:
		out = append(out, vertical, horizontal)
	}
	return out
}
