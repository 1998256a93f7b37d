package sim

import (
	"fmt"
	"math"
)

// Coord identifies a grid cell by integer 2D coordinate.
// It is the unique key for cell storage and scheduling sets.
type Coord struct {
	X int
	Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Vec2 is a world-space position. The animation layer interpolates item views
// between cell centers expressed as Vec2.
type Vec2 struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two world positions.
func (v Vec2) Dist(o Vec2) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point a fraction t of the way from v to o.
// t is clamped to [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	if t <= 0 {
		return v
	}
	if t >= 1 {
		return o
	}
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Direction is a cardinal routing direction on the grid.
// DirNone means unconfigured.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Vector returns the unit cell offset for the direction.
func (d Direction) Vector() Coord {
	switch d {
	case DirUp:
		return Coord{X: 0, Y: 1}
	case DirRight:
		return Coord{X: 1, Y: 0}
	case DirDown:
		return Coord{X: 0, Y: -1}
	case DirLeft:
		return Coord{X: -1, Y: 0}
	default:
		return Coord{}
	}
}

// Opposite returns the reverse direction. DirNone maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection converts a direction name to a Direction.
// Valid names: "up", "right", "down", "left", "none" (and "" for none).
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "up":
		return DirUp, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "none", "":
		return DirNone, nil
	default:
		return DirNone, fmt.Errorf("unknown direction %q", name)
	}
}
