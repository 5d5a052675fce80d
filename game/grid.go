package game

import "strings"

// Cell is a coordinate on the board
type Cell struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Add translates the cell by one step in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Direction is a unit step along one axis
type Direction struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Opposite returns the inverse heading
func (d Direction) Opposite() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// IsZero reports whether d is the zero vector
func (d Direction) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// IsUnit reports whether d is one of the four headings
func (d Direction) IsUnit() bool {
	return (d.X == 0) != (d.Y == 0) && d.X*d.X+d.Y*d.Y == 1
}

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
	return "none"
}

// ParseDirection maps "up", "down", "left", "right" (any case) to a heading.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Direction{}, false
}

var neighbours = [4]Direction{Right, Left, Down, Up}

func inBounds(c Cell, size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}
