package game

// Orientation is the axis an obstacle extends along
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Obstacle is a fixed run of 2 or 3 cells. It never changes after placement.
type Obstacle struct {
	origin      Cell
	length      int
	orientation Orientation
	cells       []Cell
}

// NewObstacle derives the cell run starting at origin
func NewObstacle(origin Cell, length int, o Orientation) Obstacle {
	cells := make([]Cell, length)
	for i := range cells {
		if o == Horizontal {
			cells[i] = Cell{X: origin.X + i, Y: origin.Y}
		} else {
			cells[i] = Cell{X: origin.X, Y: origin.Y + i}
		}
	}
	return Obstacle{origin: origin, length: length, orientation: o, cells: cells}
}

func (o Obstacle) Origin() Cell             { return o.origin }
func (o Obstacle) Length() int              { return o.length }
func (o Obstacle) Orientation() Orientation { return o.orientation }

// Cells returns a copy of the occupied cells
func (o Obstacle) Cells() []Cell {
	out := make([]Cell, len(o.cells))
	copy(out, o.cells)
	return out
}

// Contains reports whether c is part of the obstacle
func (o Obstacle) Contains(c Cell) bool {
	for _, oc := range o.cells {
		if oc == c {
			return true
		}
	}
	return false
}
