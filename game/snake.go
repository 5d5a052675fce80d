package game

// Snake owns the body segments (head first) and the heading.
type Snake struct {
	body      []Cell
	direction Direction
	moved     Direction // heading of the last Move
	growing   bool
}

// NewSnake returns a snake in its reset position
func NewSnake() *Snake {
	s := &Snake{}
	s.Reset()
	return s
}

// Reset puts the snake back to three horizontal segments heading right.
func (s *Snake) Reset() {
	s.body = []Cell{{X: 5, Y: 10}, {X: 4, Y: 10}, {X: 3, Y: 10}}
	s.direction = Right
	s.moved = Right
	s.growing = false
}

// SetDirection replaces the heading for the next move. The exact inverse of
// the current heading is ignored and reported as false.
func (s *Snake) SetDirection(d Direction) bool {
	if !d.IsUnit() || d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Move advances the head one cell. A pending grow keeps the tail.
func (s *Snake) Move() {
	head := s.body[0].Add(s.direction)
	s.moved = s.direction
	if s.growing {
		s.growing = false
	} else {
		s.body = s.body[:len(s.body)-1]
	}
	s.body = append([]Cell{head}, s.body...)
}

// Grow defers tail removal on the next Move
func (s *Snake) Grow() {
	s.growing = true
}

// Occupies reports whether any segment sits on c
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head overlaps a later segment.
func (s *Snake) HitsSelf() bool {
	head := s.body[0]
	for _, seg := range s.body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

func (s *Snake) Head() Cell           { return s.body[0] }
func (s *Snake) Direction() Direction { return s.direction }
func (s *Snake) LastMoved() Direction { return s.moved }
func (s *Snake) Growing() bool        { return s.growing }
func (s *Snake) Len() int             { return len(s.body) }

// Body returns a copy of the segments, head first
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}
