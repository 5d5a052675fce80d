package game

import (
	"time"

	"go.uber.org/zap"
)

// obstacleMargin keeps obstacles off the outer ring of the board
const obstacleMargin = 2

func (s *Session) foodAt(c Cell) int {
	for i := range s.foods {
		if s.foods[i].Pos == c {
			return i
		}
	}
	return -1
}

func (s *Session) obstacleAt(c Cell) bool {
	for _, o := range s.obstacles {
		if o.Contains(c) {
			return true
		}
	}
	return false
}

// occupied reports whether c holds the snake, a food or an obstacle
func (s *Session) occupied(c Cell) bool {
	return s.snake.Occupies(c) || s.foodAt(c) >= 0 || s.obstacleAt(c)
}

func (s *Session) randomCell() Cell {
	n := s.rules.GridSize
	return Cell{X: s.rng.Intn(n), Y: s.rng.Intn(n)}
}

// GenerateFood places one new food at a free cell. It reports false when
// the board is at its food cap or no free cell was found within the
// attempt budget; callers retry on a later cycle.
func (s *Session) GenerateFood() bool {
	return s.generateFood(s.now)
}

func (s *Session) generateFood(now time.Time) bool {
	if len(s.foods) >= s.rules.MaxFood {
		return false
	}
	kind := drawKind(s.rng)
	for attempt := 0; attempt < s.rules.PlacementAttempts; attempt++ {
		c := s.randomCell()
		if s.occupied(c) {
			continue
		}
		s.foods = append(s.foods, NewFood(c, kind, now))
		return true
	}
	s.log.Debug("food placement exhausted", zap.Int("attempts", s.rules.PlacementAttempts), zap.Int("foods", len(s.foods)))
	return false
}

// GenerateObstacle places one obstacle away from the border, clear of
// everything on the board, and only where the head can still reach
// enough of the grid.
func (s *Session) GenerateObstacle() bool {
	if len(s.obstacles) >= s.rules.MaxObstacles {
		return false
	}
	n := s.rules.GridSize
	span := n - 2*obstacleMargin
	if span <= 0 {
		return false
	}
	for attempt := 0; attempt < s.rules.PlacementAttempts; attempt++ {
		origin := Cell{X: s.rng.Intn(span) + obstacleMargin, Y: s.rng.Intn(span) + obstacleMargin}
		length := 2 + s.rng.Intn(2)
		orient := Horizontal
		if s.rng.Float64() < 0.5 {
			orient = Vertical
		}
		if orient == Horizontal && origin.X+length > n-obstacleMargin {
			continue
		}
		if orient == Vertical && origin.Y+length > n-obstacleMargin {
			continue
		}
		o := NewObstacle(origin, length, orient)
		if s.overlaps(o) || s.blocksPath(o) {
			continue
		}
		s.obstacles = append(s.obstacles, o)
		return true
	}
	s.log.Debug("obstacle placement exhausted", zap.Int("attempts", s.rules.PlacementAttempts), zap.Int("obstacles", len(s.obstacles)))
	return false
}

func (s *Session) overlaps(o Obstacle) bool {
	for _, c := range o.cells {
		if s.occupied(c) {
			return true
		}
	}
	return false
}

// blocksPath reports whether adding o would leave fewer reachable cells
// than the configured fraction of the board.
func (s *Session) blocksPath(o Obstacle) bool {
	n := s.rules.GridSize
	need := s.rules.MinReachable * float64(n*n)
	return float64(s.reachableWith(o)) < need
}

// reachableWith counts cells connected to the head when o is added.
// Only obstacles block; food and the snake body are walkable.
func (s *Session) reachableWith(extra ...Obstacle) int {
	return floodFill(s.rules.GridSize, s.snake.Head(), func(c Cell) bool {
		if s.obstacleAt(c) {
			return true
		}
		for _, o := range extra {
			if o.Contains(c) {
				return true
			}
		}
		return false
	})
}

// floodFill counts cells four-connected to start that are not blocked.
// The start cell is counted even when blocked reports true for it.
func floodFill(size int, start Cell, blocked func(Cell) bool) int {
	if !inBounds(start, size) {
		return 0
	}
	seen := make([]bool, size*size)
	seen[start.Y*size+start.X] = true
	queue := []Cell{start}
	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		count++
		for _, d := range neighbours {
			next := cur.Add(d)
			if !inBounds(next, size) {
				continue
			}
			idx := next.Y*size + next.X
			if seen[idx] || blocked(next) {
				continue
			}
			seen[idx] = true
			queue = append(queue, next)
		}
	}
	return count
}

// scatterBonusFood drops extra food for an opening bonus window. Each item
// gets its own attempt budget and is skipped when none succeeds.
func (s *Session) scatterBonusFood(now time.Time) int {
	placed := 0
	for i := 0; i < s.rules.BonusFoodCount; i++ {
		if s.generateFood(now) {
			placed++
		}
	}
	return placed
}
