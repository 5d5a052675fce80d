package game

import (
	"testing"
)

func TestFloodFill(t *testing.T) {
	wall := func(c Cell) bool { return c.X == 2 }
	if got := floodFill(5, Cell{X: 0, Y: 0}, wall); got != 10 {
		t.Errorf("left of the wall: %d cells, want 10", got)
	}
	if got := floodFill(5, Cell{X: 4, Y: 4}, func(Cell) bool { return false }); got != 25 {
		t.Errorf("open board: %d cells, want 25", got)
	}
	if got := floodFill(5, Cell{X: -1, Y: 0}, wall); got != 0 {
		t.Errorf("out of bounds start: %d, want 0", got)
	}
}

func TestGenerateFoodCap(t *testing.T) {
	s := newPlaying(t)
	for i := 0; i < s.Rules().MaxFood; i++ {
		if !s.GenerateFood() {
			t.Fatalf("food %d failed on an empty board", i)
		}
	}
	if s.GenerateFood() {
		t.Error("generation past the cap should fail")
	}
	seen := map[Cell]bool{}
	for _, f := range s.foods {
		if seen[f.Pos] || s.snake.Occupies(f.Pos) {
			t.Errorf("food at %v overlaps", f.Pos)
		}
		seen[f.Pos] = true
	}
}

func TestGenerateFoodExhaustion(t *testing.T) {
	r := DefaultRules()
	r.GridSize = 11
	r.MaxFood = 1000
	s, err := NewSession(r, WithSeed(2), WithStart(t0))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.obstacles = nil
	s.foods = nil
	for y := 0; y < r.GridSize; y++ {
		for x := 0; x < r.GridSize; x++ {
			c := Cell{X: x, Y: y}
			if !s.snake.Occupies(c) {
				s.foods = append(s.foods, NewFood(c, Common, t0))
			}
		}
	}
	if s.GenerateFood() {
		t.Fatal("a full board cannot take more food")
	}
}

func TestGenerateObstacleStaysInside(t *testing.T) {
	r := DefaultRules()
	r.MaxObstacles = 30
	for seed := uint64(1); seed <= 20; seed++ {
		s, err := NewSession(r, WithSeed(seed), WithStart(t0))
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		for s.GenerateObstacle() {
		}
		for _, o := range s.obstacles {
			if o.Length() < 2 || o.Length() > 3 {
				t.Fatalf("seed %d: obstacle length %d", seed, o.Length())
			}
			for _, c := range o.Cells() {
				if c.X < 2 || c.Y < 2 || c.X >= r.GridSize-2 || c.Y >= r.GridSize-2 {
					t.Fatalf("seed %d: obstacle cell %v inside the border margin", seed, c)
				}
				if s.snake.Occupies(c) || s.foodAt(c) >= 0 {
					t.Fatalf("seed %d: obstacle cell %v overlaps", seed, c)
				}
			}
		}
	}
}

// Random boards: every accepted obstacle must keep the reachable area at
// or above the threshold, however many are packed in.
func TestGenerateObstacleKeepsReachability(t *testing.T) {
	r := DefaultRules()
	r.MaxObstacles = 200
	r.PlacementAttempts = 200
	r.MinReachable = 0.8
	need := r.MinReachable * float64(r.GridSize*r.GridSize)

	for seed := uint64(1); seed <= 25; seed++ {
		s, err := NewSession(r, WithSeed(seed), WithStart(t0))
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		placed := 0
		for s.GenerateObstacle() {
			placed++
			if got := float64(s.reachableWith()); got < need {
				t.Fatalf("seed %d: obstacle %d left %.0f reachable cells, need %.0f", seed, placed, got, need)
			}
		}
		if len(s.obstacles) >= r.MaxObstacles {
			t.Fatalf("seed %d: threshold never rejected a placement", seed)
		}
	}
}

func TestGenerateObstacleRejectsBlockingPlacement(t *testing.T) {
	r := DefaultRules()
	r.MinReachable = 1
	s, err := NewSession(r, WithSeed(4), WithStart(t0))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	before := len(s.obstacles)
	if before != 0 {
		t.Fatalf("no obstacle can keep the whole board reachable, got %d", before)
	}
	if s.GenerateObstacle() {
		t.Error("placement accepted although it reduces reachability below the threshold")
	}
}

func TestGenerateObstacleCap(t *testing.T) {
	s := newPlaying(t)
	for i := 0; i < s.Rules().MaxObstacles; i++ {
		if !s.GenerateObstacle() {
			t.Fatalf("obstacle %d failed on an empty board", i)
		}
	}
	if s.GenerateObstacle() {
		t.Error("generation past the cap should fail")
	}
}
