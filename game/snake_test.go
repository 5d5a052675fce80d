package game

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestSnakeMove(t *testing.T) {
	s := NewSnake()
	s.Move()

	want := []Cell{{X: 6, Y: 10}, {X: 5, Y: 10}, {X: 4, Y: 10}}
	got := s.Body()
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSnakeGrowTakesEffectOnNextMove(t *testing.T) {
	s := NewSnake()
	s.Grow()
	if s.Len() != 3 {
		t.Fatalf("grow must not change length immediately, got %d", s.Len())
	}
	s.Move()
	if s.Len() != 4 {
		t.Fatalf("expected length 4 after growing move, got %d", s.Len())
	}
	if s.Growing() {
		t.Error("growing flag should clear after one move")
	}
	s.Move()
	if s.Len() != 4 {
		t.Errorf("expected length to stay 4, got %d", s.Len())
	}
}

func TestSnakeRejectsReversal(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		ok   bool
	}{
		{"reverse", Left, false},
		{"same", Right, true},
		{"turn up", Up, true},
		{"turn down", Down, true},
		{"zero", Direction{}, false},
		{"diagonal", Direction{X: 1, Y: 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSnake()
			second := s.Body()[1]
			if got := s.SetDirection(tc.dir); got != tc.ok {
				t.Fatalf("SetDirection(%v) = %v, want %v", tc.dir, got, tc.ok)
			}
			s.Move()
			if s.Head() == second {
				t.Errorf("head moved back onto the second segment %v", second)
			}
		})
	}
}

// Random walks must keep the body contiguous and grow by exactly the
// pending amount each move.
func TestSnakeContiguityUnderRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirs := []Direction{Up, Down, Left, Right}
	s := NewSnake()

	for step := 0; step < 2000; step++ {
		s.SetDirection(dirs[rng.Intn(len(dirs))])
		if rng.Intn(5) == 0 {
			s.Grow()
		}
		prevLen := s.Len()
		pending := s.Growing()
		prevHead := s.Head()

		s.Move()

		wantLen := prevLen
		if pending {
			wantLen++
		}
		if s.Len() != wantLen {
			t.Fatalf("step %d: length %d, want %d", step, s.Len(), wantLen)
		}
		if s.Head() != prevHead.Add(s.Direction()) {
			t.Fatalf("step %d: head %v is not %v + %v", step, s.Head(), prevHead, s.Direction())
		}
		body := s.Body()
		for i := 1; i < len(body); i++ {
			dx, dy := body[i-1].X-body[i].X, body[i-1].Y-body[i].Y
			if dx*dx+dy*dy > 1 {
				t.Fatalf("step %d: segments %d and %d are not adjacent: %v %v", step, i-1, i, body[i-1], body[i])
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"up", "DOWN", " Left ", "right"} {
		if _, ok := ParseDirection(in); !ok {
			t.Errorf("ParseDirection(%q) failed", in)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("unexpected direction for garbage input")
	}
	if d, _ := ParseDirection("up"); d.Opposite() != Down {
		t.Errorf("opposite of up should be down, got %v", d.Opposite())
	}
}
