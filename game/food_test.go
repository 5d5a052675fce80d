package game

import (
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

func TestFoodKindSpecs(t *testing.T) {
	tests := []struct {
		kind     Kind
		lifetime time.Duration
		points   int
	}{
		{Common, 10 * time.Second, 2},
		{Special, 7 * time.Second, 5},
		{Rare, 5 * time.Second, 10},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			f := NewFood(Cell{X: 1, Y: 1}, tc.kind, time.Unix(0, 0))
			if f.Lifetime() != tc.lifetime {
				t.Errorf("lifetime %v, want %v", f.Lifetime(), tc.lifetime)
			}
			if f.Points() != tc.points {
				t.Errorf("points %d, want %d", f.Points(), tc.points)
			}
		})
	}
}

func TestFoodRemainingCountsDown(t *testing.T) {
	t0 := time.Unix(1000, 0)
	f := NewFood(Cell{}, Special, t0)
	life := f.Lifetime()

	prev := f.RemainingSeconds(t0)
	if prev != life.Seconds() {
		t.Fatalf("fresh food should report full lifetime, got %.3f", prev)
	}
	for at := 250 * time.Millisecond; at < life; at += 250 * time.Millisecond {
		cur := f.RemainingSeconds(t0.Add(at))
		if cur >= prev {
			t.Fatalf("remaining did not decrease at %v: %.3f >= %.3f", at, cur, prev)
		}
		prev = cur
	}
	for _, after := range []time.Duration{0, time.Millisecond, time.Hour} {
		if got := f.RemainingSeconds(t0.Add(life + after)); got != 0 {
			t.Errorf("remaining at lifetime+%v = %.3f, want 0", after, got)
		}
		if !f.Expired(t0.Add(life + after)) {
			t.Errorf("food should be expired at lifetime+%v", after)
		}
	}
}

func TestFoodCountdownHint(t *testing.T) {
	t0 := time.Unix(0, 0)
	f := NewFood(Cell{}, Common, t0)
	if f.ShowCountdown(t0.Add(4 * time.Second)) {
		t.Error("6s left should not show the countdown")
	}
	if !f.ShowCountdown(t0.Add(5 * time.Second)) {
		t.Error("5s left should show the countdown")
	}
}

func TestDrawKindDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 20000
	var counts [3]int
	for i := 0; i < n; i++ {
		counts[drawKind(rng)]++
	}
	want := [3]float64{0.5, 0.3, 0.2}
	for k, c := range counts {
		got := float64(c) / n
		if got < want[k]-0.03 || got > want[k]+0.03 {
			t.Errorf("%v drawn %.3f of the time, want ~%.2f", Kind(k), got, want[k])
		}
	}
}

func TestObstacleCells(t *testing.T) {
	h := NewObstacle(Cell{X: 4, Y: 7}, 3, Horizontal)
	want := []Cell{{X: 4, Y: 7}, {X: 5, Y: 7}, {X: 6, Y: 7}}
	for i, c := range h.Cells() {
		if c != want[i] {
			t.Errorf("horizontal cell %d: %v, want %v", i, c, want[i])
		}
	}
	v := NewObstacle(Cell{X: 4, Y: 7}, 2, Vertical)
	if !v.Contains(Cell{X: 4, Y: 8}) || v.Contains(Cell{X: 5, Y: 7}) {
		t.Errorf("vertical obstacle has wrong cells: %v", v.Cells())
	}
}

func TestLevelTitleCapped(t *testing.T) {
	if LevelTitle(1) == "" {
		t.Fatal("level 1 needs a title")
	}
	if LevelTitle(30) != LevelTitle(99) {
		t.Errorf("levels past the table should reuse the last title")
	}
	if LevelTitle(0) != LevelTitle(1) {
		t.Errorf("level 0 should clamp to the first title")
	}
}
