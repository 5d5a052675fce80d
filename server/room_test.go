package server

import (
	"testing"
	"time"

	"snakearena/game"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := NewRoom("test", ManagerConfig{Rules: game.DefaultRules()})
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	return r
}

func TestNewRoomRejectsBadRules(t *testing.T) {
	rules := game.DefaultRules()
	rules.GridSize = 4
	if _, err := NewRoom("bad", ManagerConfig{Rules: rules}); err == nil {
		t.Fatal("expected error for a 4x4 grid")
	}
}

func TestProcessInputsAppliesToSession(t *testing.T) {
	r := newTestRoom(t)
	r.RequestJoin("alice", nil)
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdStart}, Seq: 1})
	r.BeginTick()
	r.ProcessInputs()

	if got := r.session.Phase(); got != game.PhasePlaying {
		t.Fatalf("phase = %s, want playing", got)
	}
	if r.metrics.InputsAccepted != 1 {
		t.Fatalf("accepted = %d, want 1", r.metrics.InputsAccepted)
	}

	// a second start is refused by the session, not the room
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdStart}, Seq: 2})
	r.BeginTick()
	r.ProcessInputs()
	if r.metrics.InputsRefused != 1 {
		t.Fatalf("refused = %d, want 1", r.metrics.InputsRefused)
	}
}

func TestProcessInputsIgnoresStaleSeqAndUnknownPlayers(t *testing.T) {
	r := newTestRoom(t)
	r.RequestJoin("alice", nil)
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdStart}, Seq: 5})
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdDirection, Dir: game.Down}, Seq: 5})
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdDirection, Dir: game.Down}, Seq: 3})
	r.OnInput(Input{PlayerID: "mallory", Command: game.Input{Command: game.CmdRestart}, Seq: 9})
	r.BeginTick()
	r.ProcessInputs()

	if r.metrics.OldSeqIgnored != 2 {
		t.Fatalf("old seq ignored = %d, want 2", r.metrics.OldSeqIgnored)
	}
	if r.metrics.InputsAccepted != 1 {
		t.Fatalf("accepted = %d, want 1", r.metrics.InputsAccepted)
	}
}

func TestProcessInputsRateLimit(t *testing.T) {
	r := newTestRoom(t)
	if err := r.UpdateConfig(func(c *RoomConfig) { c.MaxInputsPerTick = 2 }); err != nil {
		t.Fatal(err)
	}
	r.RequestJoin("alice", nil)
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdStart}})
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdDirection, Dir: game.Up}})
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdDirection, Dir: game.Left}})
	r.BeginTick()
	r.ProcessInputs()

	if r.metrics.RateLimited != 1 {
		t.Fatalf("rate limited = %d, want 1", r.metrics.RateLimited)
	}
	// the counter resets on the next tick
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdDirection, Dir: game.Right}})
	r.BeginTick()
	r.ProcessInputs()
	if r.metrics.RateLimited != 1 {
		t.Fatalf("rate limited after reset = %d, want 1", r.metrics.RateLimited)
	}
}

func TestOnInputDropsWhenFull(t *testing.T) {
	r := newTestRoom(t)
	for i := 0; i < cap(r.inputChan)+3; i++ {
		r.OnInput(Input{PlayerID: "alice"})
	}
	if r.metrics.ChanFullDiscarded != 3 {
		t.Fatalf("discarded = %d, want 3", r.metrics.ChanFullDiscarded)
	}
}

func TestLeaveAndRoster(t *testing.T) {
	r := newTestRoom(t)
	r.RequestJoin("bob", nil)
	r.RequestJoin("alice", nil)
	r.ProcessInputs()

	roster := r.Roster()
	if len(roster) != 2 || roster[0].ID != "alice" || roster[1].ID != "bob" {
		t.Fatalf("roster = %+v", roster)
	}

	r.RequestLeave("alice", nil)
	r.ProcessInputs()
	if _, ok := r.Players["alice"]; ok {
		t.Fatal("alice still in room")
	}
	if len(r.Roster()) != 1 {
		t.Fatalf("roster = %+v", r.Roster())
	}
}

func TestUpdateConfigValidation(t *testing.T) {
	r := newTestRoom(t)
	if err := r.UpdateConfig(func(c *RoomConfig) { c.MaxInputsPerTick = 0 }); err == nil {
		t.Fatal("expected error for zero input budget")
	}
	if err := r.UpdateConfig(func(c *RoomConfig) { c.Rules.GridSize = 3 }); err == nil {
		t.Fatal("expected error for a tiny grid")
	}
	if got := r.Config().Rules.GridSize; got != 20 {
		t.Fatalf("grid size changed to %d after rejected updates", got)
	}
}

func TestStagedRulesApplyOnNextGame(t *testing.T) {
	r := newTestRoom(t)
	if err := r.UpdateConfig(func(c *RoomConfig) { c.Rules.GridSize = 30 }); err != nil {
		t.Fatal(err)
	}
	r.BeginTick()
	if got := r.session.Rules().GridSize; got != 20 {
		t.Fatalf("rules applied before the next game: grid %d", got)
	}
	if !r.session.Apply(game.Input{Command: game.CmdTestMode}) {
		t.Fatal("test mode refused")
	}
	if got := r.session.Rules().GridSize; got != 30 {
		t.Fatalf("grid = %d, want 30", got)
	}
}

func TestUpdateWorldCountsGameOver(t *testing.T) {
	r := newTestRoom(t)
	r.RequestJoin("alice", nil)
	r.OnInput(Input{PlayerID: "alice", Command: game.Input{Command: game.CmdStart}})
	r.ProcessInputs()

	now := time.Now()
	for i := 0; i < 100 && r.Phase() != game.PhaseGameOver; i++ {
		now = now.Add(250 * time.Millisecond)
		r.UpdateWorld(now)
	}
	if r.Phase() != game.PhaseGameOver {
		t.Fatalf("phase = %s, want game_over", r.Phase())
	}
	if r.metrics.GamesOver != 1 {
		t.Fatalf("games over = %d, want 1", r.metrics.GamesOver)
	}
}

func TestTickerRunsAndStops(t *testing.T) {
	r := newTestRoom(t)
	r.StartTicker()
	deadline := time.Now().Add(2 * time.Second)
	for r.Tick() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	r.Stop()
	n := r.Tick()
	if n < 3 {
		t.Fatalf("ticks = %d, want at least 3", n)
	}
	time.Sleep(50 * time.Millisecond)
	if r.Tick() != n {
		t.Fatal("ticker kept running after Stop")
	}
}
