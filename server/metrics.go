package server

import (
	"sync/atomic"

	"snakearena/game"
)

// RoomMetrics are the runtime counters of a room, for monitoring and debugging
type RoomMetrics struct {
	TickCount         int64 // ticks run
	InputsAccepted    int64 // inputs the session acted on
	InputsRefused     int64 // inputs the session ignored (reversal, wrong phase)
	InputsMalformed   int64 // messages that did not parse
	RateLimited       int64 // inputs dropped by the per-tick limit
	OldSeqIgnored     int64 // inputs with a stale sequence number
	ChanFullDiscarded int64 // inputs dropped because the channel was full
	TotalTickNs       int64 // accumulated tick time

	FoodsEaten   int64
	FoodsExpired int64
	BonusWindows int64
	GamesOver    int64
	GamesWon     int64
}

func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRefused()           { atomic.AddInt64(&m.InputsRefused, 1) }
func (m *RoomMetrics) IncMalformed()         { atomic.AddInt64(&m.InputsMalformed, 1) }
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// ObserveEvents folds one update's game events into the counters
func (m *RoomMetrics) ObserveEvents(events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventFoodEaten:
			atomic.AddInt64(&m.FoodsEaten, 1)
		case game.EventFoodExpired:
			atomic.AddInt64(&m.FoodsExpired, 1)
		case game.EventBonusStarted:
			atomic.AddInt64(&m.BonusWindows, 1)
		case game.EventGameOver:
			atomic.AddInt64(&m.GamesOver, 1)
		case game.EventWon:
			atomic.AddInt64(&m.GamesWon, 1)
		}
	}
}

// Snapshot returns a read-only copy for the HTTP endpoint
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"inputs_refused":      atomic.LoadInt64(&m.InputsRefused),
		"inputs_malformed":    atomic.LoadInt64(&m.InputsMalformed),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"foods_eaten":         atomic.LoadInt64(&m.FoodsEaten),
		"foods_expired":       atomic.LoadInt64(&m.FoodsExpired),
		"bonus_windows":       atomic.LoadInt64(&m.BonusWindows),
		"games_over":          atomic.LoadInt64(&m.GamesOver),
		"games_won":           atomic.LoadInt64(&m.GamesWon),
		"avg_tick_ms":         avgMs,
	}
}
