package game

import "time"

// BonusWindow tracks the recurring score-multiplier window.
type BonusWindow struct {
	Active        bool
	EndsAt        time.Time
	LastTriggerAt time.Time
}

// Reset restarts the interval countdown from now
func (b *BonusWindow) Reset(now time.Time) {
	b.Active = false
	b.EndsAt = time.Time{}
	b.LastTriggerAt = now
}

// Step closes an expired window, otherwise opens one when the interval has
// elapsed. At most one of the results is true.
func (b *BonusWindow) Step(now time.Time, interval, duration time.Duration) (started, ended bool) {
	if b.Active {
		if !now.Before(b.EndsAt) {
			b.Active = false
			return false, true
		}
		return false, false
	}
	if now.Sub(b.LastTriggerAt) >= interval {
		b.Active = true
		b.EndsAt = now.Add(duration)
		b.LastTriggerAt = now
		return true, false
	}
	return false, false
}

// Multiplier returns m while the window is open, 1 otherwise
func (b *BonusWindow) Multiplier(m int) int {
	if b.Active {
		return m
	}
	return 1
}

// Remaining is the time left in an open window
func (b *BonusWindow) Remaining(now time.Time) time.Duration {
	if !b.Active || !now.Before(b.EndsAt) {
		return 0
	}
	return b.EndsAt.Sub(now)
}

// NextIn is the time until the next window may open
func (b *BonusWindow) NextIn(now time.Time, interval time.Duration) time.Duration {
	if b.Active {
		return 0
	}
	left := interval - now.Sub(b.LastTriggerAt)
	if left < 0 {
		return 0
	}
	return left
}
