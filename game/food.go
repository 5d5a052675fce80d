package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// Kind is the food category; it fixes lifetime, points and look.
type Kind int

const (
	Common Kind = iota // coin, 2 points, 10s
	Special            // gem, 5 points, 7s
	Rare               // crown, 10 points, 5s
)

// KindSpec holds the per-kind constants
type KindSpec struct {
	Lifetime   time.Duration
	BasePoints int
	Tag        string // particle and glyph color
	Symbol     string
}

var kindSpecs = [...]KindSpec{
	Common:  {Lifetime: 10 * time.Second, BasePoints: 2, Tag: "#FFD700", Symbol: "$"},
	Special: {Lifetime: 7 * time.Second, BasePoints: 5, Tag: "#00FFFF", Symbol: "◆"},
	Rare:    {Lifetime: 5 * time.Second, BasePoints: 10, Tag: "#FF69B4", Symbol: "♛"},
}

// Kinds lists every food kind in ascending value
var Kinds = []Kind{Common, Special, Rare}

// Spec returns the constants for k
func (k Kind) Spec() KindSpec {
	if k < Common || k > Rare {
		return kindSpecs[Common]
	}
	return kindSpecs[k]
}

func (k Kind) String() string {
	switch k {
	case Special:
		return "special"
	case Rare:
		return "rare"
	default:
		return "common"
	}
}

// drawKind picks a kind with weights 50/30/20
func drawKind(rng *rand.Rand) Kind {
	r := rng.Float64()
	switch {
	case r < 0.5:
		return Common
	case r < 0.8:
		return Special
	default:
		return Rare
	}
}

// countdownThreshold is when a food starts showing its timer
const countdownThreshold = 5 * time.Second

// Food is a timed collectible
type Food struct {
	Pos       Cell
	Kind      Kind
	CreatedAt time.Time
}

// NewFood stamps a food of kind k at pos
func NewFood(pos Cell, k Kind, now time.Time) Food {
	return Food{Pos: pos, Kind: k, CreatedAt: now}
}

// Lifetime is how long the food stays on the board
func (f *Food) Lifetime() time.Duration {
	return f.Kind.Spec().Lifetime
}

// Points returns the base value; multipliers are applied by the session.
func (f *Food) Points() int {
	return f.Kind.Spec().BasePoints
}

// Remaining returns the time left before expiry, never negative
func (f *Food) Remaining(now time.Time) time.Duration {
	left := f.Lifetime() - now.Sub(f.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// RemainingSeconds is Remaining in fractional seconds
func (f *Food) RemainingSeconds(now time.Time) float64 {
	return f.Remaining(now).Seconds()
}

// Expired reports whether the food has run out
func (f *Food) Expired(now time.Time) bool {
	return f.Remaining(now) <= 0
}

// ShowCountdown is a presentation hint for the last seconds
func (f *Food) ShowCountdown(now time.Time) bool {
	return f.Remaining(now) <= countdownThreshold
}
