package game

import (
	"errors"
	"fmt"
	"time"
)

// Rules holds the build-time tunables of a session.
type Rules struct {
	GridSize int `json:"gridSize"`

	InitialSpeed time.Duration `json:"initialSpeed"` // tick interval at level 1
	SpeedStep    time.Duration `json:"speedStep"`    // interval reduction per level
	MinSpeed     time.Duration `json:"minSpeed"`     // interval floor
	LevelScore   int           `json:"levelScore"`   // score per level threshold
	MaxLevel     int           `json:"maxLevel"`

	BonusInterval   time.Duration `json:"bonusInterval"`
	BonusDuration   time.Duration `json:"bonusDuration"`
	BonusFoodCount  int           `json:"bonusFoodCount"`
	BonusMultiplier int           `json:"bonusMultiplier"`

	MaxFood          int `json:"maxFood"`
	MaxObstacles     int `json:"maxObstacles"`
	InitialFood      int `json:"initialFood"`
	InitialObstacles int `json:"initialObstacles"`

	// Placement retry budget and the minimum reachable fraction of the
	// board an obstacle placement must leave.
	PlacementAttempts int     `json:"placementAttempts"`
	MinReachable      float64 `json:"minReachable"`

	ExpiryCheckInterval time.Duration `json:"expiryCheckInterval"`
	UnitsPerCell        float64       `json:"unitsPerCell"`
	FireworkCount       int           `json:"fireworkCount"`

	TestScore int `json:"testScore"`
	TestLevel int `json:"testLevel"`
}

// DefaultRules returns the standard arcade tuning
func DefaultRules() Rules {
	return Rules{
		GridSize:            20,
		InitialSpeed:        200 * time.Millisecond,
		SpeedStep:           5 * time.Millisecond,
		MinSpeed:            50 * time.Millisecond,
		LevelScore:          10,
		MaxLevel:            30,
		BonusInterval:       30 * time.Second,
		BonusDuration:       10 * time.Second,
		BonusFoodCount:      5,
		BonusMultiplier:     2,
		MaxFood:             10,
		MaxObstacles:        5,
		InitialFood:         4,
		InitialObstacles:    2,
		PlacementAttempts:   50,
		MinReachable:        0.6,
		ExpiryCheckInterval: time.Second,
		UnitsPerCell:        20,
		FireworkCount:       50,
		TestScore:           1000,
		TestLevel:           29,
	}
}

var errRules = errors.New("invalid rules")

// Validate checks that the rules describe a playable board
func (r Rules) Validate() error {
	switch {
	case r.GridSize < 11:
		// the reset snake spans (3..5, 10)
		return fmt.Errorf("%w: grid size %d below 11", errRules, r.GridSize)
	case r.InitialSpeed <= 0 || r.MinSpeed <= 0 || r.SpeedStep < 0:
		return fmt.Errorf("%w: speeds must be positive", errRules)
	case r.LevelScore <= 0:
		return fmt.Errorf("%w: level score must be positive", errRules)
	case r.MaxLevel < 1:
		return fmt.Errorf("%w: max level %d", errRules, r.MaxLevel)
	case r.BonusMultiplier < 1 || r.BonusFoodCount < 0:
		return fmt.Errorf("%w: bonus multiplier %d, food count %d", errRules, r.BonusMultiplier, r.BonusFoodCount)
	case r.BonusInterval <= 0 || r.BonusDuration <= 0:
		return fmt.Errorf("%w: bonus timings must be positive", errRules)
	case r.MaxFood < 0 || r.MaxObstacles < 0 || r.InitialFood < 0 || r.InitialObstacles < 0:
		return fmt.Errorf("%w: negative population", errRules)
	case r.PlacementAttempts < 1:
		return fmt.Errorf("%w: placement attempts %d", errRules, r.PlacementAttempts)
	case r.MinReachable < 0 || r.MinReachable > 1:
		return fmt.Errorf("%w: min reachable %.2f outside [0,1]", errRules, r.MinReachable)
	case r.ExpiryCheckInterval <= 0:
		return fmt.Errorf("%w: expiry check interval must be positive", errRules)
	case r.UnitsPerCell <= 0:
		return fmt.Errorf("%w: units per cell must be positive", errRules)
	case r.TestLevel < 1 || r.TestLevel > r.MaxLevel:
		return fmt.Errorf("%w: test level %d outside [1,%d]", errRules, r.TestLevel, r.MaxLevel)
	}
	return nil
}

// SpeedFor returns the tick interval for a level
func (r Rules) SpeedFor(level int) time.Duration {
	speed := r.InitialSpeed - time.Duration(level-1)*r.SpeedStep
	if speed < r.MinSpeed {
		return r.MinSpeed
	}
	return speed
}
