package game

// FoodView is the render-side view of a food item
type FoodView struct {
	Pos              Cell    `json:"pos" msgpack:"pos"`
	Kind             Kind    `json:"kind" msgpack:"kind"`
	Symbol           string  `json:"symbol" msgpack:"symbol"`
	Tag              string  `json:"tag" msgpack:"tag"`
	RemainingSeconds float64 `json:"remaining" msgpack:"remaining"`
	Countdown        bool    `json:"countdown" msgpack:"countdown"`
}

// BonusView summarizes the bonus window
type BonusView struct {
	Active     bool    `json:"active" msgpack:"active"`
	Remaining  float64 `json:"remaining" msgpack:"remaining"` // seconds
	NextIn     float64 `json:"nextIn" msgpack:"nextIn"`       // seconds
	Multiplier int     `json:"multiplier" msgpack:"multiplier"`
}

// KindStats counts consumed food of one kind
type KindStats struct {
	Total int `json:"total" msgpack:"total"`
	Bonus int `json:"bonus" msgpack:"bonus"`
}

// KindStat is KindStats labelled with its kind
type KindStat struct {
	Kind Kind `json:"kind" msgpack:"kind"`
	KindStats
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	GridSize     int        `json:"gridSize" msgpack:"gridSize"`
	UnitsPerCell float64    `json:"unitsPerCell" msgpack:"unitsPerCell"`
	Phase        Phase      `json:"phase" msgpack:"phase"`
	TestMode     bool       `json:"testMode" msgpack:"testMode"`
	Snake        []Cell     `json:"snake" msgpack:"snake"`
	Heading      Direction  `json:"heading" msgpack:"heading"`
	Foods        []FoodView `json:"foods" msgpack:"foods"`
	Obstacles    [][]Cell   `json:"obstacles" msgpack:"obstacles"`
	Particles    []Particle `json:"particles" msgpack:"particles"`
	Score        int        `json:"score" msgpack:"score"`
	Level        int        `json:"level" msgpack:"level"`
	Title        string     `json:"title" msgpack:"title"`
	HighScore    int        `json:"highScore" msgpack:"highScore"`
	Bonus        BonusView  `json:"bonus" msgpack:"bonus"`
	Stats        []KindStat `json:"stats" msgpack:"stats"`
	Events       []Event    `json:"events,omitempty" msgpack:"events,omitempty"`
}

// Snapshot copies the current state for a renderer.
func (s *Session) Snapshot() Snapshot {
	now := s.now
	foods := make([]FoodView, len(s.foods))
	for i := range s.foods {
		f := &s.foods[i]
		spec := f.Kind.Spec()
		foods[i] = FoodView{
			Pos:              f.Pos,
			Kind:             f.Kind,
			Symbol:           spec.Symbol,
			Tag:              spec.Tag,
			RemainingSeconds: f.RemainingSeconds(now),
			Countdown:        f.ShowCountdown(now),
		}
	}
	obstacles := make([][]Cell, len(s.obstacles))
	for i, o := range s.obstacles {
		obstacles[i] = o.Cells()
	}
	stats := make([]KindStat, len(Kinds))
	for i, k := range Kinds {
		stats[i] = KindStat{Kind: k, KindStats: s.stats[k]}
	}
	events := make([]Event, len(s.events))
	copy(events, s.events)

	return Snapshot{
		GridSize:     s.rules.GridSize,
		UnitsPerCell: s.rules.UnitsPerCell,
		Phase:        s.phase,
		TestMode:     s.testMode,
		Snake:        s.snake.Body(),
		Heading:      s.snake.Direction(),
		Foods:        foods,
		Obstacles:    obstacles,
		Particles:    s.particles.Particles(),
		Score:        s.score,
		Level:        s.level,
		Title:        LevelTitle(s.level),
		HighScore:    s.highScore,
		Bonus: BonusView{
			Active:     s.bonus.Active,
			Remaining:  s.bonus.Remaining(now).Seconds(),
			NextIn:     s.bonus.NextIn(now, s.rules.BonusInterval).Seconds(),
			Multiplier: s.bonus.Multiplier(s.rules.BonusMultiplier),
		},
		Stats:  stats,
		Events: events,
	}
}
