package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// expiryColor tints the burst left behind by expired food
const expiryColor = "#FF0000"

// Session is the aggregate root of one game: snake, food, obstacles,
// particles, scoring and the bonus window. It is not safe for concurrent
// use; hosts serialize every call through one goroutine.
type Session struct {
	rules Rules
	next  *Rules // applied on the next reset

	rng   *rand.Rand
	log   *zap.Logger
	store HighScoreStore

	phase      Phase
	testMode   bool
	pendingWin bool

	snake     *Snake
	foods     []Food
	obstacles []Obstacle
	particles *Pool
	bonus     BonusWindow
	stats     [len(kindSpecs)]KindStats

	score     int
	level     int
	speed     time.Duration
	highScore int

	now           time.Time // frame time sampled by the last Update
	lastFrame     time.Time
	lastMove      time.Time
	lastFoodCheck time.Time

	events []Event
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source used for placement, food kinds and particles
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed seeds a private random source
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithHighScoreStore wires best-score persistence
func WithHighScoreStore(st HighScoreStore) Option {
	return func(s *Session) { s.store = st }
}

// WithStart sets the clock reading the session is created at
func WithStart(t time.Time) Option {
	return func(s *Session) { s.now = t }
}

// NewSession validates the rules, loads the stored high score and lays out
// a fresh board in the Ready phase.
func NewSession(rules Rules, opts ...Option) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Session{rules: rules}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if s.now.IsZero() {
		s.now = time.Now()
	}
	if s.store != nil {
		hs, err := s.store.LoadHighScore()
		if err != nil {
			s.log.Warn("load high score", zap.Error(err))
		} else {
			s.highScore = hs
		}
	}
	s.particles = NewPool(s.rng)
	s.lastFrame = s.now
	s.reset()
	s.phase = PhaseReady
	return s, nil
}

// reset rebuilds every sub-entity. Score and level honour test mode.
func (s *Session) reset() {
	if s.next != nil {
		s.rules = *s.next
		s.next = nil
	}
	now := s.now
	s.score, s.level = 0, 1
	if s.testMode {
		s.score, s.level = s.rules.TestScore, s.rules.TestLevel
	}
	s.speed = s.rules.SpeedFor(s.level)
	s.pendingWin = false
	s.snake = NewSnake()
	s.foods = s.foods[:0]
	s.obstacles = s.obstacles[:0]
	s.particles.Clear()
	s.stats = [len(kindSpecs)]KindStats{}
	s.restartTimers(now)

	for i := 0; i < s.rules.InitialFood; i++ {
		s.generateFood(now)
	}
	for i := 0; i < s.rules.InitialObstacles; i++ {
		s.GenerateObstacle()
	}
}

func (s *Session) restartTimers(now time.Time) {
	s.lastMove = now
	s.lastFoodCheck = now
	s.bonus.Reset(now)
}

// StartGame leaves the Ready phase. Food timers and the bonus countdown
// start from here rather than from board creation.
func (s *Session) StartGame() bool {
	if s.phase != PhaseReady {
		return false
	}
	s.restartTimers(s.now)
	for i := range s.foods {
		s.foods[i].CreatedAt = s.now
	}
	s.phase = PhasePlaying
	s.log.Info("game started", zap.Bool("test_mode", s.testMode))
	return true
}

// EnableTestMode starts a seeded debug game from the Ready screen.
func (s *Session) EnableTestMode() bool {
	if s.phase != PhaseReady {
		return false
	}
	s.testMode = true
	s.reset()
	s.phase = PhasePlaying
	s.log.Info("test mode enabled", zap.Int("score", s.score), zap.Int("level", s.level))
	return true
}

// Restart begins a new game after GameOver or Won.
func (s *Session) Restart() bool {
	if s.phase != PhaseGameOver && s.phase != PhaseWon {
		return false
	}
	s.testMode = false
	s.reset()
	s.phase = PhasePlaying
	s.log.Info("game restarted")
	return true
}

// SetDirection steers the snake while playing. Reversals are ignored,
// including two quick turns within one tick that would fold the head back
// onto the neck.
func (s *Session) SetDirection(d Direction) bool {
	if s.phase != PhasePlaying {
		return false
	}
	if d == s.snake.LastMoved().Opposite() {
		return false
	}
	return s.snake.SetDirection(d)
}

// Apply dispatches a translated input to its entry point.
func (s *Session) Apply(in Input) bool {
	switch in.Command {
	case CmdStart:
		return s.StartGame()
	case CmdRestart:
		return s.Restart()
	case CmdDirection:
		return s.SetDirection(in.Dir)
	case CmdTestMode:
		return s.EnableTestMode()
	}
	return false
}

// SetRules stages new rules; they take effect on the next restart.
func (s *Session) SetRules(r Rules) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("stage rules: %w", err)
	}
	s.next = &r
	return nil
}

// Update advances the session to now. It must be called once per frame.
func (s *Session) Update(now time.Time) {
	s.events = s.events[:0]
	dt := now.Sub(s.lastFrame)
	if dt < 0 {
		dt = 0
	}
	s.lastFrame = now
	s.now = now

	// the win flip lags one frame so the fireworks get rendered first
	if s.pendingWin {
		s.pendingWin = false
		s.phase = PhaseWon
		s.recordHighScore()
		s.emit(Event{Kind: EventWon, Cell: s.snake.Head(), Level: s.level})
		s.log.Info("game won", zap.Int("score", s.score), zap.Int("level", s.level))
	}

	if s.phase != PhasePlaying {
		s.particles.Advance(dt)
		return
	}

	s.stepBonus(now)
	s.particles.Advance(dt)

	if now.Sub(s.lastFoodCheck) >= s.rules.ExpiryCheckInterval {
		s.lastFoodCheck = now
		s.sweepExpired(now)
	}

	if now.Sub(s.lastMove) >= s.speed {
		s.lastMove = now
		s.tick(now)
	}
}

func (s *Session) stepBonus(now time.Time) {
	started, ended := s.bonus.Step(now, s.rules.BonusInterval, s.rules.BonusDuration)
	switch {
	case ended:
		s.emit(Event{Kind: EventBonusEnded})
	case started:
		placed := s.scatterBonusFood(now)
		s.emit(Event{Kind: EventBonusStarted, Points: s.rules.BonusMultiplier})
		s.log.Debug("bonus window opened", zap.Int("food_placed", placed))
	}
}

// sweepExpired replaces every food whose lifetime has run out
func (s *Session) sweepExpired(now time.Time) {
	for i := len(s.foods) - 1; i >= 0; i-- {
		f := s.foods[i]
		if !f.Expired(now) {
			continue
		}
		x, y := s.cellCenter(f.Pos)
		s.particles.Emit(x, y, expiryColor, BurstExpire)
		s.foods = append(s.foods[:i], s.foods[i+1:]...)
		s.emit(Event{Kind: EventFoodExpired, Cell: f.Pos, Food: f.Kind})
		s.generateFood(now)
	}
}

// tick moves the snake one cell and resolves the consequences.
func (s *Session) tick(now time.Time) {
	s.snake.Move()
	if s.failed() {
		s.gameOver()
		return
	}
	s.consume(now)
	if s.level >= s.rules.MaxLevel && !s.pendingWin {
		n := float64(s.rules.GridSize) * s.rules.UnitsPerCell
		s.particles.Fireworks(n, n, s.rules.FireworkCount)
		s.pendingWin = true
	}
}

func (s *Session) failed() bool {
	head := s.snake.Head()
	return s.snake.HitsSelf() || !inBounds(head, s.rules.GridSize) || s.obstacleAt(head)
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.recordHighScore()
	s.emit(Event{Kind: EventGameOver, Cell: s.snake.Head(), Points: s.score})
	s.log.Info("game over", zap.Int("score", s.score), zap.Int("level", s.level), zap.Int("high_score", s.highScore))
}

// consume eats the food under the head, if any.
func (s *Session) consume(now time.Time) {
	head := s.snake.Head()
	i := s.foodAt(head)
	if i < 0 {
		return
	}
	f := s.foods[i]
	points := f.Points() * s.bonus.Multiplier(s.rules.BonusMultiplier)
	s.score += points
	s.snake.Grow()

	x, y := s.cellCenter(head)
	s.particles.Emit(x, y, f.Kind.Spec().Tag, BurstFood)

	s.stats[f.Kind].Total++
	if s.bonus.Active {
		s.stats[f.Kind].Bonus++
	}
	s.foods = append(s.foods[:i], s.foods[i+1:]...)
	s.emit(Event{Kind: EventFoodEaten, Cell: head, Points: points, Food: f.Kind})
	s.generateFood(now)

	if s.score >= s.level*s.rules.LevelScore {
		s.levelUp()
	}
}

// levelUp raises the level once, speeds the snake up and adds an obstacle
// on every third level.
func (s *Session) levelUp() {
	if s.level >= s.rules.MaxLevel {
		return
	}
	s.level++
	s.speed = s.rules.SpeedFor(s.level)
	if s.level%3 == 0 {
		s.GenerateObstacle()
	}
	s.emit(Event{Kind: EventLevelUp, Cell: s.snake.Head(), Level: s.level})
}

func (s *Session) recordHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if s.store == nil {
		return
	}
	if err := s.store.SaveHighScore(s.score); err != nil {
		s.log.Warn("save high score", zap.Int("score", s.score), zap.Error(err))
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// cellCenter converts a cell to particle units
func (s *Session) cellCenter(c Cell) (float64, float64) {
	u := s.rules.UnitsPerCell
	return (float64(c.X) + 0.5) * u, (float64(c.Y) + 0.5) * u
}

func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Score() int           { return s.score }
func (s *Session) Level() int           { return s.level }
func (s *Session) HighScore() int       { return s.highScore }
func (s *Session) Speed() time.Duration { return s.speed }
func (s *Session) Rules() Rules         { return s.rules }
func (s *Session) TestMode() bool       { return s.testMode }

// Stats returns the consumption counters for k
func (s *Session) Stats(k Kind) KindStats { return s.stats[k] }

// Events returns what happened during the last Update
func (s *Session) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
