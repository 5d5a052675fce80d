package game

// Phase is the session lifecycle state
type Phase string

const (
	PhaseReady    Phase = "ready"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	PhaseWon      Phase = "won"
)

// EventKind classifies what happened during an update
type EventKind string

const (
	EventFoodEaten    EventKind = "food_eaten"
	EventFoodExpired  EventKind = "food_expired"
	EventBonusStarted EventKind = "bonus_started"
	EventBonusEnded   EventKind = "bonus_ended"
	EventLevelUp      EventKind = "level_up"
	EventGameOver     EventKind = "game_over"
	EventWon          EventKind = "won"
)

// Event is a notable change during the last update, for feedback only.
type Event struct {
	Kind   EventKind `json:"kind" msgpack:"kind"`
	Cell   Cell      `json:"cell" msgpack:"cell"`
	Points int       `json:"points,omitempty" msgpack:"points,omitempty"`
	Food   Kind      `json:"food,omitempty" msgpack:"food,omitempty"`
	Level  int       `json:"level,omitempty" msgpack:"level,omitempty"`
}

// Command is one of the entry points an input collaborator may invoke
type Command string

const (
	CmdStart     Command = "start"
	CmdRestart   Command = "restart"
	CmdDirection Command = "move"
	CmdTestMode  Command = "test"
)

// Input is a translated player intent
type Input struct {
	Command Command
	Dir     Direction
}

// HighScoreStore persists a single best-score scalar.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// Renderer consumes snapshots and must not retain or mutate engine state.
type Renderer interface {
	Render(Snapshot)
}
