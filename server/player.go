package server

// PlayerID identifies a connection within a room
type PlayerID string

// Player is a connected client. Every player in a room steers the same
// snake; inputs are interpreted on the tick goroutine.
type Player struct {
	ID   PlayerID
	Conn *ClientConn

	lastSeq        int64 // highest client sequence applied
	inputsThisTick int
}

// PlayerState is the per-player view served by the metrics endpoint
type PlayerState struct {
	ID      string `json:"id"`
	LastSeq int64  `json:"lastSeq"`
	Codec   string `json:"codec"`
}
