package server

import (
	"strings"

	"snakearena/game"
)

// Input is a client intent, applied by the room during the next tick
type Input struct {
	PlayerID PlayerID
	Command  game.Input
	Seq      int64 // client-side sequence, used for dedupe
}

// InputMessage is the inbound wire form, e.g.
// {"type":"move","command":"up","seq":7} or {"type":"start"}.
type InputMessage struct {
	Type    string `json:"type" msgpack:"type"`
	Command string `json:"command,omitempty" msgpack:"command,omitempty"`
	Seq     int64  `json:"seq,omitempty" msgpack:"seq,omitempty"`
}

// ToInput translates the message into an engine input
func (im InputMessage) ToInput() (game.Input, bool) {
	switch game.Command(strings.ToLower(im.Type)) {
	case game.CmdStart:
		return game.Input{Command: game.CmdStart}, true
	case game.CmdRestart:
		return game.Input{Command: game.CmdRestart}, true
	case game.CmdTestMode:
		return game.Input{Command: game.CmdTestMode}, true
	case game.CmdDirection:
		dir, ok := game.ParseDirection(im.Command)
		if !ok {
			return game.Input{}, false
		}
		return game.Input{Command: game.CmdDirection, Dir: dir}, true
	}
	return game.Input{}, false
}

// NewInputMessage is the wire form of an engine input
func NewInputMessage(in game.Input, seq int64) InputMessage {
	im := InputMessage{Type: string(in.Command), Seq: seq}
	if in.Command == game.CmdDirection {
		im.Command = in.Dir.String()
	}
	return im
}

// StateMessage is the outbound per-tick broadcast
type StateMessage struct {
	Type  string        `json:"type" msgpack:"type"`
	Room  string        `json:"room" msgpack:"room"`
	Tick  int64         `json:"tick" msgpack:"tick"`
	State game.Snapshot `json:"state" msgpack:"state"`
}
