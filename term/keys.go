package term

import (
	"github.com/gdamore/tcell/v2"

	"snakearena/game"
)

// Action is what a key press asks the client to do
type Action int

const (
	ActionNone Action = iota
	ActionInput
	ActionQuit
)

// KeyInput translates a key event for a session in the given phase.
// Enter and Space start from Ready and restart after the game ends.
func KeyInput(ev *tcell.EventKey, phase game.Phase) (game.Input, Action) {
	return keyInput(ev.Key(), ev.Rune(), phase)
}

func keyInput(key tcell.Key, ch rune, phase game.Phase) (game.Input, Action) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Input{}, ActionQuit
	case tcell.KeyUp:
		return move(game.Up)
	case tcell.KeyDown:
		return move(game.Down)
	case tcell.KeyLeft:
		return move(game.Left)
	case tcell.KeyRight:
		return move(game.Right)
	case tcell.KeyEnter:
		return confirm(phase)
	case tcell.KeyRune:
	default:
		return game.Input{}, ActionNone
	}

	switch ch {
	case 'q', 'Q':
		return game.Input{}, ActionQuit
	case 'w', 'W':
		return move(game.Up)
	case 's', 'S':
		return move(game.Down)
	case 'a', 'A':
		return move(game.Left)
	case 'd', 'D':
		return move(game.Right)
	case ' ':
		return confirm(phase)
	case 't', 'T':
		if phase == game.PhaseReady {
			return game.Input{Command: game.CmdTestMode}, ActionInput
		}
	}
	return game.Input{}, ActionNone
}

func move(d game.Direction) (game.Input, Action) {
	return game.Input{Command: game.CmdDirection, Dir: d}, ActionInput
}

func confirm(phase game.Phase) (game.Input, Action) {
	switch phase {
	case game.PhaseReady:
		return game.Input{Command: game.CmdStart}, ActionInput
	case game.PhaseGameOver, game.PhaseWon:
		return game.Input{Command: game.CmdRestart}, ActionInput
	}
	return game.Input{}, ActionNone
}
