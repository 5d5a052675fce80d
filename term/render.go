// Package term draws game snapshots on a terminal and maps keys to inputs.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"snakearena/game"
)

const (
	originX   = 1 // board origin inside the border
	originY   = 1
	cellWidth = 2 // terminal cells are roughly twice as tall as wide
	hudGap    = 3
)

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorDimGray)
	styleHead     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBonus    = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleOverlay  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
)

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer wraps an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

var _ game.Renderer = (*Renderer)(nil)

// Render redraws the whole frame
func (r *Renderer) Render(s game.Snapshot) {
	r.screen.Clear()
	r.drawBorder(s.GridSize)
	for _, cells := range s.Obstacles {
		for _, c := range cells {
			r.setCell(c, '▒', '▒', styleObstacle)
		}
	}
	for _, f := range s.Foods {
		style := tcell.StyleDefault.Foreground(hexColor(f.Tag, 1))
		second := ' '
		if f.Countdown {
			second = countdownRune(f.RemainingSeconds)
		}
		r.setCell(f.Pos, firstRune(f.Symbol), second, style)
	}
	for i, c := range s.Snake {
		if i == 0 {
			r.setCell(c, '█', '█', styleHead)
			continue
		}
		r.setCell(c, '▓', '▓', styleBody)
	}
	for _, p := range s.Particles {
		c, ok := particleCell(p, s.UnitsPerCell, s.GridSize)
		if !ok {
			continue
		}
		ch := '·'
		if p.Size >= 3 {
			ch = '*'
		}
		x, y := screenPos(c)
		r.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(hexColor(p.Color, p.Alpha)))
	}

	hx := originX + s.GridSize*cellWidth + hudGap
	for i, line := range hudLines(s) {
		style := styleText
		if i == 0 {
			style = styleBonus
		}
		if line.dim {
			style = styleDim
		}
		r.drawText(hx, originY+i, line.text, style)
	}
	if msg := overlayText(s); msg != "" {
		w := len([]rune(msg))
		x := originX + (s.GridSize*cellWidth-w)/2
		r.drawText(x, originY+s.GridSize/2, msg, styleOverlay)
	}
	r.screen.Show()
}

func (r *Renderer) drawBorder(n int) {
	w := n*cellWidth + 1
	for x := 0; x <= w; x++ {
		r.screen.SetContent(x, 0, '─', nil, styleBorder)
		r.screen.SetContent(x, n+1, '─', nil, styleBorder)
	}
	for y := 0; y <= n+1; y++ {
		r.screen.SetContent(0, y, '│', nil, styleBorder)
		r.screen.SetContent(w, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(0, 0, '┌', nil, styleBorder)
	r.screen.SetContent(w, 0, '┐', nil, styleBorder)
	r.screen.SetContent(0, n+1, '└', nil, styleBorder)
	r.screen.SetContent(w, n+1, '┘', nil, styleBorder)
}

func (r *Renderer) setCell(c game.Cell, first, second rune, style tcell.Style) {
	x, y := screenPos(c)
	r.screen.SetContent(x, y, first, nil, style)
	r.screen.SetContent(x+1, y, second, nil, style)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func screenPos(c game.Cell) (int, int) {
	return originX + c.X*cellWidth, originY + c.Y
}

// particleCell maps a particle position in units to a board cell
func particleCell(p game.Particle, unitsPerCell float64, size int) (game.Cell, bool) {
	if unitsPerCell <= 0 || p.X < 0 || p.Y < 0 {
		return game.Cell{}, false
	}
	c := game.Cell{X: int(p.X / unitsPerCell), Y: int(p.Y / unitsPerCell)}
	if c.X >= size || c.Y >= size {
		return game.Cell{}, false
	}
	return c, true
}

// hexColor parses a "#RRGGBB" tag and fades it toward black by alpha.
// Unparseable tags render white.
func hexColor(hex string, alpha float64) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	alpha = math.Max(0, math.Min(1, alpha))
	faded := colorful.Color{}.BlendRgb(c, alpha)
	r, g, b := faded.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}

// countdownRune is the whole seconds left, rounded up, as a digit
func countdownRune(remaining float64) rune {
	n := int(math.Ceil(remaining))
	if n < 0 {
		n = 0
	}
	if n > 9 {
		n = 9
	}
	return rune('0' + n)
}

type hudLine struct {
	text string
	dim  bool
}

func hudLines(s game.Snapshot) []hudLine {
	lines := []hudLine{{text: "SNAKE ARENA"}}
	if s.TestMode {
		lines[0].text += " [test]"
	}
	lines = append(lines,
		hudLine{},
		hudLine{text: fmt.Sprintf("Score  %d", s.Score)},
		hudLine{text: fmt.Sprintf("Level  %d  %s", s.Level, s.Title)},
		hudLine{text: fmt.Sprintf("Best   %d", s.HighScore)},
		hudLine{},
	)
	if s.Bonus.Active {
		lines = append(lines, hudLine{text: fmt.Sprintf("BONUS x%d  %.1fs", s.Bonus.Multiplier, s.Bonus.Remaining)})
	} else {
		lines = append(lines, hudLine{text: fmt.Sprintf("Bonus in %.0fs", math.Ceil(s.Bonus.NextIn)), dim: true})
	}
	lines = append(lines, hudLine{})
	for _, st := range s.Stats {
		spec := st.Kind.Spec()
		lines = append(lines, hudLine{text: fmt.Sprintf("%s %-8s %3d  (bonus %d)", spec.Symbol, st.Kind, st.Total, st.Bonus)})
	}
	lines = append(lines,
		hudLine{},
		hudLine{text: "arrows/wasd move  q quit", dim: true},
	)
	return lines
}

func overlayText(s game.Snapshot) string {
	switch s.Phase {
	case game.PhaseReady:
		return " ENTER to start, T for test mode "
	case game.PhaseGameOver:
		return fmt.Sprintf(" GAME OVER  %d  ENTER to retry ", s.Score)
	case game.PhaseWon:
		return fmt.Sprintf(" YOU WON  %d  ENTER to play again ", s.Score)
	}
	return ""
}
