package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
	"github.com/trytobebee/snake_arcade/pkg/session"
)

// TerminalRenderer handles terminal-based rendering with ANSI escapes
type TerminalRenderer struct {
	out    io.Writer
	board  board
	buffer strings.Builder
}

// NewTerminalRenderer creates a new terminal renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout)
}

// NewTerminalRendererTo creates a renderer writing to out
func NewTerminalRendererTo(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		out:   out,
		board: newBoard(config.Width, config.Height),
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render clears the terminal and draws the view in one write
func (r *TerminalRenderer) Render(v session.View) {
	frame := r.Frame(v)
	io.WriteString(r.out, "\033[H\033[2J\033[3J"+frame)
}

// Frame builds the text of one frame without writing it
func (r *TerminalRenderer) Frame(v session.View) string {
	r.buffer.Reset()
	r.buffer.WriteString("\n  🐍 SNAKE 🐍\n\n")

	switch v.State {
	case session.Menu:
		r.writeMenu(v)
	case session.Settings:
		r.writeSettings(v)
	case session.NameInput:
		r.writeNameInput(v)
	default:
		if v.Snapshot != nil {
			r.writeRound(v)
		}
	}

	if v.Message != "" {
		r.buffer.WriteString("\n  " + v.Message + "\n")
	}
	return r.buffer.String()
}

func (r *TerminalRenderer) writeButtons(v session.View) {
	for i, b := range v.Buttons {
		marker := "  "
		if i == v.Hover {
			marker = "> "
		}
		r.buffer.WriteString("  " + marker + b.Label + "\n")
	}
}

func (r *TerminalRenderer) writeMenu(v session.View) {
	fmt.Fprintf(&r.buffer, "  High score: %d\n", v.HighScore)
	fmt.Fprintf(&r.buffer, "  Mode: %s  |  Terrain: %s\n\n", v.Settings.Mode, v.Settings.Terrain)
	r.buffer.WriteString("  Choose a difficulty to start:\n\n")
	r.writeButtons(v)
}

func (r *TerminalRenderer) writeSettings(v session.View) {
	r.buffer.WriteString("  SETTINGS\n\n")
	fmt.Fprintf(&r.buffer, "  Snake color: %s\n", v.Settings.Color)
	fmt.Fprintf(&r.buffer, "  Terrain:     %s\n", v.Settings.Terrain)
	fmt.Fprintf(&r.buffer, "  Mode:        %s\n\n", v.Settings.Mode)
	r.writeButtons(v)
}

func (r *TerminalRenderer) writeNameInput(v session.View) {
	fmt.Fprintf(&r.buffer, "  Player 1 name: %s", v.Names[0])
	if v.NameIndex == 0 {
		r.buffer.WriteString("_")
	}
	r.buffer.WriteString("\n")
	if v.NameIndex == 1 {
		fmt.Fprintf(&r.buffer, "  Player 2 name: %s_\n", v.Names[1])
	}
	r.buffer.WriteString("\n")
	r.writeButtons(v)
}

func (r *TerminalRenderer) writeRound(v session.View) {
	s := v.Snapshot

	// Header with stats
	for i, p := range s.Players {
		if i > 0 {
			r.buffer.WriteString("  |")
		}
		fmt.Fprintf(&r.buffer, "  %s: %d", p.Name, p.Score)
	}
	fmt.Fprintf(&r.buffer, "  |  High: %d  |  Speed: %d  |  %s %s\n", v.HighScore, s.Speed, s.Config.Difficulty, s.Config.Terrain)

	status := ""
	if s.Special != nil {
		status += fmt.Sprintf("  %s %ds", config.CharSpecial, s.Special.RemainingSeconds(s.Clock))
	}
	if s.Slipping {
		status += "  " + config.CharIce + " slipping!"
	}
	for _, ev := range s.ScoreEvents {
		status += fmt.Sprintf("  %s %s", s.Players[ev.Player].Name, ev.Label)
	}
	r.buffer.WriteString(status + "\n\n")

	r.board.fill(s)
	heads := make([][2]string, len(s.Players))
	for i, p := range s.Players {
		heads[i][0], heads[i][1] = snakeChars(p)
	}

	// Render board
	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(heads[0][0])
			case cellBody:
				r.buffer.WriteString(heads[0][1])
			case cellP2Head:
				r.buffer.WriteString(heads[1][0])
			case cellP2Body:
				r.buffer.WriteString(heads[1][1])
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellSpecial:
				r.buffer.WriteString(config.CharSpecial)
			case cellStone:
				r.buffer.WriteString(config.CharStone)
			case cellIce:
				r.buffer.WriteString(config.CharIce)
			case cellDark:
				r.buffer.WriteString(config.CharDark)
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			}
		}
		r.buffer.WriteString("\n")
	}

	if s.Config.Mode == game.TwoPlayerLocal {
		r.buffer.WriteString("\n  P1: arrow keys  |  P2: WASD\n")
	} else {
		r.buffer.WriteString("\n  Use WASD or arrow keys to move\n")
	}
	r.buffer.WriteString("  Space to pause, P to save, L to load, Esc for menu\n")

	switch v.State {
	case session.Paused:
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press Space to continue\n")
	case session.GameOver:
		r.buffer.WriteString("\n  💀 GAME OVER! Press R to restart or M for menu\n")
	}
}
