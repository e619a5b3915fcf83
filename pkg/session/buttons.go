package session

import (
	"fmt"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// Screen layout in terminal cells. Board cells are two columns wide.
const (
	MenuLeft    = 4
	MenuTop     = 8
	ButtonWidth = 26
	// SideLeft is the first column right of the board during a round
	SideLeft = config.Width*2 + 4
	SideTop  = 6
)

type buttonSpec struct {
	label  string
	action Event
}

// Buttons lists the clickable buttons of the current state
func (s *Session) Buttons() []Button {
	var specs []buttonSpec
	left, top := MenuLeft, MenuTop

	switch s.state {
	case Menu:
		specs = []buttonSpec{
			{"[1] Easy", Char('1')},
			{"[2] Medium", Char('2')},
			{"[3] Hard", Char('3')},
			{"[S] Settings", Char('s')},
			{"[L] Load game", Char('l')},
			{"[Q] Quit", Char('q')},
		}
	case Settings:
		specs = []buttonSpec{
			{"[1] Green snake", Char('1')},
			{"[2] Gold snake", Char('2')},
			{"[3] Purple snake", Char('3')},
			{fmt.Sprintf("[T] Terrain: %s", s.prefs.Terrain), Char('t')},
			{fmt.Sprintf("[M] Mode: %s", s.prefs.Mode), Char('m')},
			{"[Esc] Back", Press(KeyEscape)},
		}
	case NameInput:
		specs = []buttonSpec{
			{"[Enter] OK", Press(KeyEnter)},
			{"[Esc] Back", Press(KeyEscape)},
		}
		top = MenuTop + 4
	case Playing, AiPlaying:
		specs = []buttonSpec{
			{"[Space] Pause", Press(KeySpace)},
			{"[P] Save", Char('p')},
			{"[L] Load", Char('l')},
			{"[Esc] Menu", Press(KeyEscape)},
		}
		left, top = SideLeft, SideTop
	case Paused:
		specs = []buttonSpec{
			{"[Space] Resume", Press(KeySpace)},
			{"[Esc] Menu", Press(KeyEscape)},
		}
		left, top = SideLeft, SideTop
	case GameOver:
		specs = []buttonSpec{
			{"[R] Restart", Char('r')},
			{"[M] Menu", Char('m')},
		}
		left, top = SideLeft, SideTop
	}

	buttons := make([]Button, len(specs))
	for i, b := range specs {
		buttons[i] = Button{
			Label:  b.label,
			Rect:   Rect{X: left, Y: top + 2*i, W: ButtonWidth, H: 1},
			Action: b.action,
		}
	}
	return buttons
}
