package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/trytobebee/snake_arcade/pkg/session"
)

// TcellTranslator turns tcell events into session events. It remembers the
// mouse button so a held button clicks only once.
type TcellTranslator struct {
	pressed bool
}

// Translate maps one tcell event; resize and unknown events are dropped
func (t *TcellTranslator) Translate(ev tcell.Event) (session.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return translateTcellKey(e)
	case *tcell.EventMouse:
		x, y := e.Position()
		down := e.Buttons()&tcell.Button1 != 0
		wasDown := t.pressed
		t.pressed = down
		if down && !wasDown {
			return session.ClickAt(x, y), true
		}
		return session.HoverAt(x, y), true
	}
	return session.Event{}, false
}

// IsInterrupt reports whether ev asks to leave the program immediately
func IsInterrupt(ev tcell.Event) bool {
	e, ok := ev.(*tcell.EventKey)
	return ok && e.Key() == tcell.KeyCtrlC
}

func translateTcellKey(e *tcell.EventKey) (session.Event, bool) {
	switch e.Key() {
	case tcell.KeyUp:
		return session.Press(session.KeyUp), true
	case tcell.KeyDown:
		return session.Press(session.KeyDown), true
	case tcell.KeyLeft:
		return session.Press(session.KeyLeft), true
	case tcell.KeyRight:
		return session.Press(session.KeyRight), true
	case tcell.KeyEnter:
		return session.Press(session.KeyEnter), true
	case tcell.KeyEscape:
		return session.Press(session.KeyEscape), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return session.Press(session.KeyBackspace), true
	case tcell.KeyRune:
		return session.Char(e.Rune()), true
	}
	return session.Event{}, false
}
