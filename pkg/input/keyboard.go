package input

import (
	"github.com/eiannone/keyboard"

	"github.com/trytobebee/snake_arcade/pkg/session"
)

// KeyboardHandler reads raw terminal keys and forwards them as session events
type KeyboardHandler struct {
	inputChan chan session.Event
	interrupt chan struct{}
	done      chan struct{}
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan session.Event),
		interrupt: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if key == keyboard.KeyCtrlC {
				close(h.interrupt)
				return
			}
			ev, ok := TranslateKey(char, key)
			if !ok {
				continue
			}
			select {
			case h.inputChan <- ev:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop stops the keyboard handler
func (h *KeyboardHandler) Stop() {
	close(h.done)
	keyboard.Close()
}

// Events returns the input channel
func (h *KeyboardHandler) Events() <-chan session.Event {
	return h.inputChan
}

// Interrupt is closed when the player presses Ctrl+C
func (h *KeyboardHandler) Interrupt() <-chan struct{} {
	return h.interrupt
}

// TranslateKey maps a keyboard key into a session event
func TranslateKey(char rune, key keyboard.Key) (session.Event, bool) {
	switch key {
	case keyboard.KeyArrowUp:
		return session.Press(session.KeyUp), true
	case keyboard.KeyArrowDown:
		return session.Press(session.KeyDown), true
	case keyboard.KeyArrowLeft:
		return session.Press(session.KeyLeft), true
	case keyboard.KeyArrowRight:
		return session.Press(session.KeyRight), true
	case keyboard.KeyEnter:
		return session.Press(session.KeyEnter), true
	case keyboard.KeyEsc:
		return session.Press(session.KeyEscape), true
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return session.Press(session.KeyBackspace), true
	case keyboard.KeySpace:
		return session.Press(session.KeySpace), true
	}

	if char != 0 {
		return session.Char(char), true
	}
	return session.Event{}, false
}
