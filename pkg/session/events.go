package session

import "unicode"

// EventKind distinguishes keyboard and pointer events
type EventKind int

const (
	KeyPress EventKind = iota
	Click
	Hover
)

// Key is a front-end independent key code
type Key int

const (
	KeyRune Key = iota // Printable character in Event.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
)

// Event is one input event. Pointer coordinates are screen cells.
type Event struct {
	Kind EventKind `json:"kind"`
	Key  Key       `json:"key"`
	Rune rune      `json:"rune,omitempty"`
	X    int       `json:"x,omitempty"`
	Y    int       `json:"y,omitempty"`
}

// Press builds a key press event
func Press(k Key) Event {
	return Event{Kind: KeyPress, Key: k}
}

// Char builds a key press event for a printable character
func Char(r rune) Event {
	if r == ' ' {
		return Press(KeySpace)
	}
	return Event{Kind: KeyPress, Key: KeyRune, Rune: r}
}

// ClickAt builds a pointer click event
func ClickAt(x, y int) Event {
	return Event{Kind: Click, X: x, Y: y}
}

// HoverAt builds a pointer move event
func HoverAt(x, y int) Event {
	return Event{Kind: Hover, X: x, Y: y}
}

// is reports whether ev is the given character, ignoring case
func (ev Event) is(r rune) bool {
	return ev.Kind == KeyPress && ev.Key == KeyRune && unicode.ToLower(ev.Rune) == r
}

// Rect is a rectangle of screen cells
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Contains reports whether the cell (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Button is a clickable label; clicking it acts like pressing its key
type Button struct {
	Label  string `json:"label"`
	Rect   Rect   `json:"rect"`
	Action Event  `json:"action"`
}
