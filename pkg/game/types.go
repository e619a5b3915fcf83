package game

import "fmt"

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit step on the board
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Directions lists the four moves in heuristic tie-break order
var Directions = [4]Direction{Up, Down, Left, Right}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// IsReverse reports whether d points exactly against other
func (d Direction) IsReverse(other Direction) bool {
	return d.Valid() && d == other.Reverse()
}

// Valid reports whether d is one of the four unit moves
func (d Direction) Valid() bool {
	return d == Up || d == Down || d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

// Difficulty selects base speed and obstacle count
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Terrain selects the board variant
type Terrain int

const (
	TerrainNormal Terrain = iota
	TerrainDark           // Darkness with a flashlight around each head
	TerrainWinter         // Ice blocks that can make player 1 slip
)

// PlayerMode is the tagged variant deciding which snakes exist and who drives them
type PlayerMode int

const (
	SinglePlayer PlayerMode = iota
	TwoPlayerLocal
	SinglePlayerVsAI
)

// ControllerKind records who drives a snake so saves can restore it
type ControllerKind int

const (
	KindHuman ControllerKind = iota
	KindHeuristic
)

// SnakeColor is the cosmetic color of a snake
type SnakeColor int

const (
	ColorGreen SnakeColor = iota
	ColorGold
	ColorPurple
	ColorBlue
)

// State of a round
type State int

const (
	Running State = iota
	Paused
	Over
)

// RoundConfig is fixed for the lifetime of a round
type RoundConfig struct {
	Difficulty Difficulty `json:"difficulty"`
	Terrain    Terrain    `json:"terrain"`
	Mode       PlayerMode `json:"mode"`
}

// Players returns how many snakes the mode puts on the board
func (m PlayerMode) Players() int {
	if m == SinglePlayer {
		return 1
	}
	return 2
}

// Kinds returns the controller kind of every snake in the mode
func (m PlayerMode) Kinds() []ControllerKind {
	switch m {
	case TwoPlayerLocal:
		return []ControllerKind{KindHuman, KindHuman}
	case SinglePlayerVsAI:
		return []ControllerKind{KindHuman, KindHeuristic}
	default:
		return []ControllerKind{KindHuman}
	}
}

// Next cycles to the following mode
func (m PlayerMode) Next() PlayerMode {
	return (m + 1) % 3
}

// Next cycles to the following terrain
func (t Terrain) Next() Terrain {
	return (t + 1) % 3
}
