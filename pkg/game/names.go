package game

import (
	"fmt"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

var difficultyNames = []string{"EASY", "MEDIUM", "HARD"}
var terrainNames = []string{"NORMAL", "DARK", "WINTER"}
var modeNames = []string{"SINGLE", "TWO_PLAYER", "VS_AI"}
var kindNames = []string{"human", "ai"}
var colorNames = []string{"green", "gold", "purple", "blue"}
var stateNames = []string{"running", "paused", "over"}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(names []string, kind string, text []byte) (int, error) {
	for i, n := range names {
		if n == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, text)
}

func (d Difficulty) String() string { return enumName(difficultyNames, int(d)) }

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Hard {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := parseEnum(difficultyNames, "difficulty", text)
	*d = Difficulty(v)
	return err
}

// BaseSpeed returns the starting moves per second
func (d Difficulty) BaseSpeed() int {
	switch d {
	case Easy:
		return config.EasySpeed
	case Hard:
		return config.HardSpeed
	default:
		return config.MediumSpeed
	}
}

// ObstacleCount returns how many stones the round places at start
func (d Difficulty) ObstacleCount() int {
	switch d {
	case Easy:
		return config.EasyObstacles
	case Hard:
		return config.HardObstacles
	default:
		return config.MediumObstacles
	}
}

func (t Terrain) String() string { return enumName(terrainNames, int(t)) }

func (t Terrain) MarshalText() ([]byte, error) {
	if t < TerrainNormal || t > TerrainWinter {
		return nil, fmt.Errorf("invalid terrain %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Terrain) UnmarshalText(text []byte) error {
	v, err := parseEnum(terrainNames, "terrain", text)
	*t = Terrain(v)
	return err
}

func (m PlayerMode) String() string { return enumName(modeNames, int(m)) }

func (m PlayerMode) MarshalText() ([]byte, error) {
	if m < SinglePlayer || m > SinglePlayerVsAI {
		return nil, fmt.Errorf("invalid player mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *PlayerMode) UnmarshalText(text []byte) error {
	v, err := parseEnum(modeNames, "player mode", text)
	*m = PlayerMode(v)
	return err
}

func (k ControllerKind) String() string { return enumName(kindNames, int(k)) }

func (k ControllerKind) MarshalText() ([]byte, error) {
	if k < KindHuman || k > KindHeuristic {
		return nil, fmt.Errorf("invalid controller kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ControllerKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(kindNames, "controller kind", text)
	*k = ControllerKind(v)
	return err
}

func (c SnakeColor) String() string { return enumName(colorNames, int(c)) }

func (c SnakeColor) MarshalText() ([]byte, error) {
	if c < ColorGreen || c > ColorBlue {
		return nil, fmt.Errorf("invalid snake color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *SnakeColor) UnmarshalText(text []byte) error {
	v, err := parseEnum(colorNames, "snake color", text)
	*c = SnakeColor(v)
	return err
}

func (s State) String() string { return enumName(stateNames, int(s)) }
