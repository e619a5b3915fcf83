package game

import (
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// Player is one snake together with its owner data
type Player struct {
	Name  string         `json:"name"`
	Snake Snake          `json:"snake"`
	Score int            `json:"score"`
	Kind  ControllerKind `json:"kind"`
	Color SnakeColor     `json:"color"`
}

// Snapshot is the complete state of a round. It is the only thing handed
// to renderers and the only thing saved; transitions never mutate their input.
type Snapshot struct {
	Config    RoundConfig  `json:"config"`
	Grid      Grid         `json:"grid"`
	Players   []Player     `json:"players"`
	Food      Point        `json:"food"`
	Special   *SpecialFood `json:"special"`
	Obstacles []Point      `json:"obstacles"`
	Ice       []Point      `json:"ice"`
	Speed     int          `json:"speed"`
	BaseSpeed int          `json:"baseSpeed"`

	Clock        time.Duration `json:"clock"`        // Active (unpaused) round time
	LastMove     time.Duration `json:"lastMove"`     // Clock at the last accepted tick
	LastDecision time.Duration `json:"lastDecision"` // Clock at the last opponent decision
	Ticks        int           `json:"ticks"`

	Slipping bool `json:"slipping"`
	Paused   bool `json:"paused"`
	Over     bool `json:"over"`

	// One-shot feedback from the latest tick
	Crashes     []Point      `json:"crashes"`
	ScoreEvents []ScoreEvent `json:"scoreEvents"`
}

// State returns Running, Paused or Over
func (s *Snapshot) State() State {
	switch {
	case s.Over:
		return Over
	case s.Paused:
		return Paused
	default:
		return Running
	}
}

// Interval returns the minimum active time between accepted ticks
func (s *Snapshot) Interval() time.Duration {
	speed := s.Speed
	if speed <= 0 {
		speed = config.MinSpeed
	}
	return time.Second / time.Duration(speed)
}

// BestScore returns the highest score among players
func (s *Snapshot) BestScore() int {
	best := 0
	for _, p := range s.Players {
		if p.Score > best {
			best = p.Score
		}
	}
	return best
}

// Lit reports whether p is visible. Outside the dark terrain everything is;
// in the dark only cells near a snake head are.
func (s *Snapshot) Lit(p Point) bool {
	if s.Config.Terrain != TerrainDark {
		return true
	}
	for _, pl := range s.Players {
		if len(pl.Snake.Body) > 0 && Manhattan(pl.Snake.Head(), p) <= config.FlashlightRadius {
			return true
		}
	}
	return false
}

// IsIce reports whether p is an ice block
func (s *Snapshot) IsIce(p Point) bool {
	return containsPoint(s.Ice, p)
}

// IsObstacle reports whether p is an obstacle
func (s *Snapshot) IsObstacle(p Point) bool {
	return containsPoint(s.Obstacles, p)
}

// Occupied returns every cell placement must avoid: bodies, obstacles,
// ice, normal food and special food
func (s *Snapshot) Occupied() map[Point]bool {
	occupied := make(map[Point]bool)
	for _, p := range s.Players {
		for _, c := range p.Snake.Body {
			occupied[c] = true
		}
	}
	for _, c := range s.Obstacles {
		occupied[c] = true
	}
	for _, c := range s.Ice {
		occupied[c] = true
	}
	occupied[s.Food] = true
	if s.Special != nil {
		occupied[s.Special.Pos] = true
	}
	return occupied
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Snake = p.Snake.Clone()
		players[i] = p
	}
	s.Players = players
	if s.Special != nil {
		sf := *s.Special
		s.Special = &sf
	}
	s.Obstacles = clonePoints(s.Obstacles)
	s.Ice = clonePoints(s.Ice)
	s.Crashes = clonePoints(s.Crashes)
	if s.ScoreEvents != nil {
		s.ScoreEvents = append([]ScoreEvent{}, s.ScoreEvents...)
	}
	return s
}

func clonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	return append([]Point{}, points...)
}
