package game

import (
	"testing"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// TestSpecialFoodLifetime tests expiry on the round clock
func TestSpecialFoodLifetime(t *testing.T) {
	food := SpecialFood{Pos: Point{X: 4, Y: 4}, SpawnedAt: 2 * time.Second}

	tests := []struct {
		name    string
		now     time.Duration
		expired bool
		seconds int
	}{
		{"just spawned", 2 * time.Second, false, 10},
		{"half way", 7 * time.Second, false, 5},
		{"last fraction", 11*time.Second + 500*time.Millisecond, false, 1},
		{"exactly at lifetime", 2*time.Second + config.SpecialFoodLifetime, true, 0},
		{"long gone", time.Minute, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := food.IsExpired(tc.now); got != tc.expired {
				t.Errorf("IsExpired(%v) = %v, want %v", tc.now, got, tc.expired)
			}
			if got := food.RemainingSeconds(tc.now); got != tc.seconds {
				t.Errorf("RemainingSeconds(%v) = %d, want %d", tc.now, got, tc.seconds)
			}
			t.Logf("%s: remaining=%v", tc.name, food.Remaining(tc.now))
		})
	}
}

// TestHeuristicChoice tests the greedy opponent
func TestHeuristicChoice(t *testing.T) {
	grid := Grid{Width: config.Width, Height: config.Height}

	tests := []struct {
		name      string
		snake     Snake
		food      Point
		obstacles []Point
		want      Direction
	}{
		{
			name:  "food straight above",
			snake: NewSnake(Point{X: 10, Y: 10}, Right),
			food:  Point{X: 10, Y: 5},
			want:  Up,
		},
		{
			name:  "tie prefers down over right",
			snake: NewSnake(Point{X: 10, Y: 10}, Right),
			food:  Point{X: 12, Y: 12},
			want:  Down,
		},
		{
			name: "own body blocks the best move",
			snake: Snake{
				Body: []Point{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 9}, {X: 10, Y: 9}},
				Dir:  Left, Pending: Left,
			},
			food: Point{X: 10, Y: 3},
			want: Down,
		},
		{
			name:      "obstacle blocks the best move",
			snake:     NewSnake(Point{X: 10, Y: 10}, Up),
			food:      Point{X: 10, Y: 3},
			obstacles: []Point{{X: 10, Y: 9}},
			want:      Left,
		},
		{
			name:      "boxed in keeps current direction",
			snake:     NewSnake(Point{X: 1, Y: 1}, Up),
			food:      Point{X: 20, Y: 20},
			obstacles: []Point{{X: 2, Y: 1}},
			want:      Up,
		},
		{
			name:  "never reverses",
			snake: NewSnake(Point{X: 10, Y: 10}, Right),
			food:  Point{X: 2, Y: 10},
			want:  Up,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ChooseDirection(grid, tc.snake, tc.food, tc.obstacles)
			if got != tc.want {
				t.Errorf("ChooseDirection = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestSnakeDirectionBuffer tests queued turns and growth
func TestSnakeDirectionBuffer(t *testing.T) {
	s := NewSnake(Point{X: 5, Y: 5}, Right)

	if s.Queue(Left) {
		t.Error("reverse of the active direction must be rejected")
	}
	if s.Queue(Direction{X: 1, Y: 1}) {
		t.Error("diagonal must be rejected")
	}
	if !s.Queue(Up) || !s.Queue(Down) {
		t.Error("perpendicular turns must be accepted")
	}
	s.Commit()
	if s.Dir != Down || s.Pending != Down {
		t.Errorf("after commit dir=%v pending=%v, want down", s.Dir, s.Pending)
	}

	s.Advance(Point{X: 5, Y: 6}, true)
	s.Advance(Point{X: 5, Y: 7}, false)
	want := []Point{{X: 5, Y: 7}, {X: 5, Y: 6}}
	if s.Len() != 2 || s.Head() != want[0] || s.Tail() != want[1] {
		t.Errorf("body = %v, want %v", s.Body, want)
	}

	c := s.Clone()
	c.Body[0] = Point{}
	if s.Head() != want[0] {
		t.Error("clone shares its body with the original")
	}
}

// TestPlacement tests rejection sampling
func TestPlacement(t *testing.T) {
	grid := Grid{Width: config.Width, Height: config.Height}
	placer := NewPlacer(grid, NewRand(42))

	exclude := map[Point]bool{{X: 1, Y: 1}: true}
	points, err := placer.PlaceMany(200, exclude)
	if err != nil {
		t.Fatalf("PlaceMany: %v", err)
	}
	seen := make(map[Point]bool)
	for _, p := range points {
		if !grid.IsInterior(p) {
			t.Errorf("%v is not interior", p)
		}
		if seen[p] || p == (Point{X: 1, Y: 1}) {
			t.Errorf("%v placed twice or on an excluded cell", p)
		}
		seen[p] = true
	}
	if len(exclude) != 201 {
		t.Errorf("exclude has %d cells, want 201", len(exclude))
	}

	tiny := &Placer{Grid: Grid{Width: 3, Height: 3}, Rand: NewRand(1), Limit: 50}
	if _, err := tiny.Place(map[Point]bool{{X: 1, Y: 1}: true}); err == nil {
		t.Error("a full board must report exhaustion")
	}
	if _, err := (&Placer{Grid: Grid{Width: 2, Height: 2}, Rand: NewRand(1), Limit: 50}).Place(nil); err == nil {
		t.Error("a board without interior must report exhaustion")
	}
}

// TestFlashlight tests visibility on the dark terrain
func TestFlashlight(t *testing.T) {
	s := Snapshot{
		Config:  RoundConfig{Terrain: TerrainDark},
		Grid:    Grid{Width: config.Width, Height: config.Height},
		Players: []Player{{Snake: NewSnake(Point{X: 10, Y: 10}, Right)}},
	}

	if !s.Lit(Point{X: 10, Y: 10 + config.FlashlightRadius}) {
		t.Error("cell at the radius should be lit")
	}
	if s.Lit(Point{X: 13, Y: 13}) {
		t.Error("cell beyond the radius should be dark")
	}

	s.Config.Terrain = TerrainNormal
	if !s.Lit(Point{X: 28, Y: 28}) {
		t.Error("normal terrain is fully lit")
	}
}

// TestSnapshotClone tests that clones share no mutable state
func TestSnapshotClone(t *testing.T) {
	s, err := NewRound(RoundConfig{Difficulty: Hard, Terrain: TerrainWinter, Mode: TwoPlayerLocal}, nil, ColorGreen, NewRand(3))
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	s.Special = &SpecialFood{Pos: Point{X: 2, Y: 2}}
	s.Crashes = []Point{{X: 0, Y: 0}}

	c := s.Clone()
	c.Players[1].Snake.Body[0] = Point{}
	c.Players[0].Score = 99
	c.Obstacles[0] = Point{}
	c.Ice[0] = Point{}
	c.Special.Pos = Point{}
	c.Crashes[0] = Point{X: 1, Y: 1}

	if s.Players[1].Snake.Head() == (Point{}) || s.Players[0].Score == 99 {
		t.Error("players shared")
	}
	if s.Obstacles[0] == (Point{}) || s.Ice[0] == (Point{}) {
		t.Error("obstacles or ice shared")
	}
	if s.Special.Pos == (Point{}) || s.Crashes[0] != (Point{}) {
		t.Error("special food or crashes shared")
	}
}
