package game

import (
	"fmt"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// Env carries what a transition needs besides the snapshot itself
type Env struct {
	Rand        Rand
	Controllers []Controller
}

func (e Env) controller(idx int) Controller {
	if idx < len(e.Controllers) && e.Controllers[idx] != nil {
		return e.Controllers[idx]
	}
	return ManualController{}
}

// NewRound resets every entity for a fresh round
func NewRound(cfg RoundConfig, names []string, color SnakeColor, rng Rand) (Snapshot, error) {
	grid := Grid{Width: config.Width, Height: config.Height}
	kinds := cfg.Mode.Kinds()

	s := Snapshot{
		Config:       cfg,
		Grid:         grid,
		Players:      make([]Player, len(kinds)),
		Speed:        cfg.Difficulty.BaseSpeed(),
		BaseSpeed:    cfg.Difficulty.BaseSpeed(),
		LastDecision: -config.AIDecisionInterval,
	}

	for i, kind := range kinds {
		p := Player{Kind: kind, Name: playerName(names, i, kind)}
		if i == 0 {
			p.Snake = NewSnake(grid.Center(), Right)
			p.Color = color
		} else {
			p.Snake = NewSnake(Point{X: grid.Width - 2, Y: grid.Height - 2}, Left)
			p.Color = ColorBlue
		}
		s.Players[i] = p
	}

	placer := NewPlacer(grid, rng)
	exclude := make(map[Point]bool)
	for _, p := range s.Players {
		for _, c := range p.Snake.Body {
			exclude[c] = true
		}
	}

	obstacles, err := placer.PlaceMany(cfg.Difficulty.ObstacleCount(), exclude)
	if err != nil {
		return Snapshot{}, fmt.Errorf("placing obstacles: %w", err)
	}
	s.Obstacles = obstacles

	if cfg.Terrain == TerrainWinter {
		ice, err := placer.PlaceMany(config.IceBlockCount, exclude)
		if err != nil {
			return Snapshot{}, fmt.Errorf("placing ice: %w", err)
		}
		s.Ice = ice
	}

	food, err := placer.Place(exclude)
	if err != nil {
		return Snapshot{}, fmt.Errorf("placing food: %w", err)
	}
	s.Food = food
	return s, nil
}

func playerName(names []string, idx int, kind ControllerKind) string {
	if idx < len(names) && names[idx] != "" {
		return names[idx]
	}
	switch {
	case kind == KindHeuristic:
		return config.DefaultAIName
	case idx == 0:
		return config.DefaultName1
	default:
		return config.DefaultName2
	}
}

// Queue buffers a direction request for a human-driven player.
// Reverse requests, finished rounds and AI-driven snakes are ignored.
func Queue(s Snapshot, player int, dir Direction) (Snapshot, bool) {
	if s.Over || player < 0 || player >= len(s.Players) || s.Players[player].Kind != KindHuman {
		return s, false
	}
	next := s.Clone()
	if !next.Players[player].Snake.Queue(dir) {
		return s, false
	}
	return next, true
}

// TogglePause flips the pause flag of a running round
func TogglePause(s Snapshot) Snapshot {
	if s.Over {
		return s
	}
	next := s.Clone()
	next.Paused = !next.Paused
	return next
}

// Advance moves the round clock by elapsed and runs at most one movement
// tick. It reports whether a tick was accepted. While paused or over the
// snapshot is returned unchanged, so a pause freezes the tick interval.
func Advance(prev Snapshot, elapsed time.Duration, env Env) (Snapshot, bool, error) {
	if prev.Over || prev.Paused || elapsed <= 0 {
		return prev, false, nil
	}

	s := prev.Clone()
	s.Clock += elapsed

	// Expiry is checked on every advance so special food never outlives its lifetime
	if s.Special != nil && s.Special.IsExpired(s.Clock) {
		s.Special = nil
	}

	if s.Clock-s.LastMove < s.Interval() {
		return s, false, nil
	}
	s.LastMove = s.Clock
	s.Ticks++
	s.Crashes = nil
	s.ScoreEvents = nil

	if err := tick(&s, env); err != nil {
		return prev, false, err
	}
	return s, true, nil
}

// tick runs one accepted movement step in place
func tick(s *Snapshot, env Env) error {
	placer := NewPlacer(s.Grid, env.Rand)

	// 1-2. Commit buffered directions; player 1 may slip on ice
	for i := range s.Players {
		sn := &s.Players[i].Snake
		if i == 0 && s.Config.Terrain == TerrainWinter {
			if s.IsIce(sn.Head()) && env.Rand.Float64() < config.SlipChance {
				s.Slipping = true
				continue
			}
			s.Slipping = false
		}
		sn.Commit()
	}

	// 3. Special food lifecycle
	if s.Special == nil {
		if env.Rand.Float64() < config.SpecialFoodChance {
			pos, err := placer.Place(s.Occupied())
			if err != nil {
				return fmt.Errorf("placing special food: %w", err)
			}
			s.Special = &SpecialFood{Pos: pos, SpawnedAt: s.Clock}
		}
	} else if s.Special.IsExpired(s.Clock) {
		s.Special = nil
	}

	// 4. Opponent decisions on their own cadence; a decision is buffered
	// and committed by the next tick
	if s.Clock-s.LastDecision >= config.AIDecisionInterval {
		s.LastDecision = s.Clock
		for i := range s.Players {
			if dir, ok := env.controller(i).Decide(s, i); ok {
				s.Players[i].Snake.Queue(dir)
			}
		}
	}

	// 5. Candidate heads
	cands := make([]Point, len(s.Players))
	for i := range s.Players {
		sn := &s.Players[i].Snake
		cands[i] = s.Grid.Step(sn.Head(), sn.Dir)
	}

	// 6. Collisions against the pre-move state
	for _, c := range cands {
		if s.collides(c) {
			s.Crashes = append(s.Crashes, c)
		}
	}
	if len(s.Crashes) > 0 {
		s.Over = true
		return nil
	}

	// 7-8. Apply moves in player order; player 1 has food priority
	for i := range s.Players {
		p := &s.Players[i]
		head := cands[i]

		switch {
		case head == s.Food:
			p.Snake.Advance(head, true)
			old := p.Score
			p.Score += config.NormalFoodScore
			s.addScoreEvent(i, head, config.NormalFoodScore)
			if old/config.SpeedStepScore < p.Score/config.SpeedStepScore && s.Speed < config.MaxSpeed {
				s.Speed++
			}

			exclude := s.Occupied()
			for _, c := range cands {
				exclude[c] = true
			}
			pos, err := placer.Place(exclude)
			if err != nil {
				return fmt.Errorf("placing food: %w", err)
			}
			s.Food = pos

		case s.Special != nil && head == s.Special.Pos:
			p.Snake.Advance(head, true)
			p.Score += config.SpecialFoodScore
			s.addScoreEvent(i, head, config.SpecialFoodScore)
			s.Special = nil
			if s.Speed > config.MinSpeed {
				s.Speed--
			}

		default:
			p.Snake.Advance(head, false)
		}
	}
	return nil
}

// collides reports whether moving a head to c is fatal
func (s *Snapshot) collides(c Point) bool {
	if s.Grid.IsBorder(c) || s.IsObstacle(c) {
		return true
	}
	// Full bodies: a tail vacated this tick still counts
	for _, p := range s.Players {
		if p.Snake.Contains(c) {
			return true
		}
	}
	return false
}

func (s *Snapshot) addScoreEvent(player int, pos Point, amount int) {
	s.ScoreEvents = append(s.ScoreEvents, ScoreEvent{
		Pos:    pos,
		Amount: amount,
		Label:  fmt.Sprintf("+%d", amount),
		Player: player,
	})
}

// Round owns the current snapshot of a playthrough together with its
// randomness and controllers. It is driven by a single goroutine.
type Round struct {
	snap Snapshot
	env  Env
}

// StartRound creates a fresh round
func StartRound(cfg RoundConfig, names []string, color SnakeColor, rng Rand) (*Round, error) {
	s, err := NewRound(cfg, names, color, rng)
	if err != nil {
		return nil, err
	}
	return ResumeRound(s, rng), nil
}

// ResumeRound continues from an existing snapshot, e.g. a loaded save
func ResumeRound(s Snapshot, rng Rand) *Round {
	return &Round{
		snap: s,
		env:  Env{Rand: rng, Controllers: ControllersFor(&s)},
	}
}

// Snapshot returns a copy the caller may keep
func (r *Round) Snapshot() Snapshot {
	return r.snap.Clone()
}

// State returns the current round state
func (r *Round) State() State {
	return r.snap.State()
}

// Advance feeds elapsed wall time into the round
func (r *Round) Advance(elapsed time.Duration) (bool, error) {
	next, ticked, err := Advance(r.snap, elapsed, r.env)
	if err != nil {
		return false, err
	}
	r.snap = next
	return ticked, nil
}

// Queue buffers a direction for a player
func (r *Round) Queue(player int, dir Direction) bool {
	next, ok := Queue(r.snap, player, dir)
	r.snap = next
	return ok
}

// TogglePause pauses or resumes the round
func (r *Round) TogglePause() {
	r.snap = TogglePause(r.snap)
}
