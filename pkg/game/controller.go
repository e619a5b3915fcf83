package game

// Controller defines the brain of a snake (Human or Heuristic)
type Controller interface {
	// Decide returns a new buffered direction, or false when the
	// controller leaves the direction to external input.
	Decide(s *Snapshot, playerIdx int) (Direction, bool)
}

// --- Implementation: Manual Controller (Human) ---

// ManualController never decides; directions arrive through Queue
type ManualController struct{}

func (ManualController) Decide(s *Snapshot, playerIdx int) (Direction, bool) {
	return Direction{}, false
}

// --- Implementation: Heuristic AI Controller ---

// HeuristicController steers greedily toward the normal food
type HeuristicController struct{}

func (HeuristicController) Decide(s *Snapshot, playerIdx int) (Direction, bool) {
	if playerIdx >= len(s.Players) {
		return Direction{}, false
	}
	snake := s.Players[playerIdx].Snake
	return ChooseDirection(s.Grid, snake, s.Food, s.Obstacles), true
}

// ControllerFor returns the controller matching a recorded kind
func ControllerFor(kind ControllerKind) Controller {
	if kind == KindHeuristic {
		return HeuristicController{}
	}
	return ManualController{}
}

// ControllersFor builds one controller per player of the snapshot
func ControllersFor(s *Snapshot) []Controller {
	ctrls := make([]Controller, len(s.Players))
	for i, p := range s.Players {
		ctrls[i] = ControllerFor(p.Kind)
	}
	return ctrls
}
