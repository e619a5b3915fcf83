package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
)

// SaveVersion is bumped whenever the saved layout changes
const SaveVersion = 1

var (
	ErrNoSave      = errors.New("no saved game")
	ErrCorruptSave = errors.New("saved game is corrupt")
)

// saveRecord is the on-disk layout of a saved round
type saveRecord struct {
	Version int           `json:"version"`
	SavedAt time.Time     `json:"savedAt"`
	State   game.Snapshot `json:"state"`
}

// SaveFile persists one in-progress round
type SaveFile struct {
	Path string
}

// Save writes s, replacing any previous save
func (f SaveFile) Save(s game.Snapshot) error {
	if s.Over {
		return fmt.Errorf("cannot save a finished round")
	}
	if s.Paused {
		return fmt.Errorf("cannot save a paused round")
	}
	data, err := json.MarshalIndent(saveRecord{
		Version: SaveVersion,
		SavedAt: time.Now().UTC(),
		State:   s,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if err := writeFileAtomic(f.Path, data); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Load reads and validates the saved round. Nothing is returned unless every
// field checks out.
func (f SaveFile) Load() (game.Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return game.Snapshot{}, ErrNoSave
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to read save: %w", err)
	}

	var rec saveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if rec.Version != SaveVersion {
		return game.Snapshot{}, fmt.Errorf("%w: version %d", ErrCorruptSave, rec.Version)
	}
	if err := Validate(rec.State); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return rec.State, nil
}

// Remove deletes the save if there is one
func (f SaveFile) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Validate checks that s is a round this build can resume
func Validate(s game.Snapshot) error {
	cfg := s.Config
	if cfg.Difficulty < game.Easy || cfg.Difficulty > game.Hard {
		return fmt.Errorf("difficulty %d out of range", cfg.Difficulty)
	}
	if cfg.Terrain < game.TerrainNormal || cfg.Terrain > game.TerrainWinter {
		return fmt.Errorf("terrain %d out of range", cfg.Terrain)
	}
	if cfg.Mode < game.SinglePlayer || cfg.Mode > game.SinglePlayerVsAI {
		return fmt.Errorf("mode %d out of range", cfg.Mode)
	}
	if s.Grid.Width != config.Width || s.Grid.Height != config.Height {
		return fmt.Errorf("grid %dx%d, want %dx%d", s.Grid.Width, s.Grid.Height, config.Width, config.Height)
	}
	if s.Over {
		return errors.New("round already over")
	}
	if s.Paused {
		return errors.New("round saved while paused")
	}
	if s.Speed < config.MinSpeed || s.Speed > config.MaxSpeed {
		return fmt.Errorf("speed %d out of range", s.Speed)
	}
	if s.BaseSpeed != cfg.Difficulty.BaseSpeed() {
		return fmt.Errorf("base speed %d does not match %s", s.BaseSpeed, cfg.Difficulty)
	}
	if s.Clock < 0 || s.LastMove < 0 || s.LastMove > s.Clock || s.LastDecision > s.Clock {
		return errors.New("inconsistent round clock")
	}

	kinds := cfg.Mode.Kinds()
	if len(s.Players) != len(kinds) {
		return fmt.Errorf("%d players for mode %s", len(s.Players), cfg.Mode)
	}
	occupied := make(map[game.Point]bool)
	for i, p := range s.Players {
		if p.Kind != kinds[i] {
			return fmt.Errorf("player %d kind %s, mode %s wants %s", i+1, p.Kind, cfg.Mode, kinds[i])
		}
		if p.Score < 0 {
			return fmt.Errorf("player %d has negative score", i+1)
		}
		if p.Color < game.ColorGreen || p.Color > game.ColorBlue {
			return fmt.Errorf("player %d color %d out of range", i+1, p.Color)
		}
		sn := p.Snake
		if len(sn.Body) == 0 {
			return fmt.Errorf("player %d has an empty body", i+1)
		}
		if !sn.Dir.Valid() || !sn.Pending.Valid() {
			return fmt.Errorf("player %d has an invalid direction", i+1)
		}
		own := make(map[game.Point]bool)
		for _, c := range sn.Body {
			if !s.Grid.IsInterior(c) {
				return fmt.Errorf("player %d segment %v off the board", i+1, c)
			}
			if own[c] {
				return fmt.Errorf("player %d overlaps itself at %v", i+1, c)
			}
			own[c] = true
			occupied[c] = true
		}
	}

	if !s.Grid.IsInterior(s.Food) {
		return fmt.Errorf("food %v off the board", s.Food)
	}
	if s.Special != nil {
		if !s.Grid.IsInterior(s.Special.Pos) || s.Special.Pos == s.Food {
			return fmt.Errorf("special food %v misplaced", s.Special.Pos)
		}
		if s.Special.SpawnedAt < 0 || s.Special.SpawnedAt > s.Clock {
			return errors.New("special food spawned outside the round clock")
		}
	}
	if len(s.Ice) > 0 && cfg.Terrain != game.TerrainWinter {
		return errors.New("ice outside the winter terrain")
	}
	for _, c := range s.Obstacles {
		if !s.Grid.IsInterior(c) {
			return fmt.Errorf("obstacle %v off the board", c)
		}
		if occupied[c] {
			return fmt.Errorf("obstacle %v overlaps a snake", c)
		}
	}
	// Snakes may stand on ice
	for _, c := range s.Ice {
		if !s.Grid.IsInterior(c) {
			return fmt.Errorf("ice %v off the board", c)
		}
	}
	return nil
}
