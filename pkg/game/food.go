package game

import (
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// SpecialFood is a bonus item that disappears after its lifetime.
// SpawnedAt is measured on the round clock, so pauses do not age it.
type SpecialFood struct {
	Pos       Point         `json:"pos"`
	SpawnedAt time.Duration `json:"spawnedAt"`
}

// IsExpired checks if the food has outlived its lifetime at round clock now
func (f *SpecialFood) IsExpired(now time.Duration) bool {
	return now-f.SpawnedAt >= config.SpecialFoodLifetime
}

// Remaining returns the time left before expiry
func (f *SpecialFood) Remaining(now time.Duration) time.Duration {
	remaining := config.SpecialFoodLifetime - (now - f.SpawnedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingSeconds rounds the time left up to whole seconds for display
func (f *SpecialFood) RemainingSeconds(now time.Duration) int {
	r := f.Remaining(now)
	return int((r + time.Second - 1) / time.Second)
}

// ScoreEvent represents a point-earning event for visual feedback
type ScoreEvent struct {
	Pos    Point  `json:"pos"`
	Amount int    `json:"amount"`
	Label  string `json:"label"`
	Player int    `json:"player"`
}
