package game

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/trytobebee/snake_arcade/pkg/config"
)

// ErrPlacementExhausted means no free interior cell was found within the retry cap.
// Under the shipped board size and entity counts this is a configuration error.
var ErrPlacementExhausted = errors.New("placement retries exhausted")

// Rand is the randomness the simulation consumes
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded generator; seed 0 seeds from the clock
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Placer picks free interior cells by rejection sampling
type Placer struct {
	Grid  Grid
	Rand  Rand
	Limit int
}

// NewPlacer creates a placer with the default retry cap
func NewPlacer(grid Grid, rng Rand) *Placer {
	return &Placer{Grid: grid, Rand: rng, Limit: config.PlacementRetryLimit}
}

// Place samples interior cells until one is not in exclude
func (p *Placer) Place(exclude map[Point]bool) (Point, error) {
	if p.Grid.InteriorCells() == 0 {
		return Point{}, fmt.Errorf("%w: board %dx%d has no interior", ErrPlacementExhausted, p.Grid.Width, p.Grid.Height)
	}
	for attempts := 0; attempts < p.Limit; attempts++ {
		pos := Point{
			X: p.Rand.Intn(p.Grid.Width-2) + 1,
			Y: p.Rand.Intn(p.Grid.Height-2) + 1,
		}
		if !exclude[pos] {
			return pos, nil
		}
	}
	return Point{}, fmt.Errorf("%w: %d attempts, %d cells excluded", ErrPlacementExhausted, p.Limit, len(exclude))
}

// PlaceMany places n distinct cells; each chosen cell joins exclude
func (p *Placer) PlaceMany(n int, exclude map[Point]bool) ([]Point, error) {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		pos, err := p.Place(exclude)
		if err != nil {
			return nil, err
		}
		exclude[pos] = true
		points = append(points, pos)
	}
	return points, nil
}
