package config

import "time"

// Game board dimensions
const (
	GameWidth  = 600
	GameHeight = 600
	GridSize   = 20
	Width      = GameWidth / GridSize  // 30 cells
	Height     = GameHeight / GridSize // 30 cells
)

// Loop timing
const (
	FrameInterval      = time.Second / 60       // External input/render loop
	AIDecisionInterval = 200 * time.Millisecond // Opponent re-plans at most this often
)

// Scoring
const (
	NormalFoodScore  = 10
	SpecialFoodScore = 20
	SpeedStepScore   = 30 // Every 3 normal foods
)

// Special food settings
const (
	SpecialFoodLifetime = 10 * time.Second
	SpecialFoodChance   = 0.05 // Per accepted movement tick
)

// Speed settings (moves per second)
const (
	MinSpeed    = 5
	MaxSpeed    = 20
	EasySpeed   = 8
	MediumSpeed = 12
	HardSpeed   = 15
)

// Obstacle counts per difficulty
const (
	EasyObstacles   = 0
	MediumObstacles = 5
	HardObstacles   = 10
)

// Terrain settings
const (
	IceBlockCount    = 15
	SlipChance       = 0.3
	FlashlightRadius = 5
)

// PlacementRetryLimit bounds rejection sampling for a single placement.
const PlacementRetryLimit = 10000

// Session settings
const (
	MaxNameLength = 12
	DefaultName1  = "Player 1"
	DefaultName2  = "Player 2"
	DefaultAIName = "Computer"
)

// Characters for rendering
const (
	CharEmpty   = "  " // Two spaces to match emoji width
	CharWall    = "⬜"
	CharHead    = "🟢"
	CharBody    = "🟩"
	CharP2Head  = "🔵"
	CharP2Body  = "🟦"
	CharAIHead  = "🤖"
	CharFood    = "🍎"
	CharSpecial = "⭐"
	CharStone   = "🪨"
	CharIce     = "🧊"
	CharDark    = "⬛"
	CharCrash   = "💥"
)
