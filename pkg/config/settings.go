package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds runtime options read from the environment
type Settings struct {
	DataDir       string
	HighScoreFile string
	SaveFile      string
	DBPath        string // Empty disables the leaderboard
	RecordDir     string // Empty disables round recording
	Addr          string
	Debug         bool
	Seed          uint64 // 0 means seed from the clock
}

// Environment variable names
const (
	EnvDataDir   = "SNAKE_DATA_DIR"
	EnvHighScore = "SNAKE_HIGHSCORE_FILE"
	EnvSaveFile  = "SNAKE_SAVE_FILE"
	EnvDB        = "SNAKE_DB"
	EnvRecordDir = "SNAKE_RECORD_DIR"
	EnvAddr      = "SNAKE_ADDR"
	EnvDebug     = "SNAKE_DEBUG"
	EnvSeed      = "SNAKE_SEED"
)

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		DataDir:       "data",
		HighScoreFile: "highscore.dat",
		SaveFile:      "snake_save.json",
		DBPath:        "game.db",
		RecordDir:     "records",
		Addr:          ":8080",
	}
}

// Load reads an optional .env file and applies environment overrides.
// A missing .env is not an error.
func Load(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds settings from the process environment only
func FromEnv() (Settings, error) {
	s := DefaultSettings()

	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		s.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvHighScore); ok && v != "" {
		s.HighScoreFile = v
	}
	if v, ok := os.LookupEnv(EnvSaveFile); ok && v != "" {
		s.SaveFile = v
	}
	if v, ok := os.LookupEnv(EnvDB); ok {
		s.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvRecordDir); ok {
		s.RecordDir = v
	}
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		s.Addr = v
	}
	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s=%q: %w", EnvDebug, v, err)
		}
		s.Debug = b
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s=%q: %w", EnvSeed, v, err)
		}
		s.Seed = n
	}

	s.HighScoreFile = s.resolve(s.HighScoreFile)
	s.SaveFile = s.resolve(s.SaveFile)
	s.DBPath = s.resolve(s.DBPath)
	return s, nil
}

// resolve places relative file names inside the data directory
func (s Settings) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}
