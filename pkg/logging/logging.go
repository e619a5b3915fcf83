package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	// LogDirName is created inside the data directory
	LogDirName  = "logs"
	LogFileName = "snake.log"
	MaxLogSize  = 10 * 1024 * 1024
)

// Setup routes the standard logger. With debug off, output is discarded
// because the terminal front ends own stdout. With debug on, lines go to
// <dataDir>/logs/snake.log; a file over MaxLogSize is rotated first.
// The returned file is nil when logging is discarded.
func Setup(dataDir string, debug bool) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	dir := filepath.Join(dataDir, LogDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("snake_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(path, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil, fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("=== snake started (pid %d) ===", os.Getpid())
	return f, nil
}
