package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// HighScoreFile stores the best score as a plain-text integer
type HighScoreFile struct {
	Path string
}

// Load returns the stored high score. A missing or unreadable file counts as 0.
func (h HighScoreFile) Load() int {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Save overwrites the stored high score
func (h HighScoreFile) Save(score int) error {
	if err := writeFileAtomic(h.Path, []byte(strconv.Itoa(score)+"\n")); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// HighScores serialises updates to one high score file. Every update
// re-reads the file, so a stale reader never lowers the stored score.
type HighScores struct {
	mu   sync.Mutex
	file HighScoreFile
}

// NewHighScores returns the store for the file at path
func NewHighScores(path string) *HighScores {
	return &HighScores{file: HighScoreFile{Path: path}}
}

// Best returns the stored high score
func (h *HighScores) Best() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Load()
}

// Submit stores score if it beats the stored high score. It returns the high
// score after the call and whether score replaced it.
func (h *HighScores) Submit(score int) (int, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.file.Load()
	if score <= current {
		return current, false, nil
	}
	if err := h.file.Save(score); err != nil {
		return current, false, err
	}
	return score, true, nil
}

// writeFileAtomic writes to a temp file next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
