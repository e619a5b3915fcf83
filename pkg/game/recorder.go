package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StepRecord is one recorded movement tick
type StepRecord struct {
	Step    int      `json:"step"`
	Session string   `json:"session"`
	State   Snapshot `json:"state"`
}

// GameRecorder handles asynchronous logging of round steps
type GameRecorder struct {
	path       string
	file       *os.File
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	dropped    int
}

// NewRecorder creates a new recorder that writes to dir.
// Filename format: round_{sessionID}_{timestamp}.jsonl
func NewRecorder(dir, sessionID string) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	filename := fmt.Sprintf("round_%s_%d.jsonl", sessionID, time.Now().Unix())
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := &GameRecorder{
		path:       path,
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan StepRecord, 1000), // Buffer up to 1000 ticks
	}

	// Start background writer
	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// Path returns the file being written
func (r *GameRecorder) Path() string {
	return r.path
}

// RecordStep queues a record to be written. Non-blocking (drops if full).
func (r *GameRecorder) RecordStep(rec StepRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.recordChan <- rec:
	default:
		// Channel full, drop the tick to protect the game loop
		r.dropped++
	}
}

// Close flushes the buffer and closes the file
func (r *GameRecorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	dropped := r.dropped
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait()
	if dropped > 0 {
		log.Printf("recorder %s dropped %d steps", r.path, dropped)
	}
	return r.file.Close()
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			log.Printf("Error recording step %d: %v", rec.Step, err)
			continue
		}
	}
	if err := r.writer.Flush(); err != nil {
		log.Printf("Error flushing recording %s: %v", r.path, err)
	}
}

// ReadRecording streams the records of a recording file to fn in order
func ReadRecording(path string, fn func(StepRecord) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		var rec StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return scanner.Err()
}
