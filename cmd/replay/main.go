package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
	"github.com/trytobebee/snake_arcade/pkg/renderer"
	"github.com/trytobebee/snake_arcade/pkg/session"
)

// RecordFile describes one recording on disk
type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

func main() {
	list := flag.Bool("list", false, "list recordings instead of playing one")
	speed := flag.Float64("speed", 1, "playback speed factor")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading settings:", err)
		os.Exit(1)
	}

	if *list || flag.NArg() == 0 {
		records, err := listRecordings(settings.RecordDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		printRecordings(os.Stdout, settings.RecordDir, records)
		return
	}
	if *speed <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -speed must be positive")
		os.Exit(1)
	}

	path := flag.Arg(0)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(settings.RecordDir, flag.Arg(0))
	}

	r := renderer.NewTerminalRenderer()
	r.HideCursor()
	err = play(path, *speed, r.Render, time.Sleep)
	r.ShowCursor()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// listRecordings returns the recordings in dir, newest first
func listRecordings(dir string) ([]RecordFile, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []RecordFile
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		// expecting format: round_{sessionID}_{timestamp}.jsonl
		parts := strings.Split(strings.TrimSuffix(f.Name(), ".jsonl"), "_")
		sessID := ""
		if len(parts) >= 3 {
			sessID = strings.Join(parts[1:len(parts)-1], "_")
		}
		records = append(records, RecordFile{
			Name:      f.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessID,
		})
	}

	// Sort by time desc
	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

func printRecordings(w io.Writer, dir string, records []RecordFile) {
	fmt.Fprintf(w, "📼 Recordings in %s\n\n", dir)
	if len(records) == 0 {
		fmt.Fprintln(w, "  No recordings found")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(w, "  %s\n    Session: %s | Size: %d bytes | %s\n", rec.Name, rec.SessionID, rec.Size, rec.Time.Format("2006-01-02 15:04:05"))
	}
}

// play shows every recorded step, waiting the recorded round time between
// steps divided by speed
func play(path string, speed float64, show func(session.View), sleep func(time.Duration)) error {
	var prev time.Duration
	first := true
	var last *game.Snapshot

	err := game.ReadRecording(path, func(rec game.StepRecord) error {
		if !first {
			if gap := rec.State.Clock - prev; gap > 0 {
				sleep(time.Duration(float64(gap) / speed))
			}
		}
		first = false
		prev = rec.State.Clock

		snap := rec.State
		last = &snap
		show(replayView(&snap))
		return nil
	})
	if err != nil {
		return err
	}
	if last == nil {
		return fmt.Errorf("%s has no recorded steps", path)
	}
	return nil
}

func replayView(s *game.Snapshot) session.View {
	state := session.Playing
	switch {
	case s.Over:
		state = session.GameOver
	case s.Config.Mode == game.SinglePlayerVsAI:
		state = session.AiPlaying
	}
	return session.View{State: state, Snapshot: s, Hover: -1}
}
