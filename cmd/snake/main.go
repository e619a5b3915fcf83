package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/input"
	"github.com/trytobebee/snake_arcade/pkg/logging"
	"github.com/trytobebee/snake_arcade/pkg/renderer"
	"github.com/trytobebee/snake_arcade/pkg/session"
	"github.com/trytobebee/snake_arcade/pkg/storage"
)

func main() {
	ui := flag.String("ui", "ansi", "front end: ansi or tcell")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading settings:", err)
		os.Exit(1)
	}

	logFile, err := logging.Setup(settings.DataDir, settings.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error setting up logging:", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var opts []session.Option
	if settings.DBPath != "" {
		lb, err := storage.OpenLeaderboard(settings.DBPath)
		if err != nil {
			log.Printf("leaderboard disabled: %v", err)
		} else {
			defer lb.Close()
			opts = append(opts, session.WithLeaderboard(lb))
		}
	}

	s := session.New(settings, opts...)
	defer s.Close()

	switch *ui {
	case "ansi":
		err = runANSI(s)
	case "tcell":
		err = runTcell(s)
	default:
		err = fmt.Errorf("unknown ui %q", *ui)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		s.Close()
		os.Exit(1)
	}
	fmt.Println("\n  Thanks for playing! 👋")
}

// runANSI drives the session with raw keyboard input and the ANSI renderer
func runANSI(s *session.Session) error {
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer()
	render.HideCursor()
	defer render.ShowCursor()

	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	render.Render(s.View())

	for !s.Done() {
		select {
		case <-inputHandler.Interrupt():
			return nil

		case ev := <-inputHandler.Events():
			if err := s.Handle(ev); err != nil {
				return err
			}
			render.Render(s.View())

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			before := s.View()
			if err := s.Update(dt); err != nil {
				return err
			}
			// Only redraw when something moved to keep the terminal calm
			after := s.View()
			if changed(before, after) {
				render.Render(after)
			}
		}
	}
	return nil
}

// runTcell drives the session with a tcell screen, including the mouse
func runTcell(s *session.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	render := renderer.NewTcellRenderer(screen)
	var translator input.TcellTranslator

	done := make(chan struct{})
	defer close(done)
	events, _ := pumpEvents(screen, done, 32)

	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	render.Render(s.View())

	for !s.Done() {
		select {
		case ev := <-events:
			if input.IsInterrupt(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if sev, ok := translator.Translate(ev); ok {
				if err := s.Handle(sev); err != nil {
					return err
				}
			}
			render.Render(s.View())

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := s.Update(dt); err != nil {
				return err
			}
			render.Render(s.View())
		}
	}
	return nil
}

// pumpEvents forwards screen events until the screen is finalised or done
// is closed. stopped is closed when the goroutine has exited.
func pumpEvents(screen tcell.Screen, done <-chan struct{}, size int) (events <-chan tcell.Event, stopped <-chan struct{}) {
	out := make(chan tcell.Event, size)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case out <- ev:
			case <-done:
				return
			}
		}
	}()
	return out, exited
}

func changed(a, b session.View) bool {
	if a.State != b.State || a.Message != b.Message {
		return true
	}
	if a.Snapshot == nil || b.Snapshot == nil {
		return a.Snapshot != b.Snapshot
	}
	sa, sb := a.Snapshot, b.Snapshot
	if sa.Ticks != sb.Ticks {
		return true
	}
	// The special food countdown changes between ticks
	if (sa.Special == nil) != (sb.Special == nil) {
		return true
	}
	return sa.Special != nil && sa.Special.RemainingSeconds(sa.Clock) != sb.Special.RemainingSeconds(sb.Clock)
}
