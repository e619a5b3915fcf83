package session

import (
	"errors"
	"fmt"
	"log"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
	"github.com/trytobebee/snake_arcade/pkg/storage"
)

// State of the session
type State int

const (
	Menu State = iota
	Settings
	NameInput
	Playing
	AiPlaying
	Paused
	GameOver
)

var stateNames = []string{"menu", "settings", "name_input", "playing", "ai_playing", "paused", "game_over"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Preferences are the menu choices carried into the next round
type Preferences struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Terrain    game.Terrain    `json:"terrain"`
	Mode       game.PlayerMode `json:"mode"`
	Color      game.SnakeColor `json:"color"`
}

// View is everything a renderer needs for one frame. Every call to
// Session.View returns a fresh copy.
type View struct {
	State     State          `json:"state"`
	Snapshot  *game.Snapshot `json:"snapshot,omitempty"`
	HighScore int            `json:"highScore"`
	Settings  Preferences    `json:"settings"`
	Names     [2]string      `json:"names"`
	NameIndex int            `json:"nameIndex"`
	Buttons   []Button       `json:"buttons"`
	Hover     int            `json:"hover"`
	Message   string         `json:"message,omitempty"`
}

// Session drives menus and rounds for one player seat. It is not safe for
// concurrent use; a front end feeds it from a single goroutine.
type Session struct {
	id          string
	settings    config.Settings
	rng         game.Rand
	highScores  *storage.HighScores
	saves       storage.SaveFile
	leaderboard *storage.Leaderboard
	now         func() time.Time

	state     State
	resume    State
	prefs     Preferences
	names     [2]string
	nameIndex int
	round     *game.Round
	started   time.Time
	recorder  *game.GameRecorder
	step      int
	highScore int
	hover     int
	message   string
	done      bool
}

// Option customises a new session
type Option func(*Session)

// WithLeaderboard records finished rounds in lb
func WithLeaderboard(lb *storage.Leaderboard) Option {
	return func(s *Session) { s.leaderboard = lb }
}

// WithHighScores shares one high score store between sessions
func WithHighScores(h *storage.HighScores) Option {
	return func(s *Session) { s.highScores = h }
}

// WithRand replaces the seeded generator
func WithRand(rng game.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// New creates a session in the Menu state and loads the stored high score
func New(settings config.Settings, opts ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		settings:   settings,
		saves:      storage.SaveFile{Path: settings.SaveFile},
		now:        time.Now,
		state:      Menu,
		hover:      -1,
		prefs:      Preferences{Difficulty: game.Medium},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = game.NewRand(settings.Seed)
	}
	if s.highScores == nil {
		s.highScores = storage.NewHighScores(settings.HighScoreFile)
	}
	s.highScore = s.highScores.Best()
	return s
}

// ID identifies the session in recordings and the leaderboard
func (s *Session) ID() string { return s.id }

// State returns the current session state
func (s *Session) State() State { return s.state }

// Done reports whether the player asked to quit
func (s *Session) Done() bool { return s.done }

// Close releases the round recorder
func (s *Session) Close() {
	s.closeRecorder()
}

func (s *Session) setState(next State) {
	if next != s.state {
		log.Printf("session %s: %s -> %s", s.id[:8], s.state, next)
	}
	s.state = next
	s.hover = -1
	// Other sessions may have raised it meanwhile
	if next == Menu {
		s.highScore = s.highScores.Best()
	}
}

// playState is Playing or AiPlaying depending on the chosen mode
func (s *Session) playState() State {
	if s.prefs.Mode == game.SinglePlayerVsAI {
		return AiPlaying
	}
	return Playing
}

// Handle applies one input event. Events that mean nothing in the current
// state are ignored. The only error is a failure to set up a new round.
func (s *Session) Handle(ev Event) error {
	switch ev.Kind {
	case Hover:
		s.hover = s.buttonAt(ev.X, ev.Y)
		return nil
	case Click:
		idx := s.buttonAt(ev.X, ev.Y)
		if idx < 0 {
			return nil
		}
		return s.Handle(s.Buttons()[idx].Action)
	}

	switch s.state {
	case Menu:
		return s.handleMenu(ev)
	case Settings:
		s.handleSettings(ev)
	case NameInput:
		return s.handleNameInput(ev)
	case Playing, AiPlaying:
		s.handlePlaying(ev)
	case Paused:
		s.handlePaused(ev)
	case GameOver:
		return s.handleGameOver(ev)
	}
	return nil
}

func (s *Session) buttonAt(x, y int) int {
	for i, b := range s.Buttons() {
		if b.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (s *Session) handleMenu(ev Event) error {
	switch {
	case ev.is('1'), ev.is('2'), ev.is('3'):
		s.prefs.Difficulty = game.Difficulty(ev.Rune - '1')
		s.message = ""
		if s.prefs.Mode == game.TwoPlayerLocal {
			s.names = [2]string{}
			s.nameIndex = 0
			s.setState(NameInput)
			return nil
		}
		s.names = [2]string{}
		return s.startRound()
	case ev.is('s'):
		s.message = ""
		s.setState(Settings)
	case ev.is('l'):
		s.Load()
	case ev.is('q'), ev.Key == KeyEscape:
		s.done = true
	}
	return nil
}

func (s *Session) handleSettings(ev Event) {
	switch {
	case ev.is('1'):
		s.prefs.Color = game.ColorGreen
	case ev.is('2'):
		s.prefs.Color = game.ColorGold
	case ev.is('3'):
		s.prefs.Color = game.ColorPurple
	case ev.is('t'):
		s.prefs.Terrain = s.prefs.Terrain.Next()
	case ev.is('m'):
		s.prefs.Mode = s.prefs.Mode.Next()
	case ev.Key == KeyEscape, ev.Key == KeyEnter:
		s.setState(Menu)
	}
}

func (s *Session) handleNameInput(ev Event) error {
	name := &s.names[s.nameIndex]
	switch ev.Key {
	case KeyRune, KeySpace:
		r := ev.Rune
		if ev.Key == KeySpace {
			r = ' '
		}
		if unicode.IsPrint(r) && utf8.RuneCountInString(*name) < config.MaxNameLength {
			*name += string(r)
		}
	case KeyBackspace:
		if n := len(*name); n > 0 {
			_, size := utf8.DecodeLastRuneInString(*name)
			*name = (*name)[:n-size]
		}
	case KeyEnter:
		if s.nameIndex == 0 {
			s.nameIndex = 1
			return nil
		}
		return s.startRound()
	case KeyEscape:
		s.setState(Menu)
	}
	return nil
}

func (s *Session) handlePlaying(ev Event) {
	if dir, ok := arrowDirection(ev); ok {
		s.round.Queue(0, dir)
		return
	}
	if dir, ok := wasdDirection(ev); ok {
		player := 0
		if s.prefs.Mode == game.TwoPlayerLocal {
			player = 1
		}
		s.round.Queue(player, dir)
		return
	}

	switch {
	case ev.Key == KeySpace:
		s.round.TogglePause()
		s.resume = s.state
		s.setState(Paused)
	case ev.is('p'):
		s.Save()
	case ev.is('l'):
		s.Load()
	case ev.Key == KeyEscape:
		s.abandonRound()
	}
}

func (s *Session) handlePaused(ev Event) {
	switch {
	case ev.Key == KeySpace:
		s.round.TogglePause()
		s.setState(s.resume)
	case ev.Key == KeyEscape:
		s.abandonRound()
	}
}

func (s *Session) handleGameOver(ev Event) error {
	switch {
	case ev.is('r'):
		return s.startRound()
	case ev.is('m'), ev.Key == KeyEscape:
		s.round = nil
		s.setState(Menu)
	}
	return nil
}

func arrowDirection(ev Event) (game.Direction, bool) {
	switch ev.Key {
	case KeyUp:
		return game.Up, true
	case KeyDown:
		return game.Down, true
	case KeyLeft:
		return game.Left, true
	case KeyRight:
		return game.Right, true
	}
	return game.Direction{}, false
}

func wasdDirection(ev Event) (game.Direction, bool) {
	switch {
	case ev.is('w'):
		return game.Up, true
	case ev.is('s'):
		return game.Down, true
	case ev.is('a'):
		return game.Left, true
	case ev.is('d'):
		return game.Right, true
	}
	return game.Direction{}, false
}

// startRound begins a fresh round with the current preferences and names
func (s *Session) startRound() error {
	cfg := game.RoundConfig{Difficulty: s.prefs.Difficulty, Terrain: s.prefs.Terrain, Mode: s.prefs.Mode}
	round, err := game.StartRound(cfg, s.names[:], s.prefs.Color, s.rng)
	if err != nil {
		return fmt.Errorf("failed to start round: %w", err)
	}
	s.beginRound(round)
	s.setState(s.playState())
	log.Printf("session %s: round started %s/%s/%s", s.id[:8], cfg.Difficulty, cfg.Terrain, cfg.Mode)
	return nil
}

func (s *Session) beginRound(round *game.Round) {
	s.closeRecorder()
	s.round = round
	s.started = s.now()
	s.step = 0
	s.message = ""
	if s.settings.RecordDir == "" {
		return
	}
	rec, err := game.NewRecorder(s.settings.RecordDir, s.id)
	if err != nil {
		log.Printf("session %s: recording disabled: %v", s.id[:8], err)
		return
	}
	s.recorder = rec
}

func (s *Session) abandonRound() {
	s.closeRecorder()
	s.round = nil
	s.message = ""
	s.setState(Menu)
}

func (s *Session) closeRecorder() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Close(); err != nil {
		log.Printf("session %s: closing recording: %v", s.id[:8], err)
	}
	s.recorder = nil
}

// Update feeds elapsed wall time into the running round. When the round
// ends the high score, leaderboard and recording are settled and the
// session moves to GameOver.
func (s *Session) Update(dt time.Duration) error {
	if s.round == nil || (s.state != Playing && s.state != AiPlaying) {
		return nil
	}
	ticked, err := s.round.Advance(dt)
	if err != nil {
		return fmt.Errorf("round update: %w", err)
	}
	if !ticked {
		return nil
	}

	snap := s.round.Snapshot()
	if s.recorder != nil {
		s.step++
		s.recorder.RecordStep(game.StepRecord{Step: s.step, Session: s.id, State: snap})
	}
	if snap.Over {
		s.finishRound(snap)
	}
	return nil
}

func (s *Session) finishRound(snap game.Snapshot) {
	best := snap.BestScore()
	log.Printf("session %s: round over, best %d, crashes %v", s.id[:8], best, snap.Crashes)

	high, updated, err := s.highScores.Submit(best)
	if err != nil {
		log.Printf("session %s: %v", s.id[:8], err)
	}
	s.highScore = high
	if updated {
		s.message = "New high score!"
		log.Printf("session %s: high score updated to %d", s.id[:8], best)
	}

	if s.leaderboard != nil {
		result := storage.ResultFrom(s.id, snap, s.started, s.now())
		if err := s.leaderboard.RecordRound(result); err != nil {
			log.Printf("session %s: leaderboard: %v", s.id[:8], err)
		}
	}

	s.closeRecorder()
	s.setState(GameOver)
}

// Save stores the running round. It reports success; on failure the
// session is left untouched apart from its message.
func (s *Session) Save() bool {
	if s.round == nil || (s.state != Playing && s.state != AiPlaying) {
		return false
	}
	if err := s.saves.Save(s.round.Snapshot()); err != nil {
		log.Printf("session %s: save failed: %v", s.id[:8], err)
		s.message = "Save failed"
		return false
	}
	log.Printf("session %s: saved to %s", s.id[:8], s.settings.SaveFile)
	s.message = "Game saved"
	return true
}

// Load replaces the current round with the saved one. It is all or nothing:
// a missing or invalid save leaves the session as it was.
func (s *Session) Load() bool {
	if s.state != Menu && s.state != Playing && s.state != AiPlaying {
		return false
	}
	snap, err := s.saves.Load()
	if err != nil {
		log.Printf("session %s: load failed: %v", s.id[:8], err)
		if errors.Is(err, storage.ErrNoSave) {
			s.message = "No saved game"
		} else {
			s.message = "Saved game is unreadable"
		}
		return false
	}

	s.prefs.Difficulty = snap.Config.Difficulty
	s.prefs.Terrain = snap.Config.Terrain
	s.prefs.Mode = snap.Config.Mode
	s.prefs.Color = snap.Players[0].Color
	s.names = [2]string{}
	for i := 0; i < len(snap.Players) && i < len(s.names); i++ {
		s.names[i] = snap.Players[i].Name
	}

	s.beginRound(game.ResumeRound(snap, s.rng))
	s.message = "Game loaded"
	s.setState(s.playState())
	log.Printf("session %s: loaded %s", s.id[:8], s.settings.SaveFile)
	return true
}

// View returns a copy of everything a renderer draws
func (s *Session) View() View {
	v := View{
		State:     s.state,
		HighScore: s.highScore,
		Settings:  s.prefs,
		Names:     s.names,
		NameIndex: s.nameIndex,
		Buttons:   s.Buttons(),
		Hover:     s.hover,
		Message:   s.message,
	}
	if s.round != nil {
		snap := s.round.Snapshot()
		v.Snapshot = &snap
	}
	return v
}
