package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/game"
)

func TestHighScoreFile(t *testing.T) {
	dir := t.TempDir()
	h := HighScoreFile{Path: filepath.Join(dir, "sub", "highscore.dat")}

	if got := h.Load(); got != 0 {
		t.Errorf("missing file = %d, want 0", got)
	}
	if err := h.Save(140); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := h.Load(); got != 140 {
		t.Errorf("Load = %d, want 140", got)
	}

	tests := []struct {
		content string
		want    int
	}{
		{"  250 \n", 250},
		{"abc", 0},
		{"-5", 0},
		{"", 0},
	}
	for _, tc := range tests {
		if err := os.WriteFile(h.Path, []byte(tc.content), 0644); err != nil {
			t.Fatal(err)
		}
		if got := h.Load(); got != tc.want {
			t.Errorf("Load(%q) = %d, want %d", tc.content, got, tc.want)
		}
	}
}

func TestHighScoresSubmit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.dat")
	h := NewHighScores(path)

	if high, updated, err := h.Submit(30); err != nil || !updated || high != 30 {
		t.Errorf("Submit(30) = %d, %v, %v", high, updated, err)
	}

	// Another writer raised the file behind this store's back
	if err := (HighScoreFile{Path: path}).Save(80); err != nil {
		t.Fatal(err)
	}
	if high, updated, err := h.Submit(50); err != nil || updated || high != 80 {
		t.Errorf("Submit(50) = %d, %v, %v; want 80, false", high, updated, err)
	}
	if got := h.Best(); got != 80 {
		t.Errorf("Best = %d, want 80", got)
	}

	var wg sync.WaitGroup
	for score := 81; score <= 100; score++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			h.Submit(score)
		}(score)
	}
	wg.Wait()
	if got := h.Best(); got != 100 {
		t.Errorf("after concurrent submits Best = %d, want 100", got)
	}
}

func playedRound(t *testing.T, cfg game.RoundConfig) game.Snapshot {
	t.Helper()
	s, err := game.NewRound(cfg, []string{"ann", "bob"}, game.ColorPurple, game.NewRand(11))
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	env := game.Env{Rand: game.NewRand(12), Controllers: game.ControllersFor(&s)}
	for i := 0; i < 5; i++ {
		next, _, err := game.Advance(s, s.Interval(), env)
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if next.Over {
			break
		}
		s = next
	}
	s.Special = &game.SpecialFood{Pos: freeCell(s), SpawnedAt: s.Clock}
	return s
}

func freeCell(s game.Snapshot) game.Point {
	occupied := s.Occupied()
	for y := 1; y < s.Grid.Height-1; y++ {
		for x := 1; x < s.Grid.Width-1; x++ {
			if p := (game.Point{X: x, Y: y}); !occupied[p] {
				return p
			}
		}
	}
	return game.Point{}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	configs := []game.RoundConfig{
		{Difficulty: game.Easy},
		{Difficulty: game.Medium, Terrain: game.TerrainDark, Mode: game.SinglePlayerVsAI},
		{Difficulty: game.Hard, Terrain: game.TerrainWinter, Mode: game.TwoPlayerLocal},
	}
	for _, cfg := range configs {
		t.Run(cfg.Mode.String()+"_"+cfg.Terrain.String(), func(t *testing.T) {
			f := SaveFile{Path: filepath.Join(t.TempDir(), "snake_save.json")}
			s := playedRound(t, cfg)

			if err := f.Save(s); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := f.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, s) {
				t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, s)
			}
		})
	}
}

func TestSaveLoadSnakeOnIce(t *testing.T) {
	s, err := game.NewRound(game.RoundConfig{Terrain: game.TerrainWinter, Mode: game.TwoPlayerLocal}, nil, game.ColorGreen, game.NewRand(11))
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	if len(s.Ice) < 2 {
		t.Fatalf("winter round has %d ice cells", len(s.Ice))
	}
	s.Players[0].Snake = game.NewSnake(s.Ice[0], game.Right)
	s.Players[1].Snake = game.NewSnake(s.Ice[1], game.Left)

	f := SaveFile{Path: filepath.Join(t.TempDir(), "snake_save.json")}
	if err := f.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load of snakes standing on ice: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, s)
	}
}

func TestSaveRejectsPausedRound(t *testing.T) {
	f := SaveFile{Path: filepath.Join(t.TempDir(), "snake_save.json")}
	s := game.TogglePause(playedRound(t, game.RoundConfig{}))
	if err := f.Save(s); err == nil {
		t.Fatal("saving a paused round should fail")
	}
	if _, err := f.Load(); !errors.Is(err, ErrNoSave) {
		t.Errorf("rejected save left a file behind: %v", err)
	}
}

func TestLoadMissingSave(t *testing.T) {
	f := SaveFile{Path: filepath.Join(t.TempDir(), "none.json")}
	if _, err := f.Load(); !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave", err)
	}
	if err := f.Remove(); err != nil {
		t.Errorf("Remove of a missing save: %v", err)
	}
}

func TestLoadRejectsCorruptSaves(t *testing.T) {
	base := playedRound(t, game.RoundConfig{Difficulty: game.Medium, Terrain: game.TerrainWinter, Mode: game.SinglePlayerVsAI})

	tests := []struct {
		name   string
		mutate func(s *game.Snapshot)
	}{
		{"empty body", func(s *game.Snapshot) { s.Players[0].Snake.Body = nil }},
		{"diagonal direction", func(s *game.Snapshot) { s.Players[0].Snake.Dir = game.Direction{X: 1, Y: 1} }},
		{"speed too high", func(s *game.Snapshot) { s.Speed = 99 }},
		{"wrong grid", func(s *game.Snapshot) { s.Grid.Width = 10 }},
		{"missing player", func(s *game.Snapshot) { s.Players = s.Players[:1] }},
		{"wrong controller", func(s *game.Snapshot) { s.Players[1].Kind = game.KindHuman }},
		{"food on border", func(s *game.Snapshot) { s.Food = game.Point{X: 0, Y: 3} }},
		{"obstacle on snake", func(s *game.Snapshot) { s.Obstacles = append(s.Obstacles, s.Players[0].Snake.Head()) }},
		{"finished round", func(s *game.Snapshot) { s.Over = true }},
		{"paused round", func(s *game.Snapshot) { s.Paused = true }},
		{"ice off the board", func(s *game.Snapshot) { s.Ice = append(s.Ice, game.Point{X: 0, Y: 0}) }},
		{"clock behind last move", func(s *game.Snapshot) { s.LastMove = s.Clock + time.Second }},
		{"ice off winter", func(s *game.Snapshot) { s.Config.Terrain = game.TerrainNormal }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base.Clone()
			tc.mutate(&s)

			path := filepath.Join(t.TempDir(), "save.json")
			data, err := json.Marshal(saveRecord{Version: SaveVersion, State: s})
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatal(err)
			}

			_, err = SaveFile{Path: path}.Load()
			if !errors.Is(err, ErrCorruptSave) {
				t.Errorf("err = %v, want ErrCorruptSave", err)
			}
			t.Logf("%s: %v", tc.name, err)
		})
	}

	raw := map[string]string{
		"not json":        "{{{",
		"unknown version": `{"version": 7}`,
		"unknown terrain": `{"version": 1, "state": {"config": {"difficulty": "EASY", "terrain": "LAVA", "mode": "SINGLE"}}}`,
	}
	for name, content := range raw {
		path := filepath.Join(t.TempDir(), "save.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := (SaveFile{Path: path}).Load(); !errors.Is(err, ErrCorruptSave) {
			t.Errorf("%s: err = %v, want ErrCorruptSave", name, err)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	lb, err := OpenLeaderboard(filepath.Join(t.TempDir(), "data", "game.db"))
	if err != nil {
		t.Fatalf("OpenLeaderboard: %v", err)
	}
	defer lb.Close()

	if best, err := lb.Best(); err != nil || best != 0 {
		t.Errorf("empty Best = %d, %v", best, err)
	}

	start := time.Now().Add(-time.Minute)
	rounds := []RoundResult{
		{SessionID: "s1", Names: []string{"ann"}, Scores: []int{40}, Config: game.RoundConfig{Difficulty: game.Easy}},
		{SessionID: "s2", Names: []string{"ann", "bob"}, Scores: []int{70, 90}, Config: game.RoundConfig{Difficulty: game.Hard, Mode: game.TwoPlayerLocal}},
		{SessionID: "s3", Names: []string{"cy", "AI"}, Scores: []int{70, 10}, Config: game.RoundConfig{Mode: game.SinglePlayerVsAI, Terrain: game.TerrainDark}},
	}
	for _, r := range rounds {
		r.Start, r.End = start, time.Now()
		if err := lb.RecordRound(r); err != nil {
			t.Fatalf("RecordRound: %v", err)
		}
	}

	best, err := lb.Best()
	if err != nil || best != 90 {
		t.Errorf("Best = %d, %v; want 90", best, err)
	}
	top, err := lb.Top(3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []struct {
		name  string
		score int
	}{{"bob", 90}, {"ann", 70}, {"cy", 70}}
	if len(top) != len(want) {
		t.Fatalf("Top returned %d rows", len(top))
	}
	for i, w := range want {
		if top[i].Name != w.name || top[i].Score != w.score {
			t.Errorf("row %d = %s %d, want %s %d", i, top[i].Name, top[i].Score, w.name, w.score)
		}
	}
	if top[0].Difficulty != "HARD" || top[0].Mode != "TWO_PLAYER" {
		t.Errorf("row 0 labels = %s %s", top[0].Difficulty, top[0].Mode)
	}
	if top[2].Terrain != "DARK" {
		t.Errorf("row 2 terrain = %s", top[2].Terrain)
	}

	if n, err := lb.Sessions(); err != nil || n != 3 {
		t.Errorf("Sessions = %d, %v", n, err)
	}

	if ok, err := lb.HasEntry("bob", 90); err != nil || !ok {
		t.Errorf("HasEntry(bob, 90) = %v, %v", ok, err)
	}
	if ok, _ := lb.HasEntry("bob", 70); ok {
		t.Error("HasEntry(bob, 70) should be false")
	}
}

func TestRoundResultWinner(t *testing.T) {
	tests := []struct {
		names  []string
		scores []int
		want   string
	}{
		{[]string{"ann"}, []int{0}, "ann"},
		{[]string{"ann", "bob"}, []int{30, 50}, "bob"},
		{[]string{"ann", "bob"}, []int{30, 30}, "draw"},
	}
	for _, tc := range tests {
		r := RoundResult{Names: tc.names, Scores: tc.scores}
		if got := r.Winner(); got != tc.want {
			t.Errorf("Winner(%v) = %s, want %s", tc.scores, got, tc.want)
		}
	}

	s, err := game.NewRound(game.RoundConfig{Mode: game.SinglePlayerVsAI}, []string{"zed"}, game.ColorGreen, game.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	s.Players[1].Score = 20
	r := ResultFrom("id", s, time.Now(), time.Now())
	if r.Winner() != s.Players[1].Name || len(r.Names) != 2 {
		t.Errorf("ResultFrom = %+v", r)
	}
}
