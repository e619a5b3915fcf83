package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/trytobebee/snake_arcade/pkg/game"
)

// Leaderboard keeps finished rounds in a sqlite database
type Leaderboard struct {
	db *sql.DB
}

// Entry is one leaderboard row
type Entry struct {
	Name       string
	Score      int
	Difficulty string
	Mode       string
	Terrain    string
	Date       time.Time
}

// RoundResult summarises a finished round
type RoundResult struct {
	SessionID string
	Names     []string
	Scores    []int
	Config    game.RoundConfig
	Start     time.Time
	End       time.Time
}

// ResultFrom builds the result of a finished snapshot
func ResultFrom(sessionID string, s game.Snapshot, start, end time.Time) RoundResult {
	r := RoundResult{
		SessionID: sessionID,
		Config:    s.Config,
		Start:     start,
		End:       end,
	}
	for _, p := range s.Players {
		r.Names = append(r.Names, p.Name)
		r.Scores = append(r.Scores, p.Score)
	}
	return r
}

// Winner returns the name of the top scorer, "draw" on a tie between
// several players, or the only player's name
func (r RoundResult) Winner() string {
	best, winner, tie := -1, "", false
	for i, score := range r.Scores {
		switch {
		case score > best:
			best, winner, tie = score, r.Names[i], false
		case score == best:
			tie = true
		}
	}
	if tie {
		return "draw"
	}
	return winner
}

// OpenLeaderboard opens (and creates if needed) the database at path
func OpenLeaderboard(path string) (*Leaderboard, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	lb := &Leaderboard{db: db}
	if err := lb.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return lb, nil
}

func (lb *Leaderboard) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			score INTEGER,
			difficulty TEXT,
			mode TEXT,
			terrain TEXT,
			date DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_sessions (
			id TEXT PRIMARY KEY,
			session TEXT,
			start_time DATETIME,
			end_time DATETIME,
			score INTEGER,
			winner TEXT,
			mode TEXT,
			difficulty TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := lb.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// RecordRound stores one leaderboard row per player and one session row
func (lb *Leaderboard) RecordRound(r RoundResult) error {
	tx, err := lb.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	best := 0
	for i, name := range r.Names {
		score := r.Scores[i]
		if score > best {
			best = score
		}
		_, err := tx.Exec(
			`INSERT INTO leaderboard (name, score, difficulty, mode, terrain, date) VALUES (?, ?, ?, ?, ?, ?)`,
			name, score, r.Config.Difficulty.String(), r.Config.Mode.String(), r.Config.Terrain.String(), r.End.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert score for %s: %w", name, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO game_sessions (id, session, start_time, end_time, score, winner, mode, difficulty) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), r.SessionID, r.Start.UTC(), r.End.UTC(), best, r.Winner(), r.Config.Mode.String(), r.Config.Difficulty.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return tx.Commit()
}

// AddEntry inserts a single leaderboard row
func (lb *Leaderboard) AddEntry(e Entry) error {
	_, err := lb.db.Exec(
		`INSERT INTO leaderboard (name, score, difficulty, mode, terrain, date) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Name, e.Score, e.Difficulty, e.Mode, e.Terrain, e.Date.UTC(),
	)
	return err
}

// HasEntry reports whether a row with this name and score exists
func (lb *Leaderboard) HasEntry(name string, score int) (bool, error) {
	var n int
	err := lb.db.QueryRow(`SELECT COUNT(*) FROM leaderboard WHERE name = ? AND score = ?`, name, score).Scan(&n)
	return n > 0, err
}

// Top returns the n best rows, oldest first among equal scores
func (lb *Leaderboard) Top(n int) ([]Entry, error) {
	rows, err := lb.db.Query(
		`SELECT name, score, difficulty, mode, terrain, date FROM leaderboard ORDER BY score DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var terrain sql.NullString
		if err := rows.Scan(&e.Name, &e.Score, &e.Difficulty, &e.Mode, &terrain, &e.Date); err != nil {
			return nil, err
		}
		e.Terrain = terrain.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Best returns the highest recorded score, 0 when empty
func (lb *Leaderboard) Best() (int, error) {
	var best sql.NullInt64
	if err := lb.db.QueryRow(`SELECT MAX(score) FROM leaderboard`).Scan(&best); err != nil {
		return 0, err
	}
	return int(best.Int64), nil
}

// Sessions returns how many rounds were recorded
func (lb *Leaderboard) Sessions() (int, error) {
	var n int
	err := lb.db.QueryRow(`SELECT COUNT(*) FROM game_sessions`).Scan(&n)
	return n, err
}

// Close releases the database
func (lb *Leaderboard) Close() error {
	return lb.db.Close()
}
