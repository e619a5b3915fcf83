package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/storage"
)

// LegacyUser matches the structure of the old users.json
type LegacyUser struct {
	Username  string    `json:"username"`
	BestScore int       `json:"best_score"`
	CreatedAt time.Time `json:"created_at"`
}

// LegacyName is the leaderboard name given to the old single high score
const LegacyName = "legacy"

func main() {
	usersPath := flag.String("users", "", "optional users.json with per-player best scores")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if settings.DBPath == "" {
		log.Fatalf("%s is empty; there is no leaderboard to migrate into", config.EnvDB)
	}

	lb, err := storage.OpenLeaderboard(settings.DBPath)
	if err != nil {
		log.Fatal("Failed to open DB:", err)
	}
	defer lb.Close()

	var users []LegacyUser
	if *usersPath != "" {
		users, err = readUsers(*usersPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	count, err := migrate(lb, storage.HighScoreFile{Path: settings.HighScoreFile}, users)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✅ Migration complete! Successfully imported %d scores into %s\n", count, settings.DBPath)

	top, err := lb.Top(5)
	if err != nil {
		log.Fatal(err)
	}
	for i, e := range top {
		fmt.Printf("  %d. %-12s %5d  %s\n", i+1, e.Name, e.Score, e.Date.Format("2006-01-02"))
	}
}

// readUsers parses users.json as a map keyed by name or as a plain array
func readUsers(path string) ([]LegacyUser, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var byName map[string]LegacyUser
	// Try parsing as map first (common structure)
	if err := json.Unmarshal(fileContent, &byName); err != nil {
		// If map failed, try array
		var userList []LegacyUser
		if err2 := json.Unmarshal(fileContent, &userList); err2 != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return userList, nil
	}

	users := make([]LegacyUser, 0, len(byName))
	for name, u := range byName {
		if u.Username == "" {
			u.Username = name
		}
		users = append(users, u)
	}
	return users, nil
}

// migrate copies the legacy high score and user best scores into the
// leaderboard, skipping zero scores and rows already present
func migrate(lb *storage.Leaderboard, highScore storage.HighScoreFile, users []LegacyUser) (int, error) {
	entries := make([]storage.Entry, 0, len(users)+1)
	if score := highScore.Load(); score > 0 {
		date := time.Now()
		if info, err := os.Stat(highScore.Path); err == nil {
			date = info.ModTime()
		}
		entries = append(entries, storage.Entry{Name: LegacyName, Score: score, Date: date})
	}
	for _, u := range users {
		if u.Username == "" || u.BestScore <= 0 {
			continue
		}
		date := u.CreatedAt
		if date.IsZero() {
			date = time.Now()
		}
		entries = append(entries, storage.Entry{Name: u.Username, Score: u.BestScore, Date: date})
	}

	log.Printf("Found %d scores to migrate...", len(entries))
	count := 0
	for _, e := range entries {
		exists, err := lb.HasEntry(e.Name, e.Score)
		if err != nil {
			return count, err
		}
		if exists {
			continue
		}
		if err := lb.AddEntry(e); err != nil {
			log.Printf("Error migrating %s: %v\n", e.Name, err)
			continue
		}
		count++
	}
	return count, nil
}
