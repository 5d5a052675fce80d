// Package store persists best scores. Each slot holds a single scalar.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is a sqlite-backed high-score table
type DB struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and
// ensures the schema exists.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			slot TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close releases the database handle
func (d *DB) Close() error {
	return d.db.Close()
}

// Slot returns the high-score store for one name, e.g. a room id
func (d *DB) Slot(name string) *Slot {
	return &Slot{db: d.db, name: name}
}

// Slots lists every stored slot with its score
func (d *DB) Slots() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT slot, score FROM high_scores`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var score int
		if err := rows.Scan(&name, &score); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out[name] = score
	}
	return out, rows.Err()
}

// Slot is one named best score. It satisfies game.HighScoreStore.
type Slot struct {
	db   *sql.DB
	name string
}

// LoadHighScore returns the stored score, 0 when none was saved yet
func (s *Slot) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_scores WHERE slot = ?`, s.name).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score %q: %w", s.name, err)
	}
	return score, nil
}

// SaveHighScore stores score unless a higher one is already recorded
func (s *Slot) SaveHighScore(score int) error {
	_, err := s.db.Exec(`INSERT INTO high_scores (slot, score, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		WHERE excluded.score > high_scores.score`, s.name, score)
	if err != nil {
		return fmt.Errorf("save high score %q: %w", s.name, err)
	}
	return nil
}
