// recorder persists episode histories to SQLite so runs can be inspected or
// replotted after the process exits. One writer (the simulation loop) and
// occasional readers (http handlers, offline analysis) is the expected load,
// so a single connection behind a mutex is plenty.
package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"neuroarena/arena"
)

type Recorder struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the episode store at path, applying pragmas and
// schema idempotently.
func Open(path string) (*Recorder, error) {
	if path == "" {
		return nil, fmt.Errorf("recorder: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Recorder{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-only episode workload.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			episode INTEGER PRIMARY KEY,
			steps INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS transitions (
			episode INTEGER NOT NULL,
			step INTEGER NOT NULL,
			action_x REAL NOT NULL,
			action_y REAL NOT NULL,
			pos_x REAL NOT NULL,
			pos_y REAL NOT NULL,
			next_pos_x REAL NOT NULL,
			next_pos_y REAL NOT NULL,
			state_idx INTEGER NOT NULL,
			next_state_idx INTEGER NOT NULL,
			reward REAL NOT NULL,
			crossed_wall INTEGER NOT NULL,
			PRIMARY KEY (episode, step)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_episode ON transitions(episode);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordEpisode stores one episode's history transactionally. Re-recording
// an episode number replaces the previous recording, so restarted runs with
// the same store do not accumulate stale rows.
func (r *Recorder) RecordEpisode(episode int, history []arena.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM transitions WHERE episode = ?`, episode); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO episodes (episode, steps, recorded_at) VALUES (?, ?, ?)`,
		episode, len(history), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO transitions
		(episode, step, action_x, action_y, pos_x, pos_y, next_pos_x, next_pos_y,
		 state_idx, next_state_idx, reward, crossed_wall)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, tr := range history {
		crossed := 0
		if tr.CrossedWall {
			crossed = 1
		}
		if _, err := stmt.Exec(
			episode, tr.Step,
			tr.Action.X, tr.Action.Y,
			tr.State.Position.X, tr.State.Position.Y,
			tr.NextState.Position.X, tr.NextState.Position.Y,
			tr.State.Index, tr.NextState.Index,
			tr.Reward, crossed,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// EpisodeCount returns the number of recorded episodes.
func (r *Recorder) EpisodeCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM episodes`).Scan(&n)
	return n, err
}

// Episode reads back one recorded episode in step order. Object vectors are
// not persisted, so the returned transitions carry positions, indices,
// rewards and wall contacts only.
func (r *Recorder) Episode(episode int) ([]arena.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		step, action_x, action_y, pos_x, pos_y, next_pos_x, next_pos_y,
		state_idx, next_state_idx, reward, crossed_wall
		FROM transitions WHERE episode = ? ORDER BY step`, episode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []arena.Transition
	for rows.Next() {
		var tr arena.Transition
		var crossed int
		if err := rows.Scan(
			&tr.Step,
			&tr.Action.X, &tr.Action.Y,
			&tr.State.Position.X, &tr.State.Position.Y,
			&tr.NextState.Position.X, &tr.NextState.Position.Y,
			&tr.State.Index, &tr.NextState.Index,
			&tr.Reward, &crossed,
		); err != nil {
			return nil, err
		}
		tr.CrossedWall = crossed != 0
		history = append(history, tr)
	}
	return history, rows.Err()
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}
