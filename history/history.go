// Package history stores self-play runs in SQLite.
//
//   - Open creates the database file with WAL journaling, a busy timeout and foreign keys.
//   - Migrations are the embedded sql/*.sql files, applied once each in lexical order and
//     recorded in _migrations.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/powellquiring/wordleguess/selfplay"
	"github.com/powellquiring/wordleguess/word"
)

//go:embed sql/*.sql
var migrations embed.FS

type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens, creating if missing, the database at path and applies the migrations
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}
		text, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		s.log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Run describes one stats run.  Games and Won are filled in by SaveRun.
type Run struct {
	ID        int64
	StartedAt time.Time
	Strategy  string
	HardMode  bool
	Initial   []string
	Games     int
	Won       int
}

// Game is a stored self-play record
type Game struct {
	Secret   string
	Success  bool
	Turns    int
	Guesses  []string
	Feedback []string
	Error    string
}

func feedbackSymbols(f []word.WordFeedback) string {
	s := make([]string, len(f))
	for i, x := range f {
		s[i] = x.Symbols()
	}
	return strings.Join(s, " ")
}

func fields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

// SaveRun stores the run and all of its games in one transaction and returns the run id
func (s *Store) SaveRun(ctx context.Context, run Run, records []selfplay.Record) (int64, error) {
	won := 0
	for _, r := range records {
		if r.Success {
			won++
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO runs (started_at, strategy, hard_mode, initial, games, won)
        VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(), run.Strategy, run.HardMode, strings.Join(run.Initial, " "), len(records), won,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO games (run_id, seq, secret, success, turns, guesses, feedback, error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, r := range records {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx, id, i, r.Secret.String(), r.Success, r.Turns(),
			strings.Join(word.Strings(r.Guesses), " "), feedbackSymbols(r.Feedback), errText); err != nil {
			return 0, fmt.Errorf("insert game %s: %w", r.Secret, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.log.Debug().Int64("run", id).Int("games", len(records)).Int("won", won).Msg("saved run")
	return id, nil
}

// Runs lists every run, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, strategy, hard_mode, initial, games, won
        FROM runs
        ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var initial string
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Strategy, &r.HardMode, &initial, &r.Games, &r.Won); err != nil {
			return nil, err
		}
		r.Initial = fields(initial)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Games are the games of a run in the order they were played
func (s *Store) Games(ctx context.Context, runID int64) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT secret, success, turns, guesses, feedback, error
        FROM games
        WHERE run_id=?
        ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var g Game
		var guesses, feedback string
		if err := rows.Scan(&g.Secret, &g.Success, &g.Turns, &guesses, &feedback, &g.Error); err != nil {
			return nil, err
		}
		g.Guesses = fields(guesses)
		g.Feedback = fields(feedback)
		out = append(out, g)
	}
	return out, rows.Err()
}
