// Package store handles SQLite persistence for a play session.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/session"

	_ "modernc.org/sqlite" // SQLite driver.
)

// InMemory opens a database that lives as long as the Store.
const InMemory = ":memory:"

// Version is bumped when the stored value layout changes.
const Version = 1

const keyPrefix = "senobi"

// Store wraps SQLite access for session data. It implements session.Gateway
// and session.Journal.
type Store struct {
	db        *sql.DB
	sessionID string
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, sessionID: uuid.NewString()}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionID identifies the rows written through this Store.
func (s *Store) SessionID() string {
	return s.sessionID
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			won INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_game ON results(game_id, played_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Key returns the namespaced, versioned form of key.
func Key(key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, Version, key)
}

// Load implements session.Gateway.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, Key(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return []byte(value), nil
}

// Save implements session.Gateway.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Key(key), string(value), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Remove implements session.Gateway.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, Key(key)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// AppendResult implements session.Journal.
func (s *Store) AppendResult(ctx context.Context, r model.GameResult) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, game_id, difficulty, score, accuracy, time_ms, attempts, won, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.sessionID,
		r.GameID,
		string(r.Difficulty),
		r.Score,
		r.Accuracy,
		r.TimeMs,
		r.Attempts,
		won,
		r.PlayedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append result: %w", err)
	}
	return nil
}

// ClearResults implements session.Journal.
func (s *Store) ClearResults(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE session_id = ?`, s.sessionID); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	return nil
}

// ListResults returns the last results of this session, oldest first. An
// empty gameID selects every game; last <= 0 selects every result.
func (s *Store) ListResults(ctx context.Context, gameID string, last int) ([]model.GameResult, error) {
	if last <= 0 {
		last = -1
	}
	query := `SELECT game_id, difficulty, score, accuracy, time_ms, attempts, won, played_at FROM (
		SELECT id, game_id, difficulty, score, accuracy, time_ms, attempts, won, played_at
		FROM results
		WHERE session_id = ? AND (? = '' OR game_id = ?)
		ORDER BY id DESC
		LIMIT ?
	) ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query, s.sessionID, gameID, gameID, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.GameResult
	for rows.Next() {
		var r model.GameResult
		var difficulty, playedAt string
		var won int
		if err := rows.Scan(&r.GameID, &difficulty, &r.Score, &r.Accuracy, &r.TimeMs, &r.Attempts, &won, &playedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, playedAt)
		if err != nil {
			return nil, err
		}
		r.Difficulty = model.Difficulty(difficulty)
		r.Won = won == 1
		r.PlayedAt = parsed
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
