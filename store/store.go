// Package store persists match records and the player profile in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/ringside/store/migrations"
)

var ErrNotConfigured = errors.New("store: not configured")

// Store is the record service and the durable key-value profile
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens the SQLite file at path and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ApplyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Submit stores a match score for a player
func (s *Store) Submit(ctx context.Context, mode string, score int, playerName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	mode = strings.TrimSpace(mode)
	playerName = strings.TrimSpace(playerName)
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if playerName == "" {
		return fmt.Errorf("player name is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO records (id, mode, player_name, score, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), mode, playerName, score, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Best returns a player's highest score in mode
func (s *Store) Best(ctx context.Context, mode, playerName string) (int, bool, error) {
	if s == nil || s.sqlDB == nil {
		return 0, false, ErrNotConfigured
	}
	var best sql.NullInt64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT MAX(score) FROM records WHERE mode = ? AND player_name = ?`,
		mode, playerName,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("query best: %w", err)
	}
	return int(best.Int64), best.Valid, nil
}

// Get reads a profile value; false when the key was never written
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, ErrNotConfigured
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a profile value
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO profile (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
