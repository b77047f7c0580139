// Package sqlite keeps match snapshots in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/saeidalz13/battleship-twist/db"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store persists snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ db.SnapshotStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and creates the snapshot table.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) SaveSnapshot(ctx context.Context, saved db.SavedMatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	savedAt := saved.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO match_snapshots (slot, match_uuid, mode, round, data, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   match_uuid = excluded.match_uuid,
		   mode = excluded.mode,
		   round = excluded.round,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		saved.Slot,
		saved.MatchUuid,
		saved.Mode,
		saved.Round,
		saved.Data,
		toMillis(savedAt),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", saved.Slot, err)
	}
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, slot string) (db.SavedMatch, error) {
	if err := ctx.Err(); err != nil {
		return db.SavedMatch{}, err
	}

	var (
		saved   db.SavedMatch
		savedAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slot, match_uuid, mode, round, data, saved_at FROM match_snapshots WHERE slot = ?`,
		slot,
	).Scan(&saved.Slot, &saved.MatchUuid, &saved.Mode, &saved.Round, &saved.Data, &savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.SavedMatch{}, cerr.ErrSnapshotNotExists(slot)
		}
		return db.SavedMatch{}, fmt.Errorf("load snapshot %s: %w", slot, err)
	}
	saved.SavedAt = fromMillis(savedAt)
	return saved, nil
}
