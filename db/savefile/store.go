// Package savefile keeps one snapshot per slot as <slot>.bin in a directory.
package savefile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/saeidalz13/battleship-twist/db"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

const fileExt = ".bin"

type record struct {
	MatchUuid string `cbor:"match_uuid"`
	Mode      string `cbor:"mode"`
	Round     int    `cbor:"round"`
	SavedAt   int64  `cbor:"saved_at"`
	Data      []byte `cbor:"data"`
}

type Store struct {
	dir string
}

var _ db.SnapshotStore = (*Store)(nil)

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+fileExt)
}

// SaveSnapshot writes to a temp file and renames it over the slot file.
func (s *Store) SaveSnapshot(ctx context.Context, saved db.SavedMatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	savedAt := saved.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	data, err := cbor.Marshal(record{
		MatchUuid: saved.MatchUuid,
		Mode:      saved.Mode,
		Round:     saved.Round,
		SavedAt:   savedAt.UTC().UnixMilli(),
		Data:      saved.Data,
	})
	if err != nil {
		return fmt.Errorf("encode save %s: %w", saved.Slot, err)
	}

	tmp, err := os.CreateTemp(s.dir, saved.Slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", saved.Slot, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", saved.Slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", saved.Slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(saved.Slot)); err != nil {
		return fmt.Errorf("save %s: %w", saved.Slot, err)
	}
	return nil
}

func (s *Store) LoadSnapshot(ctx context.Context, slot string) (db.SavedMatch, error) {
	if err := ctx.Err(); err != nil {
		return db.SavedMatch{}, err
	}

	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return db.SavedMatch{}, cerr.ErrSnapshotNotExists(slot)
		}
		return db.SavedMatch{}, fmt.Errorf("load %s: %w", slot, err)
	}

	var rec record
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return db.SavedMatch{}, fmt.Errorf("%w: %s: %v", cerr.ErrInvalidSnapshot, slot, err)
	}
	return db.SavedMatch{
		Slot:      slot,
		MatchUuid: rec.MatchUuid,
		Mode:      rec.Mode,
		Round:     rec.Round,
		Data:      rec.Data,
		SavedAt:   time.UnixMilli(rec.SavedAt).UTC(),
	}, nil
}
