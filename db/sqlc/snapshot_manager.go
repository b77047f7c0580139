package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saeidalz13/battleship-twist/db"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
	"github.com/sqlc-dev/pqtype"
)

type snapshotSummary struct {
	Mode  string `json:"mode"`
	Round int    `json:"round"`
}

// SnapshotManager is the postgres db.SnapshotStore. The blob is stored
// as is; mode and round go to a JSONB summary column.
type SnapshotManager struct {
	queries Querier
}

var _ db.SnapshotStore = (*SnapshotManager)(nil)

func NewSnapshotManager(queries Querier) *SnapshotManager {
	return &SnapshotManager{queries: queries}
}

func (s *SnapshotManager) SaveSnapshot(ctx context.Context, saved db.SavedMatch) error {
	summary, err := json.Marshal(snapshotSummary{Mode: saved.Mode, Round: saved.Round})
	if err != nil {
		return err
	}

	err = s.queries.UpsertMatchSnapshot(ctx, UpsertMatchSnapshotParams{
		Slot:      saved.Slot,
		MatchUuid: saved.MatchUuid,
		Data:      saved.Data,
		Summary:   pqtype.NullRawMessage{RawMessage: summary, Valid: true},
		SavedAt:   saved.SavedAt,
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", saved.Slot, err)
	}
	return nil
}

func (s *SnapshotManager) LoadSnapshot(ctx context.Context, slot string) (db.SavedMatch, error) {
	row, err := s.queries.GetMatchSnapshot(ctx, slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.SavedMatch{}, cerr.ErrSnapshotNotExists(slot)
		}
		return db.SavedMatch{}, fmt.Errorf("load snapshot %s: %w", slot, err)
	}

	saved := db.SavedMatch{
		Slot:      row.Slot,
		MatchUuid: row.MatchUuid,
		Data:      row.Data,
		SavedAt:   row.SavedAt,
	}
	if row.Summary.Valid {
		var summary snapshotSummary
		if err := json.Unmarshal(row.Summary.RawMessage, &summary); err != nil {
			return db.SavedMatch{}, fmt.Errorf("load snapshot %s summary: %w", slot, err)
		}
		saved.Mode = summary.Mode
		saved.Round = summary.Round
	}
	return saved, nil
}
