package db

import (
	"context"
	"regexp"
	"time"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

// DefaultSlot is the save used when the client names none. The file
// store writes it to savegame.bin.
const DefaultSlot = "savegame"

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// SavedMatch is an encoded match snapshot plus the fields a listing
// would show without decoding it.
type SavedMatch struct {
	Slot      string
	MatchUuid string
	Mode      string
	Round     int
	Data      []byte
	SavedAt   time.Time
}

// SnapshotStore persists one snapshot per slot. Saving to a used slot
// overwrites it. Loading an empty slot returns cerr.ErrSnapshotNotFound.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, saved SavedMatch) error
	LoadSnapshot(ctx context.Context, slot string) (SavedMatch, error)
}

// NormalizeSlot maps an empty slot to DefaultSlot and rejects names that
// are not safe as file names.
func NormalizeSlot(slot string) (string, error) {
	if slot == "" {
		return DefaultSlot, nil
	}
	if !slotPattern.MatchString(slot) {
		return "", cerr.ErrInvalidSlot(slot)
	}
	return slot, nil
}
