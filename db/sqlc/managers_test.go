package sqlc

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saeidalz13/battleship-twist/db"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
	"github.com/sqlc-dev/pqtype"
)

func newTestDbManager(t *testing.T) (DbManager, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewDbManager(New(conn)), mock
}

func testInet() pqtype.Inet {
	return pqtype.Inet{
		IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7"), Mask: net.CIDRMask(32, 32)},
		Valid: true,
	}
}

func TestAnalyticsManager(t *testing.T) {
	dm, mock := newTestDbManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO game_server_analytics (server_ip, matches_created)`)).
		WithArgs(testInet()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO game_server_analytics (server_ip, matches_saved)`)).
		WithArgs(testInet()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT matches_created FROM game_server_analytics WHERE server_ip = $1`)).
		WithArgs(testInet()).
		WillReturnRows(sqlmock.NewRows([]string{"matches_created"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT matches_saved FROM game_server_analytics WHERE server_ip = $1`)).
		WithArgs(testInet()).
		WillReturnRows(sqlmock.NewRows([]string{"matches_saved"}).AddRow(1))

	if err := dm.Analytics.IncrementMatchesCreatedCount(ctx, testInet()); err != nil {
		t.Fatal(err)
	}
	if err := dm.Analytics.IncrementMatchesSavedCount(ctx, testInet()); err != nil {
		t.Fatal(err)
	}

	created, err := dm.Analytics.GetMatchesCreatedCount(ctx, testInet())
	if err != nil {
		t.Fatal(err)
	}
	if created != 3 {
		t.Fatalf("expected number of created matches: %d\tgot: %d", 3, created)
	}
	saved, err := dm.Analytics.GetMatchesSavedCount(ctx, testInet())
	if err != nil {
		t.Fatal(err)
	}
	if saved != 1 {
		t.Fatalf("expected number of saved matches: %d\tgot: %d", 1, saved)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestSnapshotManagerSave(t *testing.T) {
	dm, mock := newTestDbManager(t)
	savedAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO match_snapshots (slot, match_uuid, data, summary, saved_at)`)).
		WithArgs("slot1", "abc123", []byte{0xa1, 0x01}, []byte(`{"mode":"twist","round":4}`), savedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := dm.Snapshots.SaveSnapshot(context.Background(), db.SavedMatch{
		Slot:      "slot1",
		MatchUuid: "abc123",
		Mode:      "twist",
		Round:     4,
		Data:      []byte{0xa1, 0x01},
		SavedAt:   savedAt,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestSnapshotManagerLoad(t *testing.T) {
	tests := []struct {
		name        string
		rows        *sqlmock.Rows
		expectedErr error
		expected    db.SavedMatch
	}{
		{
			name: "existing slot",
			rows: sqlmock.NewRows([]string{"slot", "match_uuid", "data", "summary", "saved_at"}).
				AddRow("slot1", "abc123", []byte{0xa1, 0x01}, []byte(`{"mode":"classic","round":2}`), time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)),
			expectedErr: nil,
			expected: db.SavedMatch{
				Slot:      "slot1",
				MatchUuid: "abc123",
				Mode:      "classic",
				Round:     2,
				Data:      []byte{0xa1, 0x01},
				SavedAt:   time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name:        "empty slot",
			rows:        sqlmock.NewRows([]string{"slot", "match_uuid", "data", "summary", "saved_at"}),
			expectedErr: cerr.ErrSnapshotNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dm, mock := newTestDbManager(t)
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot, match_uuid, data, summary, saved_at FROM match_snapshots WHERE slot = $1`)).
				WithArgs("slot1").
				WillReturnRows(test.rows)

			saved, err := dm.Snapshots.LoadSnapshot(context.Background(), "slot1")
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
			}
			if test.expectedErr == nil {
				if saved.Slot != test.expected.Slot || saved.MatchUuid != test.expected.MatchUuid ||
					saved.Mode != test.expected.Mode || saved.Round != test.expected.Round ||
					string(saved.Data) != string(test.expected.Data) || !saved.SavedAt.Equal(test.expected.SavedAt) {
					t.Fatalf("expected saved match: %+v\tgot: %+v", test.expected, saved)
				}
			}

			if err = mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}
