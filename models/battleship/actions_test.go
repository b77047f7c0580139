package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

func TestFireMissile(t *testing.T) {
	tests := []struct {
		name          string
		current       Cell
		expectedCell  Cell
		expectedGuess Cell
		expectedHit   bool
	}{
		{name: "empty water", current: CellEmpty, expectedCell: CellMiss, expectedGuess: CellMiss, expectedHit: false},
		{name: "repeat miss", current: CellMiss, expectedCell: CellMiss, expectedGuess: CellMiss, expectedHit: false},
		{name: "occupied", current: CellOccupied, expectedCell: CellHit, expectedGuess: CellHit, expectedHit: true},
		{name: "reinforced", current: CellReinforced, expectedCell: CellOccupied, expectedGuess: CellOccupied, expectedHit: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			attacker := newTestPlayer(false)
			defender := newTestPlayer(false)
			defender.Board.Cells[5][5] = test.current

			outcome := attacker.FireMissile(defender, 5, 5)

			if outcome.Hit != test.expectedHit {
				t.Fatalf("expected hit: %v\tgot: %v", test.expectedHit, outcome.Hit)
			}
			if got := defender.Board.At(5, 5); got != test.expectedCell {
				t.Fatalf("expected cell: %s\tgot: %s", test.expectedCell, got)
			}
			if got := attacker.GuessBoard.At(5, 5); got != test.expectedGuess {
				t.Fatalf("expected guess cell: %s\tgot: %s", test.expectedGuess, got)
			}
		})
	}
}

func TestMissileOnReinforcedCellTwice(t *testing.T) {
	attacker := newTestPlayer(true)
	defender := newTestPlayer(true)
	addTestShip(t, defender, ShipDestroyer, OrientationHorizontal, row(4, 4, 5)...)
	if err := defender.Reinforce(4, 4); err != nil {
		t.Fatal(err)
	}

	first := attacker.FireMissile(defender, 4, 4)
	if !first.ProtectionRemoved || defender.Board.At(4, 4) != CellOccupied {
		t.Fatalf("expected protection removed and cell %s\tgot: %s", CellOccupied, defender.Board.At(4, 4))
	}

	second := attacker.FireMissile(defender, 4, 4)
	if second.ProtectionRemoved || defender.Board.At(4, 4) != CellHit {
		t.Fatalf("expected cell %s after second missile\tgot: %s", CellHit, defender.Board.At(4, 4))
	}
	if defender.ShipCount != 1 {
		t.Fatalf("expected ship count: %d\tgot: %d", 1, defender.ShipCount)
	}
}

func TestFireTorpedo(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		attacker := newTestPlayer(true)
		defender := newTestPlayer(true)

		outcome := attacker.FireTorpedo(defender, 2)

		if outcome.Hit || outcome.Blocked {
			t.Fatalf("expected a miss\tgot: %+v", outcome)
		}
		for x := 0; x < GridSize; x++ {
			if defender.Board.At(x, 2) != CellMiss || attacker.GuessBoard.At(x, 2) != CellMiss {
				t.Fatalf("expected miss at row %d\tgot: %s / %s", x, defender.Board.At(x, 2), attacker.GuessBoard.At(x, 2))
			}
		}
		if got := defender.Board.Count(CellMiss); got != GridSize {
			t.Fatalf("expected %d misses\tgot: %d", GridSize, got)
		}
	})

	t.Run("ship in the middle", func(t *testing.T) {
		attacker := newTestPlayer(true)
		defender := newTestPlayer(true)
		addTestShip(t, defender, ShipDestroyer, OrientationHorizontal, row(3, 2, 3)...)

		outcome := attacker.FireTorpedo(defender, 2)

		if !outcome.Hit || outcome.At != NewCoordinates(3, 2) {
			t.Fatalf("expected hit at (3, 2)\tgot: %+v", outcome)
		}
		for x := GridSize - 1; x > 3; x-- {
			if defender.Board.At(x, 2) != CellMiss {
				t.Fatalf("expected miss at row %d\tgot: %s", x, defender.Board.At(x, 2))
			}
		}
		if defender.Board.At(3, 2) != CellHit {
			t.Fatalf("expected hit at row 3\tgot: %s", defender.Board.At(3, 2))
		}
		for x := 0; x < 3; x++ {
			if defender.Board.At(x, 2) != CellEmpty || attacker.GuessBoard.At(x, 2) != CellEmpty {
				t.Fatalf("expected row %d untouched\tgot: %s", x, defender.Board.At(x, 2))
			}
		}
	})

	t.Run("reinforced cell absorbs the torpedo", func(t *testing.T) {
		attacker := newTestPlayer(true)
		defender := newTestPlayer(true)
		addTestShip(t, defender, ShipDestroyer, OrientationVertical, column(6, 6, 7)...)
		if err := defender.Reinforce(7, 6); err != nil {
			t.Fatal(err)
		}

		outcome := attacker.FireTorpedo(defender, 6)

		if !outcome.ProtectionRemoved || outcome.At != NewCoordinates(7, 6) {
			t.Fatalf("expected protection removed at (7, 6)\tgot: %+v", outcome)
		}
		if defender.Board.At(7, 6) != CellOccupied || defender.Board.At(6, 6) != CellOccupied {
			t.Fatalf("expected ship cells occupied\tgot: %s / %s", defender.Board.At(7, 6), defender.Board.At(6, 6))
		}
	})

	t.Run("blocked by a hit cell", func(t *testing.T) {
		attacker := newTestPlayer(true)
		defender := newTestPlayer(true)
		addTestShip(t, defender, ShipCruiser, OrientationVertical, column(0, 5, 7)...)
		attacker.FireMissile(defender, 7, 0)

		outcome := attacker.FireTorpedo(defender, 0)

		if !outcome.Blocked || outcome.Hit {
			t.Fatalf("expected torpedo to be blocked\tgot: %+v", outcome)
		}
		if defender.Board.At(6, 0) != CellOccupied {
			t.Fatalf("expected cell behind the hit untouched\tgot: %s", defender.Board.At(6, 0))
		}
	})
}

func TestRadarScan(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{name: "interior", x: 5, y: 5, expected: 5},
		{name: "edge", x: 0, y: 5, expected: 4},
		{name: "top left corner", x: 0, y: 0, expected: 3},
		{name: "bottom right corner", x: 9, y: 9, expected: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			attacker := newTestPlayer(true)
			defender := newTestPlayer(true)

			revealed := attacker.RadarScan(defender, test.x, test.y)
			if len(revealed) != test.expected {
				t.Fatalf("expected revealed cells: %d\tgot: %d", test.expected, len(revealed))
			}
		})
	}
}

func TestRadarScanCopiesTrueCells(t *testing.T) {
	attacker := newTestPlayer(true)
	defender := newTestPlayer(true)
	addTestShip(t, defender, ShipDestroyer, OrientationHorizontal, row(5, 5, 6)...)
	if err := defender.Reinforce(5, 6); err != nil {
		t.Fatal(err)
	}
	defender.Board.ChangeCell(4, 5, CellMiss)

	attacker.RadarScan(defender, 5, 5)

	expected := map[Coordinates]Cell{
		NewCoordinates(5, 5): CellOccupied,
		NewCoordinates(5, 6): CellReinforced,
		NewCoordinates(5, 4): CellEmpty,
		NewCoordinates(4, 5): CellMiss,
		NewCoordinates(6, 5): CellEmpty,
	}
	for pos, cell := range expected {
		if got := attacker.GuessBoard.At(pos.X, pos.Y); got != cell {
			t.Fatalf("expected guess cell at %v: %s\tgot: %s", pos, cell, got)
		}
	}
	if defender.Board.At(5, 5) != CellOccupied {
		t.Fatalf("expected defender board untouched\tgot: %s", defender.Board.At(5, 5))
	}
}

func TestReinforce(t *testing.T) {
	tests := []struct {
		name        string
		current     Cell
		expectedErr error
		expected    Cell
	}{
		{name: "occupied", current: CellOccupied, expectedErr: nil, expected: CellReinforced},
		{name: "already reinforced", current: CellReinforced, expectedErr: cerr.ErrCellAlreadyReinforced, expected: CellReinforced},
		{name: "empty", current: CellEmpty, expectedErr: cerr.ErrCellNotOccupied, expected: CellEmpty},
		{name: "hit", current: CellHit, expectedErr: cerr.ErrCellNotOccupied, expected: CellHit},
		{name: "miss", current: CellMiss, expectedErr: cerr.ErrCellNotOccupied, expected: CellMiss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newTestPlayer(true)
			p.Board.Cells[1][1] = test.current

			err := p.Reinforce(1, 1)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
			}
			if got := p.Board.At(1, 1); got != test.expected {
				t.Fatalf("expected cell: %s\tgot: %s", test.expected, got)
			}
		})
	}
}
