package battleship

import (
	"math/rand/v2"
	"testing"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newTestPlayer returns a player with empty boards and no ships.
func newTestPlayer(twist bool) *Player {
	return newBarePlayer(newTestRand(7), twist)
}

// addTestShip puts a ship on the player's board at the given cells.
func addTestShip(t *testing.T, p *Player, shipType ShipType, orientation Orientation, positions ...Coordinates) int {
	t.Helper()
	if len(positions) != shipType.Size() {
		t.Fatalf("expected %d positions for %s\tgot: %d", shipType.Size(), shipType, len(positions))
	}
	for _, pos := range positions {
		p.Board.ChangeCell(pos.X, pos.Y, CellOccupied)
	}
	p.Ships = append(p.Ships, NewShip(shipType, positions, orientation))
	p.UpdateShipCount()
	return len(p.Ships) - 1
}

func row(x, fromY, toY int) []Coordinates {
	positions := make([]Coordinates, 0, toY-fromY+1)
	for y := fromY; y <= toY; y++ {
		positions = append(positions, NewCoordinates(x, y))
	}
	return positions
}

func column(y, fromX, toX int) []Coordinates {
	positions := make([]Coordinates, 0, toX-fromX+1)
	for x := fromX; x <= toX; x++ {
		positions = append(positions, NewCoordinates(x, y))
	}
	return positions
}

// newTestMatch builds a match with deterministic random placement.
func newTestMatch(t *testing.T, mode Mode) *Match {
	t.Helper()
	m, err := NewMatch(mode, WithRand(newTestRand(42)), WithUuid("test01"))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// firstFreeCell returns a coordinate without a ship on the player's board.
func firstFreeCell(t *testing.T, p *Player) Coordinates {
	t.Helper()
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if p.Board.At(x, y) == CellEmpty {
				return NewCoordinates(x, y)
			}
		}
	}
	t.Fatal("board has no empty cell")
	return Coordinates{}
}
