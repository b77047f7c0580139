package battleship

import cerr "github.com/saeidalz13/battleship-twist/internal/error"

// Outcome is what a missile or torpedo did, for the caller to display.
// Hit includes a reinforced cell losing its protection. Blocked is set
// when a torpedo stopped on an already hit cell.
type Outcome struct {
	At                Coordinates `json:"at"`
	Hit               bool        `json:"hit"`
	ProtectionRemoved bool        `json:"protection_removed"`
	Blocked           bool        `json:"blocked"`
	ShipDestroyed     bool        `json:"ship_destroyed"`
	ShipType          ShipType    `json:"ship_type"`
}

// FireMissile resolves a missile at (x, y) on the opponent's board.
func (p *Player) FireMissile(opponent *Player, x, y int) Outcome {
	outcome := Outcome{At: NewCoordinates(x, y)}

	switch opponent.Board.At(x, y) {
	case CellReinforced:
		opponent.Board.ChangeCell(x, y, CellOccupied)
		p.GuessBoard.ChangeCell(x, y, CellOccupied)
		outcome.Hit = true
		outcome.ProtectionRemoved = true

	case CellOccupied:
		opponent.Board.ChangeCell(x, y, CellHit)
		p.GuessBoard.ChangeCell(x, y, CellHit)
		outcome.Hit = true
		outcome.ShipType, outcome.ShipDestroyed = opponent.registerHit(x, y)

	default:
		// Hit cells stay hit; ChangeCell ignores the write.
		opponent.Board.ChangeCell(x, y, CellMiss)
		p.GuessBoard.ChangeCell(x, y, CellMiss)
	}

	return outcome
}

// FireTorpedo runs up the column from the bottom row until it hits
// something. Open water it passes through is marked as a miss.
func (p *Player) FireTorpedo(opponent *Player, column int) Outcome {
	outcome := Outcome{At: NewCoordinates(0, column)}

	for x := GridSize - 1; x >= 0; x-- {
		outcome.At = NewCoordinates(x, column)

		switch opponent.Board.At(x, column) {
		case CellReinforced:
			opponent.Board.ChangeCell(x, column, CellOccupied)
			p.GuessBoard.ChangeCell(x, column, CellOccupied)
			outcome.Hit = true
			outcome.ProtectionRemoved = true
			return outcome

		case CellOccupied:
			opponent.Board.ChangeCell(x, column, CellHit)
			p.GuessBoard.ChangeCell(x, column, CellHit)
			outcome.Hit = true
			outcome.ShipType, outcome.ShipDestroyed = opponent.registerHit(x, column)
			return outcome

		case CellHit:
			outcome.Blocked = true
			return outcome

		default:
			opponent.Board.ChangeCell(x, column, CellMiss)
			p.GuessBoard.ChangeCell(x, column, CellMiss)
		}
	}

	return outcome
}

var radarOffsets = [5]Coordinates{
	{X: 0, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// RadarScan copies the opponent's true cells at (x, y) and its in-bounds
// orthogonal neighbours onto the guess board and returns them.
func (p *Player) RadarScan(opponent *Player, x, y int) []Coordinates {
	revealed := make([]Coordinates, 0, len(radarOffsets))
	for _, offset := range radarOffsets {
		target := NewCoordinates(x, y).Add(offset.X, offset.Y)
		if !InBounds(target.X, target.Y) {
			continue
		}
		p.GuessBoard.ChangeCell(target.X, target.Y, opponent.Board.At(target.X, target.Y))
		revealed = append(revealed, target)
	}
	return revealed
}

// Reinforce upgrades an occupied cell of the player's own board.
func (p *Player) Reinforce(x, y int) error {
	switch p.Board.At(x, y) {
	case CellOccupied:
		p.Board.ChangeCell(x, y, CellReinforced)
		return nil
	case CellReinforced:
		return cerr.ErrAlreadyReinforced(x, y)
	default:
		return cerr.ErrNotOccupied(x, y)
	}
}
