package battleship

// GridSize is the number of rows and columns of every board.
const GridSize = 10

// Cell is the state of one coordinate on a board.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellOccupied
	// Hit is terminal: once set, the cell is never mutated again.
	CellHit
	CellMiss
	// Reinforced absorbs one hit and drops back to Occupied.
	CellReinforced
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	case CellReinforced:
		return "reinforced"
	default:
		return "unknown"
	}
}

// IsShip reports whether a ship is sitting on the cell, damaged or not.
func (c Cell) IsShip() bool {
	return c == CellOccupied || c == CellReinforced || c == CellHit
}

// X is the row (0 is the top row) and Y the column.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) Add(dx, dy int) Coordinates {
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

func InBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// Board is a fixed GridSize x GridSize grid indexed as Cells[x][y].
type Board struct {
	Cells [GridSize][GridSize]Cell
}

// Creates a new default board
// All cells are CellEmpty
func NewBoard() Board {
	return Board{}
}

func (b *Board) At(x, y int) Cell {
	return b.Cells[x][y]
}

// ChangeCell overwrites the cell unless it is already hit.
// Every write to a board must go through here.
func (b *Board) ChangeCell(x, y int, c Cell) {
	if b.Cells[x][y] == CellHit {
		return
	}
	b.Cells[x][y] = c
}

func (b *Board) Count(c Cell) int {
	n := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if b.Cells[x][y] == c {
				n++
			}
		}
	}
	return n
}

func (b *Board) Reset() {
	b.Cells = [GridSize][GridSize]Cell{}
}
