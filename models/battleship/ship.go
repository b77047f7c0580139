package battleship

import "slices"

type ShipType uint8

const (
	ShipBattleship ShipType = iota
	ShipCruiser
	ShipSubmarine
	ShipDestroyer
	ShipDreadnaught
)

func (t ShipType) Size() int {
	switch t {
	case ShipBattleship:
		return 4
	case ShipCruiser:
		return 3
	case ShipSubmarine:
		return 3
	case ShipDestroyer:
		return 2
	case ShipDreadnaught:
		return 5
	default:
		return 0
	}
}

func (t ShipType) String() string {
	switch t {
	case ShipBattleship:
		return "battleship"
	case ShipCruiser:
		return "cruiser"
	case ShipSubmarine:
		return "submarine"
	case ShipDestroyer:
		return "destroyer"
	case ShipDreadnaught:
		return "dreadnaught"
	default:
		return "unknown"
	}
}

func (t ShipType) IsValid() bool {
	return t <= ShipDreadnaught
}

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// directions returns the (dx, dy) steps a ship may grow in.
func (o Orientation) directions() [2]Coordinates {
	if o == OrientationVertical {
		return [2]Coordinates{{X: 1, Y: 0}, {X: -1, Y: 0}}
	}
	return [2]Coordinates{{X: 0, Y: 1}, {X: 0, Y: -1}}
}

type Ship struct {
	Type        ShipType      `json:"type"`
	Positions   []Coordinates `json:"positions"`
	Orientation Orientation   `json:"orientation"`
}

func NewShip(shipType ShipType, positions []Coordinates, orientation Orientation) Ship {
	return Ship{
		Type:        shipType,
		Positions:   positions,
		Orientation: orientation,
	}
}

func (sh *Ship) Occupies(c Coordinates) bool {
	return slices.Contains(sh.Positions, c)
}

type fleetEntry struct {
	shipType    ShipType
	orientation Orientation
}

// Fleet placed for every player, in placement order. 17 cells in total.
var standardFleet = []fleetEntry{
	{ShipBattleship, OrientationVertical},
	{ShipSubmarine, OrientationVertical},
	{ShipCruiser, OrientationHorizontal},
	{ShipDreadnaught, OrientationVertical},
	{ShipDestroyer, OrientationHorizontal},
}

// FleetCells is the number of occupied cells of a fully placed fleet.
func FleetCells() int {
	total := 0
	for _, entry := range standardFleet {
		total += entry.shipType.Size()
	}
	return total
}
