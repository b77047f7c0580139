package battleship

import (
	"slices"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

// PatrolFrames is how many ticks a player has to move the ship
// (half a second at 60 fps).
const PatrolFrames = 30

func (p *Player) IsPatrolling() bool {
	return p.Cards != nil && p.Cards.Patrol.Active
}

// StartPatrol selects the undamaged ship at (x, y) on the player's own
// board and starts the countdown. The Patrol card is handled by the caller.
func (p *Player) StartPatrol(x, y int) error {
	if p.Cards == nil {
		return cerr.ErrActionNotInMode(ActionPatrol.String(), "classic")
	}
	if p.Cards.Patrol.Active {
		return cerr.ErrPatrolInProgress
	}

	shipIdx, found := p.FindShipAt(x, y)
	if !found {
		return cerr.ErrNoShipAtPosition(x, y)
	}
	if p.isShipDamaged(shipIdx) {
		return cerr.ErrShipAlreadyHit(x, y)
	}

	p.Cards.Patrol = PatrolState{
		Active: true,
		Ship:   shipIdx,
		Frames: PatrolFrames,
	}
	return nil
}

// PatrolShipPositions returns the cells of the ship being moved so the UI
// can highlight them. It is empty when no patrol is running.
func (p *Player) PatrolShipPositions() []Coordinates {
	if !p.IsPatrolling() {
		return nil
	}
	return slices.Clone(p.Ships[p.Cards.Patrol.Ship].Positions)
}

func isPatrolDirection(dx, dy int) bool {
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// TryPatrolMove shifts the patrolling ship one cell. Nothing changes when
// the move leaves the grid or runs into another ship. A successful move
// ends the patrol.
func (p *Player) TryPatrolMove(dx, dy int) error {
	if !p.IsPatrolling() {
		return cerr.ErrPatrolNotActive
	}
	if !isPatrolDirection(dx, dy) {
		return cerr.ErrPatrolDirection(dx, dy)
	}

	ship := &p.Ships[p.Cards.Patrol.Ship]

	newPositions := make([]Coordinates, 0, len(ship.Positions))
	for _, pos := range ship.Positions {
		next := pos.Add(dx, dy)
		if !InBounds(next.X, next.Y) {
			return cerr.ErrPatrolOutOfBound(next.X, next.Y)
		}
		// Hit cells still belong to a ship, so they block as well.
		if p.Board.At(next.X, next.Y).IsShip() && !ship.Occupies(next) {
			return cerr.ErrPatrolCollision(next.X, next.Y)
		}
		newPositions = append(newPositions, next)
	}

	reinforced := make(map[Coordinates]bool, len(ship.Positions))
	for _, pos := range ship.Positions {
		if p.Board.At(pos.X, pos.Y) == CellReinforced {
			reinforced[pos] = true
		}
	}

	for _, pos := range ship.Positions {
		p.Board.ChangeCell(pos.X, pos.Y, CellEmpty)
	}
	for _, pos := range newPositions {
		if reinforced[pos.Add(-dx, -dy)] {
			p.Board.ChangeCell(pos.X, pos.Y, CellReinforced)
		} else {
			p.Board.ChangeCell(pos.X, pos.Y, CellOccupied)
		}
	}
	ship.Positions = newPositions

	p.CancelPatrol(false)
	return nil
}

// CancelPatrol clears the patrol state, optionally giving the Patrol card
// back. Cell values are untouched.
func (p *Player) CancelPatrol(returnCard bool) {
	if p.Cards == nil {
		return
	}
	if returnCard {
		p.ReturnCard(ActionPatrol)
	}
	p.Cards.Patrol = idlePatrol()
}

// UpdatePatrol must run once per tick. It reports whether the patrol
// timed out on this tick, in which case the card is back in the hand.
func (p *Player) UpdatePatrol() bool {
	if !p.IsPatrolling() || p.Cards.Patrol.Frames <= 0 {
		return false
	}

	p.Cards.Patrol.Frames--
	if p.Cards.Patrol.Frames == 0 {
		p.CancelPatrol(true)
		return true
	}
	return false
}
