package error

import (
	"errors"
	"fmt"
)

// Game rule rejections. None of these consume the player's turn.
var (
	ErrCardNotInHand         = errors.New("card is not in hand")
	ErrActionUnavailable     = errors.New("action is not available in this mode")
	ErrAlreadyActed          = errors.New("player already acted this turn")
	ErrNotActed              = errors.New("player must act before ending the turn")
	ErrTurnTransition        = errors.New("match is between turns")
	ErrMatchOver             = errors.New("match is over")
	ErrOutOfGridBound        = errors.New("out of grid bound")
	ErrCellNotOccupied       = errors.New("cell must be occupied")
	ErrCellAlreadyReinforced = errors.New("cell is already reinforced")
	ErrNoShipAt              = errors.New("no ship at position")
	ErrShipDamaged           = errors.New("ship has been hit")
	ErrPatrolInProgress      = errors.New("patrol is in progress")
	ErrPatrolNotActive       = errors.New("patrol is not active")
	ErrInvalidDirection      = errors.New("invalid patrol direction")
	ErrPatrolBlocked         = errors.New("patrol move is blocked")
	ErrNoPlacementFound      = errors.New("no placement found")
)

// Lookup and storage failures.
var (
	ErrMatchNotFound    = errors.New("match does not exist")
	ErrNoActiveMatch    = errors.New("no match on this table")
	ErrSessionNotFound  = errors.New("session does not exist")
	ErrSnapshotNotFound = errors.New("snapshot does not exist")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrInvalidSlotName  = errors.New("invalid save slot name")
	ErrNoSnapshotStore  = errors.New("snapshot storage is not configured")
	ErrInvalidPayload   = errors.New("invalid request payload")
)

func ErrMatchNotExists(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchNotFound, matchUuid)
}

func ErrMatchIsNil(matchUuid string) error {
	return fmt.Errorf("match with this uuid is nil, uuid: %s", matchUuid)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrSnapshotNotExists(slot string) error {
	return fmt.Errorf("%w, slot: %s", ErrSnapshotNotFound, slot)
}

func ErrInvalidSlot(slot string) error {
	return fmt.Errorf("%w: %q", ErrInvalidSlotName, slot)
}

func ErrPayload(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
}

func ErrInvalidMatchMode(mode uint8) error {
	return fmt.Errorf("invalid match mode: %d", mode)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfGridBound, x, y)
}

func ErrColumnOutOfGridBound(column int) error {
	return fmt.Errorf("%w\tcolumn: %d", ErrOutOfGridBound, column)
}

func ErrNotOccupied(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrCellNotOccupied, x, y)
}

func ErrAlreadyReinforced(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrCellAlreadyReinforced, x, y)
}

func ErrNoShipAtPosition(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrNoShipAt, x, y)
}

func ErrShipAlreadyHit(x, y int) error {
	return fmt.Errorf("%w, cannot patrol\tx: %d\ty: %d", ErrShipDamaged, x, y)
}

func ErrPatrolDirection(dx, dy int) error {
	return fmt.Errorf("%w\tdx: %d\tdy: %d", ErrInvalidDirection, dx, dy)
}

func ErrPatrolCollision(x, y int) error {
	return fmt.Errorf("%w, position taken\tx: %d\ty: %d", ErrPatrolBlocked, x, y)
}

func ErrPatrolOutOfBound(x, y int) error {
	return fmt.Errorf("%w, out of grid bound\tx: %d\ty: %d", ErrPatrolBlocked, x, y)
}

func ErrCardMissing(card string) error {
	return fmt.Errorf("%w: %s", ErrCardNotInHand, card)
}

func ErrActionNotInMode(action, mode string) error {
	return fmt.Errorf("%w: %s in %s mode", ErrActionUnavailable, action, mode)
}

func ErrPlacementFailed(ship string, attempts int) error {
	return fmt.Errorf("%w for %s after %d attempts", ErrNoPlacementFound, ship, attempts)
}
