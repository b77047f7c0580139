package battleship

import (
	"math/rand/v2"
	"slices"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

const (
	maxPlacementAttempts   = 100
	fleetPlacementAttempts = 10
)

// PatrolState tracks an in-flight patrol. Ship is an index into
// Player.Ships and is -1 when no patrol is running.
type PatrolState struct {
	Active bool
	Ship   int
	Frames int
}

func idlePatrol() PatrolState {
	return PatrolState{Ship: -1}
}

// CardEconomy is the twist-mode extension of a player.
// Classic players have none.
type CardEconomy struct {
	Deck   Deck
	Hand   []ActionType
	Patrol PatrolState
}

type Player struct {
	Board      Board
	GuessBoard Board
	Ships      []Ship
	ShipCount  int
	Cards      *CardEconomy

	rng *rand.Rand
}

// NewPlayer places the standard fleet at random and, for twist players,
// builds and shuffles a deck and draws the opening hand.
func NewPlayer(rng *rand.Rand, twist bool) (*Player, error) {
	p := newBarePlayer(rng, twist)
	if err := p.placeFleet(); err != nil {
		return nil, err
	}

	if p.Cards != nil {
		p.Cards.Deck.Build()
		p.Cards.Deck.Shuffle(rng)
		p.DrawHand()
	}
	return p, nil
}

func newBarePlayer(rng *rand.Rand, twist bool) *Player {
	p := &Player{
		Board:      NewBoard(),
		GuessBoard: NewBoard(),
		Ships:      make([]Ship, 0, len(standardFleet)),
		rng:        rng,
	}
	if twist {
		p.Cards = &CardEconomy{
			Deck:   NewDeck(),
			Hand:   make([]ActionType, 0, HandSize),
			Patrol: idlePatrol(),
		}
	}
	return p
}

// placeFleet retries the whole fleet on a fresh board when a single
// ship cannot be placed.
func (p *Player) placeFleet() error {
	var lastErr error
	for attempt := 0; attempt < fleetPlacementAttempts; attempt++ {
		p.Board.Reset()
		p.Ships = p.Ships[:0]

		lastErr = nil
		for _, entry := range standardFleet {
			if _, err := p.PlaceShip(entry.shipType, entry.orientation); err != nil {
				lastErr = err
				break
			}
		}
		if lastErr == nil {
			p.UpdateShipCount()
			return nil
		}
	}
	return lastErr
}

// PlaceShip tries up to 100 random anchors. The ship grows from the
// anchor in one of the two directions allowed by the orientation.
func (p *Player) PlaceShip(shipType ShipType, orientation Orientation) (Ship, error) {
	length := shipType.Size()
	directions := orientation.directions()

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		anchor := NewCoordinates(p.rng.IntN(GridSize), p.rng.IntN(GridSize))
		dir := directions[p.rng.IntN(len(directions))]

		positions := make([]Coordinates, 0, length)
		fits := true
		current := anchor
		for i := 0; i < length; i++ {
			if !InBounds(current.X, current.Y) || p.Board.At(current.X, current.Y) != CellEmpty {
				fits = false
				break
			}
			positions = append(positions, current)
			current = current.Add(dir.X, dir.Y)
		}
		if !fits {
			continue
		}

		for _, pos := range positions {
			p.Board.ChangeCell(pos.X, pos.Y, CellOccupied)
		}
		ship := NewShip(shipType, positions, orientation)
		p.Ships = append(p.Ships, ship)
		return ship, nil
	}

	return Ship{}, cerr.ErrPlacementFailed(shipType.String(), maxPlacementAttempts)
}

// FindShipAt returns the index of the ship covering (x, y).
func (p *Player) FindShipAt(x, y int) (int, bool) {
	target := NewCoordinates(x, y)
	for i := range p.Ships {
		if p.Ships[i].Occupies(target) {
			return i, true
		}
	}
	return -1, false
}

func (p *Player) IsShipDestroyed(shipIdx int) bool {
	for _, pos := range p.Ships[shipIdx].Positions {
		if p.Board.At(pos.X, pos.Y) != CellHit {
			return false
		}
	}
	return true
}

func (p *Player) isShipDamaged(shipIdx int) bool {
	for _, pos := range p.Ships[shipIdx].Positions {
		if p.Board.At(pos.X, pos.Y) == CellHit {
			return true
		}
	}
	return false
}

// UpdateShipCount recomputes the number of ships with at least one
// cell that is not hit.
func (p *Player) UpdateShipCount() {
	alive := 0
	for i := range p.Ships {
		if !p.IsShipDestroyed(i) {
			alive++
		}
	}
	p.ShipCount = alive
}

func (p *Player) IsDefeated() bool {
	return p.ShipCount == 0
}

// registerHit runs the destruction bookkeeping after a hit at (x, y).
// It reports the destroyed ship, if any.
func (p *Player) registerHit(x, y int) (ShipType, bool) {
	shipIdx, found := p.FindShipAt(x, y)
	if !found || !p.IsShipDestroyed(shipIdx) {
		return 0, false
	}
	p.UpdateShipCount()
	return p.Ships[shipIdx].Type, true
}

func (p *Player) IsTwist() bool {
	return p.Cards != nil
}

// DrawCard pops one card from the deck without adding it to the hand.
// ok is false for an empty deck or a classic player.
func (p *Player) DrawCard() (ActionType, bool) {
	if p.Cards == nil {
		return 0, false
	}
	return p.Cards.Deck.DrawCard()
}

// DrawHand draws until the hand is full or the deck runs out.
func (p *Player) DrawHand() {
	if p.Cards == nil {
		return
	}
	for len(p.Cards.Hand) < HandSize {
		card, ok := p.DrawCard()
		if !ok {
			break
		}
		p.Cards.Hand = append(p.Cards.Hand, card)
	}
}

// UseCard removes the first matching card from the hand.
func (p *Player) UseCard(action ActionType) bool {
	if p.Cards == nil {
		return false
	}
	idx := slices.Index(p.Cards.Hand, action)
	if idx < 0 {
		return false
	}
	p.Cards.Hand = slices.Delete(p.Cards.Hand, idx, idx+1)
	return true
}

func (p *Player) HasCard(action ActionType) bool {
	return p.Cards != nil && slices.Contains(p.Cards.Hand, action)
}

// ReturnCard puts a speculatively used card back into the hand.
func (p *Player) ReturnCard(action ActionType) {
	if p.Cards == nil {
		return
	}
	p.Cards.Hand = append(p.Cards.Hand, action)
}

func (p *Player) Hand() []ActionType {
	if p.Cards == nil {
		return nil
	}
	return slices.Clone(p.Cards.Hand)
}

func (p *Player) DeckLen() int {
	if p.Cards == nil {
		return 0
	}
	return p.Cards.Deck.Len()
}

// refillHand tops the hand up at the end of a turn. An exhausted deck is
// rebuilt and reshuffled so the match can keep going.
func (p *Player) refillHand() {
	if p.Cards == nil {
		return
	}
	p.DrawHand()
	if len(p.Cards.Hand) < HandSize && p.Cards.Deck.IsEmpty() {
		p.Cards.Deck.Build()
		p.Cards.Deck.Shuffle(p.rng)
		p.DrawHand()
	}
}
