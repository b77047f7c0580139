package battleship

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/hashicorp/go-multierror"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

const snapshotVersion uint8 = 1

// Snapshot is the full persisted state of a match. Its encoding is opaque
// and only needs to survive a round trip with the same build.
type Snapshot struct {
	Version     uint8             `cbor:"version"`
	Uuid        string            `cbor:"uuid"`
	Mode        Mode              `cbor:"mode"`
	Players     [2]PlayerSnapshot `cbor:"players"`
	Active      int               `cbor:"active"`
	State       GameState         `cbor:"state"`
	PlayerActed bool              `cbor:"player_acted"`
	TurnCounter int               `cbor:"turn_counter"`
	Winner      int               `cbor:"winner"`
}

type PlayerSnapshot struct {
	Board      Board          `cbor:"board"`
	GuessBoard Board          `cbor:"guess_board"`
	Ships      []Ship         `cbor:"ships"`
	ShipCount  int            `cbor:"ship_count"`
	Cards      *CardsSnapshot `cbor:"cards,omitempty"`
}

type CardsSnapshot struct {
	Deck   []ActionType `cbor:"deck"`
	Hand   []ActionType `cbor:"hand"`
	Patrol PatrolState  `cbor:"patrol"`
}

func cloneShips(ships []Ship) []Ship {
	cloned := make([]Ship, len(ships))
	for i, ship := range ships {
		cloned[i] = NewShip(ship.Type, slices.Clone(ship.Positions), ship.Orientation)
	}
	return cloned
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	ps := PlayerSnapshot{
		Board:      p.Board,
		GuessBoard: p.GuessBoard,
		Ships:      cloneShips(p.Ships),
		ShipCount:  p.ShipCount,
	}
	if p.Cards != nil {
		ps.Cards = &CardsSnapshot{
			Deck:   slices.Clone(p.Cards.Deck.Cards),
			Hand:   slices.Clone(p.Cards.Hand),
			Patrol: p.Cards.Patrol,
		}
	}
	return ps
}

func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Version:     snapshotVersion,
		Uuid:        m.uuid,
		Mode:        m.mode,
		Players:     [2]PlayerSnapshot{snapshotPlayer(m.players[0]), snapshotPlayer(m.players[1])},
		Active:      m.active,
		State:       m.state,
		PlayerActed: m.playerActed,
		TurnCounter: m.turnCounter,
		Winner:      m.winner,
	}
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := cbor.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot decodes and validates a snapshot blob.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", cerr.ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate reports every structural problem of the snapshot at once.
func (s Snapshot) Validate() error {
	var result *multierror.Error

	if s.Version != snapshotVersion {
		result = multierror.Append(result, fmt.Errorf("unsupported version: %d", s.Version))
	}
	if s.Uuid == "" {
		result = multierror.Append(result, fmt.Errorf("match uuid is empty"))
	}
	if !s.Mode.IsValid() {
		result = multierror.Append(result, cerr.ErrInvalidMatchMode(uint8(s.Mode)))
	}
	if s.Active != 0 && s.Active != 1 {
		result = multierror.Append(result, fmt.Errorf("active player out of range: %d", s.Active))
	}
	if s.State > GameStateElse {
		result = multierror.Append(result, fmt.Errorf("invalid game state: %d", s.State))
	}
	if s.Winner < NoWinner || s.Winner > 1 {
		result = multierror.Append(result, fmt.Errorf("winner out of range: %d", s.Winner))
	}
	if s.TurnCounter < 0 {
		result = multierror.Append(result, fmt.Errorf("negative turn counter: %d", s.TurnCounter))
	}

	for i := range s.Players {
		for _, err := range s.Players[i].problems(s.Mode) {
			result = multierror.Append(result, fmt.Errorf("player %d: %w", i+1, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", cerr.ErrInvalidSnapshot, err)
	}
	return nil
}

func (ps PlayerSnapshot) problems(mode Mode) []error {
	var errs []error

	for _, board := range []Board{ps.Board, ps.GuessBoard} {
		for x := 0; x < GridSize; x++ {
			for y := 0; y < GridSize; y++ {
				if board.Cells[x][y] > CellReinforced {
					errs = append(errs, fmt.Errorf("invalid cell %d at (%d, %d)", board.Cells[x][y], x, y))
				}
			}
		}
	}

	if len(ps.Ships) != len(standardFleet) {
		errs = append(errs, fmt.Errorf("expected %d ships, got %d", len(standardFleet), len(ps.Ships)))
	}
	for i, ship := range ps.Ships {
		if !ship.Type.IsValid() {
			errs = append(errs, fmt.Errorf("ship %d: invalid type %d", i, ship.Type))
			continue
		}
		if len(ship.Positions) != ship.Type.Size() {
			errs = append(errs, fmt.Errorf("ship %d: %s needs %d cells, got %d", i, ship.Type, ship.Type.Size(), len(ship.Positions)))
		}
		for _, pos := range ship.Positions {
			if !InBounds(pos.X, pos.Y) {
				errs = append(errs, fmt.Errorf("ship %d: position (%d, %d) out of bound", i, pos.X, pos.Y))
				continue
			}
			if !ps.Board.Cells[pos.X][pos.Y].IsShip() {
				errs = append(errs, fmt.Errorf("ship %d: board has no ship at (%d, %d)", i, pos.X, pos.Y))
			}
		}
	}
	if ps.ShipCount < 0 || ps.ShipCount > len(ps.Ships) {
		errs = append(errs, fmt.Errorf("ship count out of range: %d", ps.ShipCount))
	}

	switch {
	case mode == ModeTwist && ps.Cards == nil:
		errs = append(errs, fmt.Errorf("twist player without cards"))
	case mode == ModeClassic && ps.Cards != nil:
		errs = append(errs, fmt.Errorf("classic player with cards"))
	case ps.Cards != nil:
		errs = append(errs, ps.Cards.problems(len(ps.Ships))...)
	}
	return errs
}

func (cs *CardsSnapshot) problems(shipCount int) []error {
	var errs []error
	if len(cs.Deck) > DeckSize {
		errs = append(errs, fmt.Errorf("deck has %d cards", len(cs.Deck)))
	}
	if len(cs.Hand) > HandSize {
		errs = append(errs, fmt.Errorf("hand has %d cards", len(cs.Hand)))
	}
	for _, card := range append(slices.Clone(cs.Deck), cs.Hand...) {
		if !card.IsValid() {
			errs = append(errs, fmt.Errorf("invalid card %d", card))
		}
	}
	if cs.Patrol.Active {
		if cs.Patrol.Ship < 0 || cs.Patrol.Ship >= shipCount {
			errs = append(errs, fmt.Errorf("patrol ship out of range: %d", cs.Patrol.Ship))
		}
		if cs.Patrol.Frames <= 0 || cs.Patrol.Frames > PatrolFrames {
			errs = append(errs, fmt.Errorf("patrol frames out of range: %d", cs.Patrol.Frames))
		}
	}
	return errs
}

func restorePlayer(ps PlayerSnapshot, rng *rand.Rand) *Player {
	p := &Player{
		Board:      ps.Board,
		GuessBoard: ps.GuessBoard,
		Ships:      cloneShips(ps.Ships),
		ShipCount:  ps.ShipCount,
		rng:        rng,
	}
	if ps.Cards != nil {
		patrol := ps.Cards.Patrol
		if !patrol.Active {
			patrol = idlePatrol()
		}
		p.Cards = &CardEconomy{
			Deck:   Deck{Cards: slices.Clone(ps.Cards.Deck)},
			Hand:   slices.Clone(ps.Cards.Hand),
			Patrol: patrol,
		}
	}
	return p
}

// RestoreMatch rebuilds a match from a validated snapshot. The random
// source is not part of the snapshot; WithRand supplies one.
func RestoreMatch(s Snapshot, optFuncs ...MatchOption) (*Match, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := &Match{
		uuid:        s.Uuid,
		mode:        s.Mode,
		active:      s.Active,
		state:       s.State,
		playerActed: s.PlayerActed,
		turnCounter: s.TurnCounter,
		winner:      s.Winner,
	}
	for _, opt := range optFuncs {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for i := range m.players {
		m.players[i] = restorePlayer(s.Players[i], m.rng)
	}
	return m, nil
}
