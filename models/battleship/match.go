package battleship

import (
	"math/rand/v2"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

type Mode uint8

const (
	ModeClassic Mode = iota
	ModeTwist
)

func (m Mode) String() string {
	if m == ModeTwist {
		return "twist"
	}
	return "classic"
}

func (m Mode) IsValid() bool {
	return m == ModeClassic || m == ModeTwist
}

// GameState is whose turn is on screen. Else is the hand-over screen
// between two turns.
type GameState uint8

const (
	GameStatePlayer1 GameState = iota
	GameStatePlayer2
	GameStateElse
)

func (s GameState) String() string {
	switch s {
	case GameStatePlayer1:
		return "player1"
	case GameStatePlayer2:
		return "player2"
	default:
		return "else"
	}
}

const NoWinner = -1

func stateFor(playerIdx int) GameState {
	if playerIdx == 0 {
		return GameStatePlayer1
	}
	return GameStatePlayer2
}

// Match holds both players and the turn state machine. It is not safe
// for concurrent use; callers serialize access.
type Match struct {
	uuid        string
	mode        Mode
	players     [2]*Player
	active      int
	state       GameState
	playerActed bool
	turnCounter int
	winner      int
	rng         *rand.Rand
}

type MatchOption func(*Match) error

func WithRand(rng *rand.Rand) MatchOption {
	return func(m *Match) error {
		m.rng = rng
		return nil
	}
}

func WithUuid(matchUuid string) MatchOption {
	return func(m *Match) error {
		m.uuid = matchUuid
		return nil
	}
}

func NewMatch(mode Mode, optFuncs ...MatchOption) (*Match, error) {
	if !mode.IsValid() {
		return nil, cerr.ErrInvalidMatchMode(uint8(mode))
	}

	m := &Match{
		mode:   mode,
		active: 0,
		state:  GameStatePlayer1,
		winner: NoWinner,
	}
	for _, opt := range optFuncs {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.uuid == "" {
		m.uuid = uuid.NewString()[:6]
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for i := range m.players {
		player, err := NewPlayer(m.rng, mode == ModeTwist)
		if err != nil {
			return nil, err
		}
		m.players[i] = player
	}
	return m, nil
}

func (m *Match) Uuid() string {
	return m.uuid
}

func (m *Match) Mode() Mode {
	return m.mode
}

func (m *Match) State() GameState {
	return m.state
}

func (m *Match) PlayerActed() bool {
	return m.playerActed
}

func (m *Match) TurnCounter() int {
	return m.turnCounter
}

// Round is the current round number. Both players taking one turn
// makes a round.
func (m *Match) Round() int {
	return m.turnCounter/2 + 1
}

func (m *Match) Player(idx int) *Player {
	return m.players[idx]
}

func (m *Match) ActiveIndex() int {
	return m.active
}

// activePair returns the indices of the player whose turn it is and of
// their opponent.
func (m *Match) activePair() (int, int) {
	return m.active, 1 - m.active
}

func (m *Match) ActivePlayer() *Player {
	active, _ := m.activePair()
	return m.players[active]
}

func (m *Match) Opponent() *Player {
	_, inactive := m.activePair()
	return m.players[inactive]
}

func (m *Match) Winner() (int, bool) {
	return m.winner, m.winner != NoWinner
}

func (m *Match) IsOver() bool {
	return m.winner != NoWinner
}

func (m *Match) checkCanAct() error {
	if m.IsOver() {
		return cerr.ErrMatchOver
	}
	if m.state == GameStateElse {
		return cerr.ErrTurnTransition
	}
	if m.playerActed {
		return cerr.ErrAlreadyActed
	}
	if m.ActivePlayer().IsPatrolling() {
		return cerr.ErrPatrolInProgress
	}
	return nil
}

// spendCard takes the card for the action out of the active hand.
// Classic matches only know missiles and need no card for them.
func (m *Match) spendCard(action ActionType) error {
	if m.mode == ModeClassic {
		if action != ActionMissile {
			return cerr.ErrActionNotInMode(action.String(), m.mode.String())
		}
		return nil
	}
	if !m.ActivePlayer().UseCard(action) {
		return cerr.ErrCardMissing(action.String())
	}
	return nil
}

func (m *Match) refundCard(action ActionType) {
	if m.mode == ModeTwist {
		m.ActivePlayer().ReturnCard(action)
	}
}

func (m *Match) finishAction() {
	m.playerActed = true
	if m.Opponent().IsDefeated() {
		m.winner = m.active
	}
}

func (m *Match) FireMissile(x, y int) (Outcome, error) {
	if err := m.checkCanAct(); err != nil {
		return Outcome{}, err
	}
	if !InBounds(x, y) {
		return Outcome{}, cerr.ErrXorYOutOfGridBound(x, y)
	}
	if err := m.spendCard(ActionMissile); err != nil {
		return Outcome{}, err
	}

	outcome := m.ActivePlayer().FireMissile(m.Opponent(), x, y)
	m.finishAction()
	return outcome, nil
}

func (m *Match) FireTorpedo(column int) (Outcome, error) {
	if err := m.checkCanAct(); err != nil {
		return Outcome{}, err
	}
	if column < 0 || column >= GridSize {
		return Outcome{}, cerr.ErrColumnOutOfGridBound(column)
	}
	if err := m.spendCard(ActionTorpedo); err != nil {
		return Outcome{}, err
	}

	outcome := m.ActivePlayer().FireTorpedo(m.Opponent(), column)
	m.finishAction()
	return outcome, nil
}

func (m *Match) RadarScan(x, y int) ([]Coordinates, error) {
	if err := m.checkCanAct(); err != nil {
		return nil, err
	}
	if !InBounds(x, y) {
		return nil, cerr.ErrXorYOutOfGridBound(x, y)
	}
	if err := m.spendCard(ActionRadarScan); err != nil {
		return nil, err
	}

	revealed := m.ActivePlayer().RadarScan(m.Opponent(), x, y)
	m.finishAction()
	return revealed, nil
}

// Reinforce gives the card back on any rejection.
func (m *Match) Reinforce(x, y int) error {
	if err := m.checkCanAct(); err != nil {
		return err
	}
	if !InBounds(x, y) {
		return cerr.ErrXorYOutOfGridBound(x, y)
	}
	if err := m.spendCard(ActionReinforce); err != nil {
		return err
	}

	if err := m.ActivePlayer().Reinforce(x, y); err != nil {
		m.refundCard(ActionReinforce)
		return err
	}
	m.finishAction()
	return nil
}

// StartPatrol does not end the action; PatrolMove does.
func (m *Match) StartPatrol(x, y int) error {
	if err := m.checkCanAct(); err != nil {
		return err
	}
	if !InBounds(x, y) {
		return cerr.ErrXorYOutOfGridBound(x, y)
	}
	if err := m.spendCard(ActionPatrol); err != nil {
		return err
	}

	if err := m.ActivePlayer().StartPatrol(x, y); err != nil {
		m.refundCard(ActionPatrol)
		return err
	}
	return nil
}

// PatrolMove keeps the patrol running when the move is rejected, until
// it succeeds or times out.
func (m *Match) PatrolMove(dx, dy int) error {
	if m.IsOver() {
		return cerr.ErrMatchOver
	}
	if m.state == GameStateElse {
		return cerr.ErrTurnTransition
	}
	if m.playerActed {
		return cerr.ErrAlreadyActed
	}

	if err := m.ActivePlayer().TryPatrolMove(dx, dy); err != nil {
		return err
	}
	m.finishAction()
	return nil
}

func (m *Match) CancelPatrol() error {
	if m.state == GameStateElse {
		return cerr.ErrTurnTransition
	}
	player := m.ActivePlayer()
	if !player.IsPatrolling() {
		return cerr.ErrPatrolNotActive
	}
	player.CancelPatrol(true)
	return nil
}

// Tick advances the patrol countdown of the player on screen. It reports
// whether a patrol timed out.
func (m *Match) Tick() bool {
	if m.state == GameStateElse || m.IsOver() {
		return false
	}
	return m.ActivePlayer().UpdatePatrol()
}

// EndTurn is the space-bar intent. After acting it refills the hand and
// moves to the hand-over screen; from the hand-over screen it gives the
// turn to the other player.
func (m *Match) EndTurn() error {
	if m.IsOver() {
		return cerr.ErrMatchOver
	}

	if m.state == GameStateElse {
		_, next := m.activePair()
		m.active = next
		m.state = stateFor(next)
		return nil
	}

	if !m.playerActed {
		return cerr.ErrNotActed
	}

	m.ActivePlayer().refillHand()
	m.playerActed = false
	m.state = GameStateElse
	m.turnCounter++
	return nil
}
