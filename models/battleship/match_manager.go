package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

type MatchManager interface {
	CreateMatch(mode Mode, optFuncs ...MatchOption) (*Match, error)
	AddMatch(match *Match)
	GetMatch(matchUuid string) (*Match, error)
	TerminateMatch(matchUuid string)
	Count() int
}

type BattleshipMatchManager struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

var _ MatchManager = (*BattleshipMatchManager)(nil)

func NewBattleshipMatchManager() *BattleshipMatchManager {
	return &BattleshipMatchManager{
		matches: make(map[string]*Match, 10),
	}
}

func (bmm *BattleshipMatchManager) CreateMatch(mode Mode, optFuncs ...MatchOption) (*Match, error) {
	match, err := NewMatch(mode, optFuncs...)
	if err != nil {
		return nil, err
	}

	bmm.AddMatch(match)
	return match, nil
}

// AddMatch registers a match built elsewhere, e.g. one restored from a
// snapshot. An existing match with the same uuid is replaced.
func (bmm *BattleshipMatchManager) AddMatch(match *Match) {
	bmm.mu.Lock()
	bmm.matches[match.Uuid()] = match
	bmm.mu.Unlock()
}

func (bmm *BattleshipMatchManager) GetMatch(matchUuid string) (*Match, error) {
	bmm.mu.RLock()
	match, prs := bmm.matches[matchUuid]
	bmm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrMatchNotExists(matchUuid)
	}
	if match == nil {
		return nil, cerr.ErrMatchIsNil(matchUuid)
	}

	return match, nil
}

func (bmm *BattleshipMatchManager) TerminateMatch(matchUuid string) {
	bmm.mu.Lock()
	delete(bmm.matches, matchUuid)
	bmm.mu.Unlock()
}

func (bmm *BattleshipMatchManager) Count() int {
	bmm.mu.RLock()
	defer bmm.mu.RUnlock()
	return len(bmm.matches)
}
