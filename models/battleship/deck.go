package battleship

import "math/rand/v2"

const (
	HandSize = 3
	DeckSize = 48
)

type ActionType uint8

const (
	ActionMissile ActionType = iota
	ActionTorpedo
	ActionPatrol
	ActionRadarScan
	ActionReinforce
)

func (a ActionType) String() string {
	switch a {
	case ActionMissile:
		return "missile"
	case ActionTorpedo:
		return "torpedo"
	case ActionPatrol:
		return "patrol"
	case ActionRadarScan:
		return "radar_scan"
	case ActionReinforce:
		return "reinforce"
	default:
		return "unknown"
	}
}

func (a ActionType) IsValid() bool {
	return a <= ActionReinforce
}

// Card counts in build order.
var deckComposition = []struct {
	action ActionType
	count  int
}{
	{ActionMissile, 16},
	{ActionTorpedo, 9},
	{ActionPatrol, 8},
	{ActionReinforce, 7},
	{ActionRadarScan, 8},
}

// Deck is drawn from the end of Cards.
type Deck struct {
	Cards []ActionType
}

func NewDeck() Deck {
	return Deck{Cards: make([]ActionType, 0, DeckSize)}
}

// Build discards any remaining cards and appends the fixed composition
// in block order. It does not shuffle.
func (d *Deck) Build() {
	d.Cards = d.Cards[:0]
	for _, entry := range deckComposition {
		for i := 0; i < entry.count; i++ {
			d.Cards = append(d.Cards, entry.action)
		}
	}
}

func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// DrawCard pops the last card. ok is false when the deck is empty.
func (d *Deck) DrawCard() (card ActionType, ok bool) {
	if len(d.Cards) == 0 {
		return 0, false
	}
	last := len(d.Cards) - 1
	card = d.Cards[last]
	d.Cards = d.Cards[:last]
	return card, true
}

func (d *Deck) Len() int {
	return len(d.Cards)
}

func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}

// CountOf returns how many cards of the given type are left.
func (d *Deck) CountOf(action ActionType) int {
	n := 0
	for _, c := range d.Cards {
		if c == action {
			n++
		}
	}
	return n
}
