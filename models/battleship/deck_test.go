package battleship

import (
	"slices"
	"testing"
)

func TestDeckBuild(t *testing.T) {
	deck := NewDeck()
	deck.Build()

	if deck.Len() != DeckSize {
		t.Fatalf("expected deck size: %d\tgot: %d", DeckSize, deck.Len())
	}

	expected := map[ActionType]int{
		ActionMissile:   16,
		ActionTorpedo:   9,
		ActionPatrol:    8,
		ActionReinforce: 7,
		ActionRadarScan: 8,
	}
	for action, count := range expected {
		if got := deck.CountOf(action); got != count {
			t.Fatalf("expected %d %s cards\tgot: %d", count, action, got)
		}
	}

	// Build order, unshuffled: the last card is drawn first.
	card, ok := deck.DrawCard()
	if !ok || card != ActionRadarScan {
		t.Fatalf("expected first draw: %s\tgot: %s (ok=%v)", ActionRadarScan, card, ok)
	}
}

func TestDeckBuildDiscardsRemainingCards(t *testing.T) {
	deck := NewDeck()
	deck.Build()
	for i := 0; i < 10; i++ {
		deck.DrawCard()
	}

	deck.Build()
	if deck.Len() != DeckSize {
		t.Fatalf("expected deck size: %d\tgot: %d", DeckSize, deck.Len())
	}
}

func TestDeckShuffleKeepsComposition(t *testing.T) {
	deck := NewDeck()
	deck.Build()
	before := slices.Clone(deck.Cards)

	deck.Shuffle(newTestRand(3))

	if deck.Len() != DeckSize {
		t.Fatalf("expected deck size: %d\tgot: %d", DeckSize, deck.Len())
	}
	after := slices.Clone(deck.Cards)
	slices.Sort(before)
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Fatalf("expected shuffle to keep the cards\tbefore: %v\tafter: %v", before, after)
	}
}

func TestDeckDrawCard(t *testing.T) {
	deck := Deck{Cards: []ActionType{ActionMissile, ActionTorpedo}}

	card, ok := deck.DrawCard()
	if !ok || card != ActionTorpedo {
		t.Fatalf("expected card: %s\tgot: %s", ActionTorpedo, card)
	}
	card, ok = deck.DrawCard()
	if !ok || card != ActionMissile {
		t.Fatalf("expected card: %s\tgot: %s", ActionMissile, card)
	}
	if _, ok = deck.DrawCard(); ok {
		t.Fatal("expected empty deck to report no card")
	}
	if !deck.IsEmpty() {
		t.Fatalf("expected empty deck\tgot: %d cards", deck.Len())
	}
}

func TestDrawHand(t *testing.T) {
	tests := []struct {
		name         string
		deck         []ActionType
		hand         []ActionType
		expectedHand int
		expectedDeck int
	}{
		{
			name:         "full deck fills the hand",
			deck:         []ActionType{ActionMissile, ActionTorpedo, ActionPatrol, ActionReinforce},
			hand:         []ActionType{},
			expectedHand: 3,
			expectedDeck: 1,
		},
		{
			name:         "partial hand tops up",
			deck:         []ActionType{ActionMissile, ActionTorpedo},
			hand:         []ActionType{ActionRadarScan, ActionRadarScan},
			expectedHand: 3,
			expectedDeck: 1,
		},
		{
			name:         "short deck stops early",
			deck:         []ActionType{ActionMissile},
			hand:         []ActionType{},
			expectedHand: 1,
			expectedDeck: 0,
		},
		{
			name:         "full hand draws nothing",
			deck:         []ActionType{ActionMissile},
			hand:         []ActionType{ActionTorpedo, ActionTorpedo, ActionTorpedo},
			expectedHand: 3,
			expectedDeck: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newTestPlayer(true)
			p.Cards.Deck.Cards = test.deck
			p.Cards.Hand = test.hand

			p.DrawHand()

			if len(p.Cards.Hand) != test.expectedHand {
				t.Fatalf("expected hand size: %d\tgot: %d", test.expectedHand, len(p.Cards.Hand))
			}
			if p.DeckLen() != test.expectedDeck {
				t.Fatalf("expected deck size: %d\tgot: %d", test.expectedDeck, p.DeckLen())
			}
		})
	}
}

func TestUseCard(t *testing.T) {
	p := newTestPlayer(true)
	p.Cards.Hand = []ActionType{ActionTorpedo, ActionMissile, ActionTorpedo}

	if !p.UseCard(ActionTorpedo) {
		t.Fatal("expected torpedo card to be used")
	}
	if !slices.Equal(p.Hand(), []ActionType{ActionMissile, ActionTorpedo}) {
		t.Fatalf("expected first torpedo removed\tgot: %v", p.Hand())
	}

	if p.UseCard(ActionPatrol) {
		t.Fatal("expected missing patrol card to fail")
	}
	if len(p.Hand()) != 2 {
		t.Fatalf("expected hand untouched\tgot: %v", p.Hand())
	}
}

func TestClassicPlayerHasNoCards(t *testing.T) {
	p := newTestPlayer(false)

	if p.IsTwist() {
		t.Fatal("expected classic player")
	}
	if p.UseCard(ActionMissile) {
		t.Fatal("expected classic player to have no cards to use")
	}
	if _, ok := p.DrawCard(); ok {
		t.Fatal("expected classic player to have no deck")
	}
	p.DrawHand()
	p.ReturnCard(ActionMissile)
	if p.Hand() != nil {
		t.Fatalf("expected no hand\tgot: %v", p.Hand())
	}
}

func TestRefillHandReshufflesExhaustedDeck(t *testing.T) {
	p := newTestPlayer(true)
	p.Cards.Deck.Cards = []ActionType{ActionMissile}
	p.Cards.Hand = []ActionType{}

	p.refillHand()

	if len(p.Cards.Hand) != HandSize {
		t.Fatalf("expected hand size: %d\tgot: %d", HandSize, len(p.Cards.Hand))
	}
	if p.DeckLen() != DeckSize-(HandSize-1) {
		t.Fatalf("expected rebuilt deck size: %d\tgot: %d", DeckSize-(HandSize-1), p.DeckLen())
	}
}
