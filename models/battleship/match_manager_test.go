package battleship

import (
	"errors"
	"sync"
	"testing"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

func TestMatchManager(t *testing.T) {
	bmm := NewBattleshipMatchManager()

	match, err := bmm.CreateMatch(ModeTwist, WithRand(newTestRand(9)))
	if err != nil {
		t.Fatal(err)
	}

	got, err := bmm.GetMatch(match.Uuid())
	if err != nil {
		t.Fatal(err)
	}
	if got != match {
		t.Fatal("expected the same match back")
	}

	bmm.TerminateMatch(match.Uuid())
	if _, err = bmm.GetMatch(match.Uuid()); !errors.Is(err, cerr.ErrMatchNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrMatchNotFound, err)
	}
	if bmm.Count() != 0 {
		t.Fatalf("expected no matches\tgot: %d", bmm.Count())
	}

	if _, err = bmm.CreateMatch(Mode(3)); err == nil {
		t.Fatal("expected invalid mode to be rejected")
	}
}

func TestMatchManagerConcurrentCreate(t *testing.T) {
	bmm := NewBattleshipMatchManager()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := bmm.CreateMatch(ModeClassic); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// uuids are the first 6 characters of a random uuid; collisions would
	// only replace an entry
	if bmm.Count() == 0 || bmm.Count() > 20 {
		t.Fatalf("expected up to 20 matches\tgot: %d", bmm.Count())
	}
}
