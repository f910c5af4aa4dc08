package deck

import (
	"errors"
	"testing"

	"github.com/lox/blackjacksim/internal/randutil"
)

func TestShoeFillCanonicalOrder(t *testing.T) {
	s := NewShoe(nil)
	s.Fill(2)

	if s.Len() != 2*CardsPerDeck {
		t.Fatalf("Len() = %d, want %d", s.Len(), 2*CardsPerDeck)
	}

	first, _ := s.Draw()
	if first != NewCard(Hearts, Ace) {
		t.Errorf("first card = %v, want A♥", first)
	}
	for i := 1; i < 12; i++ {
		s.Draw()
	}
	thirteenth, _ := s.Draw()
	if thirteenth != NewCard(Hearts, King) {
		t.Errorf("13th card = %v, want K♥", thirteenth)
	}
	next, _ := s.Draw()
	if next != NewCard(Diamonds, Ace) {
		t.Errorf("14th card = %v, want A♦", next)
	}
}

func TestShoeDrawIsFIFO(t *testing.T) {
	s := NewStackedShoe(MustParseCards("2h3h4h"))
	s.Add(NewCard(Clubs, King))
	s.Return(MustParseCards("5s6s"))

	want := MustParseCards("2h3h4hKc5s6s")
	for i, w := range want {
		got, err := s.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}

	if _, err := s.Draw(); !errors.Is(err, ErrEmptyShoe) {
		t.Errorf("Draw() on empty shoe error = %v, want ErrEmptyShoe", err)
	}
}

func TestShoeShufflePreservesCards(t *testing.T) {
	s := NewShoe(randutil.New(42))
	s.Fill(1)
	s.Shuffle(4)

	if s.Len() != CardsPerDeck {
		t.Fatalf("Len() = %d after shuffle", s.Len())
	}

	seen := make(map[Card]int)
	for s.Len() > 0 {
		c, _ := s.Draw()
		seen[c]++
	}
	if len(seen) != CardsPerDeck {
		t.Errorf("saw %d distinct cards, want %d", len(seen), CardsPerDeck)
	}
}

func TestShoeShuffleIsSeeded(t *testing.T) {
	a := NewShoe(randutil.New(7))
	b := NewShoe(randutil.New(7))
	a.Fill(1)
	b.Fill(1)
	a.Shuffle(3)
	b.Shuffle(3)

	for a.Len() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("same seed produced different order: %v vs %v", ca, cb)
		}
	}
}

func TestShoeDrainInto(t *testing.T) {
	live := NewStackedShoe(MustParseCards("AsKs"))
	discard := NewStackedShoe(MustParseCards("2c"))

	live.DrainInto(discard)

	if live.Len() != 0 || discard.Len() != 3 {
		t.Fatalf("live=%d discard=%d, want 0 and 3", live.Len(), discard.Len())
	}
	c, _ := discard.Peek()
	if c != NewCard(Clubs, Two) {
		t.Errorf("discard front = %v, want 2♣", c)
	}
}
