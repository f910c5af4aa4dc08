package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = 52

// ErrEmptyShoe is returned when drawing from a shoe with no cards left.
var ErrEmptyShoe = errors.New("empty shoe")

// Shoe is a FIFO queue of cards. The table keeps two: the live shoe cards are
// drawn from, and the discard shoe that used cards are returned to.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates an empty shoe. The rng drives Shuffle and may be nil for a
// shoe that is never shuffled (scripted test shoes).
func NewShoe(rng *rand.Rand) *Shoe {
	return &Shoe{rng: rng}
}

// NewStackedShoe creates a shoe that deals the given cards in order.
func NewStackedShoe(cards []Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// Fill enqueues numDecks fresh 52-card decks in suit/face order.
func (s *Shoe) Fill(numDecks int) {
	if cap(s.cards)-len(s.cards) < numDecks*CardsPerDeck {
		grown := make([]Card, len(s.cards), len(s.cards)+numDecks*CardsPerDeck)
		copy(grown, s.cards)
		s.cards = grown
	}
	for i := 0; i < numDecks; i++ {
		for _, suit := range Suits {
			for _, face := range Faces {
				s.cards = append(s.cards, NewCard(suit, face))
			}
		}
	}
}

// Shuffle runs a full Fisher-Yates pass over the shoe, times times over.
func (s *Shoe) Shuffle(times int) {
	if s.rng == nil {
		return
	}
	for t := 0; t < times; t++ {
		for n := len(s.cards) - 1; n > 0; n-- {
			k := s.rng.IntN(n + 1)
			s.cards[n], s.cards[k] = s.cards[k], s.cards[n]
		}
	}
}

// Draw removes and returns the card at the front of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Add enqueues a single card at the back of the shoe.
func (s *Shoe) Add(card Card) {
	s.cards = append(s.cards, card)
}

// Return enqueues a batch of cards at the back of the shoe.
func (s *Shoe) Return(cards []Card) {
	s.cards = append(s.cards, cards...)
}

// DrainInto moves every remaining card, in order, to the back of dst.
func (s *Shoe) DrainInto(dst *Shoe) {
	dst.cards = append(dst.cards, s.cards...)
	s.cards = s.cards[:0]
}

// Len returns the number of cards left in the shoe
func (s *Shoe) Len() int {
	return len(s.cards)
}

// Peek returns the next card without removing it from the shoe
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[0], true
}
