package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/chips"
	"github.com/lox/blackjacksim/internal/deck"
)

// Snapshot is the value of a hand the first time it held two cards.
type Snapshot struct {
	Value int
	Soft  bool
	taken bool
}

// Taken reports whether the snapshot has been captured
func (s Snapshot) Taken() bool {
	return s.taken
}

// Hand is one bet and the cards played against it.
type Hand struct {
	cards   []deck.Card
	bet     chips.Stack
	doubled bool

	// Recomputed from cards on every mutation.
	value int
	soft  bool

	prePlay Snapshot
}

// NewHand creates an empty hand carrying bet.
func NewHand(bet chips.Stack) *Hand {
	return &Hand{bet: bet}
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int { return len(h.cards) }

// Bet returns the chips riding on the hand
func (h *Hand) Bet() int { return h.bet.Value() }

// Value returns the best blackjack total
func (h *Hand) Value() int { return h.value }

// IsSoft reports whether an ace is counted as 11
func (h *Hand) IsSoft() bool { return h.soft }

// IsBusted reports whether the hand is over 21
func (h *Hand) IsBusted() bool { return h.value > 21 }

// DoubledDown reports whether the hand has been doubled
func (h *Hand) DoubledDown() bool { return h.doubled }

// IsNatural reports whether the hand is a two card 21.
func (h *Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.value == 21
}

// Splittable reports whether the hand holds exactly two cards of equal value.
func (h *Hand) Splittable() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// PrePlay returns the frozen two card snapshot.
func (h *Hand) PrePlay() Snapshot {
	return h.prePlay
}

// Hit adds a card to the hand.
func (h *Hand) Hit(card deck.Card) error {
	if h.IsBusted() {
		return fmt.Errorf("hit busted hand %s: %w", h, ErrIllegalAction)
	}
	if h.doubled {
		return fmt.Errorf("hit doubled hand %s: %w", h, ErrIllegalAction)
	}
	h.add(card)
	return nil
}

// DoubleDown adds bet to the hand and deals it exactly one more card.
func (h *Hand) DoubleDown(card deck.Card, bet chips.Stack) error {
	if bet.Value() != h.bet.Value() {
		return fmt.Errorf("double %d onto %d: %w", bet.Value(), h.bet.Value(), ErrBetMismatch)
	}
	if err := h.Hit(card); err != nil {
		return err
	}
	h.bet.Merge(&bet)
	h.doubled = true
	return nil
}

// Split moves the second card into a new hand carrying bet. Both hands keep
// the snapshot taken before the split.
func (h *Hand) Split(bet chips.Stack) (*Hand, error) {
	if !h.Splittable() {
		return nil, fmt.Errorf("split %s: %w", h, ErrIllegalAction)
	}
	if bet.Value() != h.bet.Value() {
		return nil, fmt.Errorf("split with %d against %d: %w", bet.Value(), h.bet.Value(), ErrBetMismatch)
	}
	second := h.cards[1]
	h.cards = h.cards[:1]
	h.recompute()

	other := &Hand{bet: bet, prePlay: h.prePlay}
	other.add(second)
	return other, nil
}

// PayOut returns the bet and leaves the hand with none.
func (h *Hand) PayOut() chips.Stack {
	return h.bet.Take()
}

// ReturnCards empties the hand and returns its cards for the discard pile.
func (h *Hand) ReturnCards() []deck.Card {
	out := h.cards
	h.cards = nil
	h.recompute()
	return out
}

// View returns a read-only copy of the hand for decision making.
func (h *Hand) View() HandView {
	return HandView{
		Cards:       h.Cards(),
		Bet:         h.Bet(),
		Value:       h.value,
		Soft:        h.soft,
		Splittable:  h.Splittable(),
		DoubledDown: h.doubled,
	}
}

func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	kind := "hard"
	if h.soft {
		kind = "soft"
	}
	return fmt.Sprintf("[%s] %s %d", strings.Join(parts, " "), kind, h.value)
}

func (h *Hand) add(card deck.Card) {
	h.cards = append(h.cards, card)
	h.recompute()
	if len(h.cards) == 2 && !h.prePlay.taken {
		h.prePlay = Snapshot{Value: h.value, Soft: h.soft, taken: true}
	}
}

// recompute derives value and softness from scratch. At most one ace is
// promoted to 11, and only while the total is under 12.
func (h *Hand) recompute() {
	total, aces := 0, 0
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	h.soft = false
	if aces > 0 && total < 12 {
		total += 10
		h.soft = true
	}
	h.value = total
}
