package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists every suit in canonical fill order.
var Suits = []Suit{Hearts, Diamonds, Spades, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Face represents a card face. Aces are low (1) and kings high (13).
type Face int

const (
	Ace Face = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Faces lists every face in canonical fill order.
var Faces = []Face{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a face
func (f Face) String() string {
	switch f {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if f >= Two && f <= Nine {
			return string(rune('0' + int(f)))
		}
		return "?"
	}
}

// Card is an immutable playing card. Cards are passed by value, so any copy
// handed to an observer is detached from the shoe it came from.
type Card struct {
	Suit Suit
	Face Face
}

// NewCard creates a new card
func NewCard(suit Suit, face Face) Card {
	return Card{Suit: suit, Face: face}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Face.String() + c.Suit.String()
}

// Value returns the blackjack value of the card: the face value capped at 10.
// Aces count 1 here; hands decide when an ace is promoted to 11.
func (c Card) Value() int {
	if c.Face > Ten {
		return 10
	}
	return int(c.Face)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Face == Ace
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKh5d" where each card is [Face][Suit].
// Faces: A, K, Q, J, T, 9 .. 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs)
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		face, err := parseFace(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid face '%c' at position %d: %w", s[i], i, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}
		cards = append(cards, Card{Suit: suit, Face: face})
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseFace(c byte) (Face, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Face(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown face")
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit")
	}
}
