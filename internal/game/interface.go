package game

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/statistics"
)

// Action is a playing decision for one hand.
type Action int

const (
	Hit Action = iota
	Stand
	DoubleDown
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// DealerStandsOn is the total the house rule stands on, hard or soft.
const DealerStandsOn = 17

// DealerAction applies the house rule to a hand total.
func DealerAction(value int) Action {
	if value < DealerStandsOn {
		return Hit
	}
	return Stand
}

// SeatView is the read-only state of a seat for decision making.
type SeatView struct {
	Name  string
	Purse int
	Hands int
	Rules Rules
	Score statistics.Tally
}

// HandView is the read-only state of a hand for decision making.
type HandView struct {
	Cards       []deck.Card
	Bet         int
	Value       int
	Soft        bool
	Splittable  bool
	DoubledDown bool
}

// Agent makes the decisions for one seat. Agents receive copies of table
// state and cannot mutate it.
type Agent interface {
	// DecideAnte is called only when the purse covers the table minimum.
	// Returning 0 sits the round out; any other amount must pass
	// Rules.CheckBet and be covered by the purse.
	DecideAnte(seat SeatView) int

	// DecideAction is called while the hand is at most 21 and not doubled.
	DecideAction(seat SeatView, upCard deck.Card, hand HandView) Action

	// DecideInsurance is called when the dealer shows an ace and the seat
	// holds a single hand.
	DecideInsurance(seat SeatView, hand HandView) bool
}
