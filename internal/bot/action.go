package bot

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// ActionPolicy chooses how to play a hand.
type ActionPolicy interface {
	Action(seat game.SeatView, upCard deck.Card, hand game.HandView) game.Action
}

// DealerRule plays like the house: hit below 17, hard or soft.
type DealerRule struct{}

func (DealerRule) Action(seat game.SeatView, upCard deck.Card, hand game.HandView) game.Action {
	return game.DealerAction(hand.Value)
}

// NoBustThreshold is the total NoBust stands on.
const NoBustThreshold = 12

// NoBust never takes a card that could bust the hand.
type NoBust struct{}

func (NoBust) Action(seat game.SeatView, upCard deck.Card, hand game.HandView) game.Action {
	if hand.Value < NoBustThreshold {
		return game.Hit
	}
	return game.Stand
}

// BasicStrategy looks every decision up in a set of Tables. Split comes
// first, then double, then stand; anything else hits.
type BasicStrategy struct {
	tables *Tables
}

// NewBasicStrategy plays by tables, which must not be modified afterwards.
func NewBasicStrategy(tables *Tables) *BasicStrategy {
	return &BasicStrategy{tables: tables}
}

func (b *BasicStrategy) Action(seat game.SeatView, upCard deck.Card, hand game.HandView) game.Action {
	up := upCard.Value() - 1
	if hand.Value > 21 || len(hand.Cards) == 0 {
		return game.Stand
	}

	// Doubling and splitting both put a second bet of the same size down.
	affordable := seat.Purse > hand.Bet && seat.Rules.CheckBet(hand.Bet*2)

	if hand.Splittable && affordable && b.tables.Split[hand.Cards[0].Value()-1][up] {
		return game.Split
	}

	double, stand := &b.tables.HardDouble, &b.tables.HardStand
	if hand.Soft {
		double, stand = &b.tables.SoftDouble, &b.tables.SoftStand
	}
	if affordable && double[hand.Value][up] {
		return game.DoubleDown
	}
	if stand[hand.Value][up] {
		return game.Stand
	}
	return game.Hit
}
