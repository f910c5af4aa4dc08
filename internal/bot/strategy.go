// Package bot provides the automated players: decision tables, playing
// policies, bet sizing policies and a registry of named strategies built by
// combining them.
package bot

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// Strategy combines a playing policy with a bet sizing policy. It never
// takes insurance.
type Strategy struct {
	name   string
	action ActionPolicy
	bet    BetPolicy
}

var (
	_ game.Agent           = (*Strategy)(nil)
	_ game.EventSubscriber = (*Strategy)(nil)
)

// NewStrategy creates a named strategy
func NewStrategy(name string, action ActionPolicy, bet BetPolicy) *Strategy {
	return &Strategy{name: name, action: action, bet: bet}
}

// Name returns the registry name of the strategy
func (s *Strategy) Name() string { return s.name }

func (s *Strategy) DecideAnte(seat game.SeatView) int {
	return s.bet.Ante(seat)
}

func (s *Strategy) DecideAction(seat game.SeatView, upCard deck.Card, hand game.HandView) game.Action {
	return s.action.Action(seat, upCard, hand)
}

func (s *Strategy) DecideInsurance(seat game.SeatView, hand game.HandView) bool {
	return false
}

// OnEvent forwards table events to policies that observe the table.
func (s *Strategy) OnEvent(event game.GameEvent) {
	if sub, ok := s.bet.(game.EventSubscriber); ok {
		sub.OnEvent(event)
	}
	if sub, ok := s.action.(game.EventSubscriber); ok {
		sub.OnEvent(event)
	}
}
