package game

import (
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/statistics"
)

// EventType represents a table event type with type safety
type EventType string

// EventType constants for table events
const (
	EventTypeCardExposed  EventType = "card_exposed"
	EventTypeShoeShuffled EventType = "shoe_shuffled"
	EventTypeHandSettled  EventType = "hand_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens at the table that observers
// may react to.
type GameEvent interface {
	EventType() EventType
}

// CardExposedEvent is published whenever a card is turned face up, including
// the dealer's hole card when it is revealed.
type CardExposedEvent struct {
	// Card is a copy; observers cannot reach the shoe through it.
	Card deck.Card
}

func (e CardExposedEvent) EventType() EventType { return EventTypeCardExposed }

// ShoeShuffledEvent is published after the discards are shuffled back into
// the shoe.
type ShoeShuffledEvent struct {
	Cards     int
	Threshold int
}

func (e ShoeShuffledEvent) EventType() EventType { return EventTypeShoeShuffled }

// HandSettledEvent is published when a hand's outcome is scored.
type HandSettledEvent struct {
	Player    string
	Outcome   statistics.Outcome
	Situation statistics.Situation
	Bet       int
	// Paid is the amount returned to the player, stake included.
	Paid int
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
