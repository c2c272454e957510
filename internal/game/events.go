package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeStreetDealt  EventType = "street_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeShowdown     EventType = "showdown"
	EventTypePotAward     EventType = "pot_award"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything published by a table after a state transition.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// SeatSnapshot is the state of a seat when a hand starts, before blinds.
type SeatSnapshot struct {
	Name      string      `json:"name"`
	Seat      int         `json:"seat"`
	Chips     int         `json:"chips"`
	Active    bool        `json:"active"`
	HoleCards []deck.Card `json:"hole_cards,omitempty"`
}

// HandStartEvent is published after hole cards are dealt and before blinds
// are posted.
type HandStartEvent struct {
	HandNumber int
	HandID     string
	Seed       int64
	Button     int
	SmallBlind int
	BigBlind   int
	Seats      []SeatSnapshot
	// Deck is the full card order for the hand, used to replay it.
	Deck      []deck.Card
	timestamp time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// StreetDealtEvent is published when community cards are revealed.
type StreetDealtEvent struct {
	HandNumber int
	Street     Street
	Cards      []deck.Card // Newly dealt cards
	Board      []deck.Card // All community cards after dealing
	timestamp  time.Time
}

func (e StreetDealtEvent) EventType() EventType { return EventTypeStreetDealt }
func (e StreetDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every accepted action, blinds included.
type PlayerActionEvent struct {
	Record    ActionRecord
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// ShowdownHand is a hand revealed at showdown.
type ShowdownHand struct {
	Player    string         `json:"player"`
	HoleCards []deck.Card    `json:"hole_cards"`
	Hand      evaluator.Hand `json:"hand"`
}

// ShowdownEvent is published when contested hands are evaluated.
type ShowdownEvent struct {
	HandNumber int
	Board      []deck.Card
	Hands      []ShowdownHand
	Winners    []string
	timestamp  time.Time
}

func (e ShowdownEvent) EventType() EventType { return EventTypeShowdown }
func (e ShowdownEvent) Timestamp() time.Time { return e.timestamp }

// PotAwardEvent is published once the pot has been distributed.
type PotAwardEvent struct {
	Result    GameResult
	timestamp time.Time
}

func (e PotAwardEvent) EventType() EventType { return EventTypePotAward }
func (e PotAwardEvent) Timestamp() time.Time { return e.timestamp }

// EventListener receives events published on an EventBus
type EventListener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to EventListener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventBus delivers events synchronously, in subscription order.
type EventBus struct {
	mu        sync.RWMutex
	listeners []EventListener
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe adds a listener to receive events
func (bus *EventBus) Subscribe(listener EventListener) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.listeners = append(bus.listeners, listener)
}

// Unsubscribe removes a listener. Listeners must be comparable.
func (bus *EventBus) Unsubscribe(listener EventListener) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, l := range bus.listeners {
		if l == listener {
			bus.listeners = slices.Delete(bus.listeners, i, i+1)
			return
		}
	}
}

// Publish sends an event to all listeners
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	listeners := slices.Clone(bus.listeners)
	bus.mu.RUnlock()

	for _, l := range listeners {
		l.OnEvent(event)
	}
}
