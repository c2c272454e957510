package game

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/lox/pokertable/internal/deck"
)

// HandRecord is the complete history of one hand: enough to audit it and
// to replay it action by action.
type HandRecord struct {
	HandNumber int            `json:"hand_number"`
	HandID     string         `json:"hand_id"`
	Seed       int64          `json:"seed"`
	StartedAt  time.Time      `json:"started_at"`
	SmallBlind int            `json:"small_blind"`
	BigBlind   int            `json:"big_blind"`
	Button     int            `json:"button"`
	Seats      []SeatSnapshot `json:"seats"`
	Deck       []deck.Card    `json:"deck"`
	Board      []deck.Card    `json:"board"`
	Actions    []ActionRecord `json:"actions"`
	Showdown   []ShowdownHand `json:"showdown,omitempty"`
	Result     *GameResult    `json:"result,omitempty"`
}

// Seat returns the starting snapshot of the named seat.
func (r HandRecord) Seat(name string) (SeatSnapshot, bool) {
	for _, s := range r.Seats {
		if s.Name == name {
			return s, true
		}
	}
	return SeatSnapshot{}, false
}

// HandHistory is an EventListener that records every hand played on a
// table. Completed hands are passed to the optional onHand callback.
type HandHistory struct {
	mu      sync.Mutex
	current *HandRecord
	hands   []HandRecord
	onHand  func(HandRecord)
}

// NewHandHistory creates a hand history. onHand may be nil.
func NewHandHistory(onHand func(HandRecord)) *HandHistory {
	return &HandHistory{onHand: onHand}
}

// OnEvent implements EventListener
func (h *HandHistory) OnEvent(event Event) {
	h.mu.Lock()

	switch e := event.(type) {
	case HandStartEvent:
		h.current = &HandRecord{
			HandNumber: e.HandNumber,
			HandID:     e.HandID,
			Seed:       e.Seed,
			StartedAt:  e.Timestamp(),
			SmallBlind: e.SmallBlind,
			BigBlind:   e.BigBlind,
			Button:     e.Button,
			Seats:      slices.Clone(e.Seats),
			Deck:       slices.Clone(e.Deck),
		}
	case StreetDealtEvent:
		if h.current != nil {
			h.current.Board = slices.Clone(e.Board)
		}
	case PlayerActionEvent:
		if h.current != nil {
			h.current.Actions = append(h.current.Actions, e.Record)
		}
	case ShowdownEvent:
		if h.current != nil {
			h.current.Showdown = slices.Clone(e.Hands)
		}
	case PotAwardEvent:
		if h.current == nil {
			break
		}
		result := e.Result
		result.Stacks = maps.Clone(e.Result.Stacks)
		h.current.Result = &result
		rec := *h.current
		h.hands = append(h.hands, rec)
		h.current = nil

		h.mu.Unlock()
		if h.onHand != nil {
			h.onHand(rec)
		}
		return
	}

	h.mu.Unlock()
}

// Hands returns every completed hand, oldest first.
func (h *HandHistory) Hands() []HandRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.hands)
}

// Last returns the most recent completed hand.
func (h *HandHistory) Last() (HandRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hands) == 0 {
		return HandRecord{}, false
	}
	return h.hands[len(h.hands)-1], true
}

// Replay rebuilds the table from a recorded hand, deals the recorded cards
// and re-applies the recorded actions. It fails with ErrReplayMismatch if
// the replayed hand diverges from the record, including its final stacks.
// Listeners receive the replayed hand's events.
func Replay(rec HandRecord, listeners ...EventListener) (*GameResult, error) {
	bus := NewEventBus()
	for _, l := range listeners {
		bus.Subscribe(l)
	}

	table, err := NewTable(TableConfig{
		SmallBlind: rec.SmallBlind,
		BigBlind:   rec.BigBlind,
		MaxSeats:   max(len(rec.Seats), 2),
	}, bus)
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}
	for _, seat := range rec.Seats {
		if _, err := table.AddPlayer(seat.Name, seat.Chips); err != nil {
			return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
		}
	}

	d, err := deck.NewDeckFromCards(rec.Deck)
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}
	err = table.StartNewHand(
		WithDeck(d),
		WithButton(rec.Button),
		WithHandNumber(rec.HandNumber),
		WithHandID(rec.HandID),
	)
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}

	for _, seat := range rec.Seats {
		p := table.Player(seat.Name)
		if !slices.Equal(p.HoleCards, seat.HoleCards) {
			return nil, fmt.Errorf("%w: %s dealt %s, recorded %s", ErrReplayMismatch,
				seat.Name, deck.FormatCards(p.HoleCards), deck.FormatCards(seat.HoleCards))
		}
	}

	var pending []ActionRecord
	for _, a := range rec.Actions {
		if !a.Action.IsBlind() {
			pending = append(pending, a)
		}
	}

	next := 0
	err = playOut(table, func(p *Player) error {
		if next >= len(pending) {
			return fmt.Errorf("%w: %s to act but the record has no more actions", ErrReplayMismatch, p.Name)
		}
		a := pending[next]
		next++
		if a.Player != p.Name {
			return fmt.Errorf("%w: %s to act, recorded %s", ErrReplayMismatch, p.Name, a)
		}
		return table.ProcessAction(a.Player, a.Action, a.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}
	if next != len(pending) {
		return nil, fmt.Errorf("%w: %d recorded actions not replayed", ErrReplayMismatch, len(pending)-next)
	}
	if log := table.ActionLog(); !slices.Equal(log, rec.Actions) {
		return nil, fmt.Errorf("%w: action log differs from the record", ErrReplayMismatch)
	}

	winners, err := table.Showdown()
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}
	result, err := table.AwardPot(winners)
	if err != nil {
		return nil, fmt.Errorf("replay hand %d: %w", rec.HandNumber, err)
	}

	if rec.Result != nil && !maps.Equal(result.Stacks, rec.Result.Stacks) {
		return result, fmt.Errorf("%w: final stacks %v, recorded %v", ErrReplayMismatch, result.Stacks, rec.Result.Stacks)
	}
	return result, nil
}
