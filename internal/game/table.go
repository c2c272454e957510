package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/gameid"
	"github.com/lox/pokertable/internal/randutil"
)

// TableConfig holds the fixed parameters of a table.
type TableConfig struct {
	SmallBlind    int
	BigBlind      int
	MaxSeats      int
	StartingChips int   // Stack used when a seat is added without one
	Seed          int64 // Table seed; each hand's shuffle derives from it
}

// DefaultTableConfig returns a six-max 5/10 table with 1000 chip stacks.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		SmallBlind:    5,
		BigBlind:      10,
		MaxSeats:      6,
		StartingChips: 1000,
	}
}

// Validate checks the config for values no hand could be played with.
func (c TableConfig) Validate() error {
	switch {
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: small blind must be positive", ErrInvalidConfig)
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("%w: big blind %d below small blind %d", ErrInvalidConfig, c.BigBlind, c.SmallBlind)
	case c.MaxSeats < 2 || c.MaxSeats > 10:
		return fmt.Errorf("%w: max seats must be 2-10, got %d", ErrInvalidConfig, c.MaxSeats)
	case c.StartingChips < 0:
		return fmt.Errorf("%w: negative starting chips", ErrInvalidConfig)
	}
	return nil
}

// Table represents a poker table and owns all state for the hand in play.
// A Table is not safe for concurrent use; Engine serializes access.
type Table struct {
	config   TableConfig
	eventBus *EventBus

	players    []*Player // Seat order, which is also turn order
	button     int       // Seat index of the dealer button, -1 before the first hand
	sbSeat     int
	bbSeat     int
	handNumber int
	handID     string
	inHand     bool

	deck       *deck.Deck
	street     Street
	currentBet int
	pot        int
	community  []deck.Card
	actionOn   int // Seat index of the player to act, -1 when nobody is
	startTotal int // Chips on the table when the hand started

	actionLog []ActionRecord
	showdown  map[string]evaluator.Hand
	result    *GameResult
}

// NewTable creates a new table. A nil eventBus gets a private bus.
func NewTable(config TableConfig, eventBus *EventBus) (*Table, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &Table{
		config:   config,
		eventBus: eventBus,
		players:  make([]*Player, 0, config.MaxSeats),
		button:   -1,
		sbSeat:   -1,
		bbSeat:   -1,
		actionOn: -1,
	}, nil
}

// AddPlayer seats a new player in the next free seat. A chips value of
// zero uses the configured starting stack.
func (t *Table) AddPlayer(name string, chips int) (*Player, error) {
	if t.inHand {
		return nil, ErrHandInProgress
	}
	if len(t.players) >= t.config.MaxSeats {
		return nil, fmt.Errorf("%w: %d seats", ErrTableFull, t.config.MaxSeats)
	}
	if t.Player(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
	}
	if chips < 0 {
		return nil, fmt.Errorf("%w: negative stack for %q", ErrInvalidConfig, name)
	}
	if chips == 0 {
		chips = t.config.StartingChips
	}

	p := NewPlayer(name, len(t.players), chips)
	t.players = append(t.players, p)
	return p, nil
}

// HandOption configures how StartNewHand sets up a hand.
type HandOption func(*handSetup)

type handSetup struct {
	deck       *deck.Deck
	button     int
	handNumber int
	handID     string
}

// WithDeck deals the hand from d instead of a fresh seeded shuffle.
func WithDeck(d *deck.Deck) HandOption {
	return func(s *handSetup) { s.deck = d }
}

// WithButton places the button on seat instead of advancing it.
func WithButton(seat int) HandOption {
	return func(s *handSetup) { s.button = seat }
}

// WithHandNumber overrides the hand counter for this hand.
func WithHandNumber(n int) HandOption {
	return func(s *handSetup) { s.handNumber = n }
}

// WithHandID overrides the generated hand ID.
func WithHandID(id string) HandOption {
	return func(s *handSetup) { s.handID = id }
}

// StartNewHand advances the button, resets per-hand state, shuffles, deals
// hole cards and posts blinds. On return the first preflop decision is
// pending (see ActionOn).
func (t *Table) StartNewHand(opts ...HandOption) error {
	if t.inHand {
		return ErrHandInProgress
	}

	active := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			active++
		}
	}
	if active < 2 {
		return fmt.Errorf("%w: %d", ErrNotEnoughPlayers, active)
	}

	setup := handSetup{button: -1}
	for _, opt := range opts {
		opt(&setup)
	}

	for _, p := range t.players {
		p.resetForHand()
	}

	if setup.button >= 0 {
		if setup.button >= len(t.players) || !t.players[setup.button].Active {
			return fmt.Errorf("%w: button seat %d is not active", ErrInvalidConfig, setup.button)
		}
		t.button = setup.button
	} else {
		t.button = t.nextActiveSeat(t.button)
	}

	if setup.handNumber > 0 {
		t.handNumber = setup.handNumber
	} else {
		t.handNumber++
	}
	t.handID = setup.handID
	if t.handID == "" {
		t.handID = gameid.Generate()
	}

	t.deck = setup.deck
	if t.deck == nil {
		t.deck = deck.NewDeck(randutil.ForHand(t.config.Seed, t.handNumber))
	}

	t.inHand = true
	t.street = Preflop
	t.currentBet = 0
	t.pot = 0
	t.community = nil
	t.actionLog = nil
	t.showdown = nil
	t.result = nil
	t.startTotal = t.ChipTotal()

	deckOrder := t.deck.Order()
	if err := t.dealHoleCards(); err != nil {
		t.inHand = false
		return err
	}

	t.eventBus.Publish(HandStartEvent{
		HandNumber: t.handNumber,
		HandID:     t.handID,
		Seed:       randutil.HandSeed(t.config.Seed, t.handNumber),
		Button:     t.button,
		SmallBlind: t.config.SmallBlind,
		BigBlind:   t.config.BigBlind,
		Seats:      t.seatSnapshots(),
		Deck:       deckOrder,
		timestamp:  time.Now(),
	})

	t.postBlinds()

	// Preflop action starts left of the big blind. Heads-up that is the
	// button, who posted the small blind.
	t.actionOn = -1
	if !t.bettingClosed() {
		if next := t.NextPlayer(t.bbSeat); next != nil {
			t.actionOn = next.Seat
		}
	}
	return nil
}

// dealHoleCards deals two cards to each active seat, one at a time,
// starting left of the button.
func (t *Table) dealHoleCards() error {
	for round := 0; round < 2; round++ {
		seat := t.button
		for range t.players {
			seat = (seat + 1) % len(t.players)
			p := t.players[seat]
			if !p.Active {
				continue
			}
			card, ok := t.deck.Deal()
			if !ok {
				return fmt.Errorf("%w: deck exhausted dealing hole cards", ErrInvalidConfig)
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

func (t *Table) postBlinds() {
	active := t.activeCount()
	if active == 2 {
		t.sbSeat = t.button
	} else {
		t.sbSeat = t.nextActiveSeat(t.button)
	}
	t.bbSeat = t.nextActiveSeat(t.sbSeat)

	t.postBlind(t.players[t.sbSeat], SmallBlind, t.config.SmallBlind)
	t.postBlind(t.players[t.bbSeat], BigBlind, t.config.BigBlind)
}

func (t *Table) postBlind(p *Player, action Action, amount int) {
	posted := p.commit(amount)
	t.pot += posted
	if p.BetInRound > t.currentBet {
		t.currentBet = p.BetInRound
	}
	t.record(p, action, posted)
}

// nextActiveSeat returns the first active seat after from, wrapping around.
func (t *Table) nextActiveSeat(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		seat := ((from+i)%n + n) % n
		if t.players[seat].Active {
			return seat
		}
	}
	return -1
}

func (t *Table) activeCount() int {
	count := 0
	for _, p := range t.players {
		if p.Active {
			count++
		}
	}
	return count
}

func (t *Table) seatSnapshots() []SeatSnapshot {
	seats := make([]SeatSnapshot, len(t.players))
	for i, p := range t.players {
		seats[i] = SeatSnapshot{
			Name:      p.Name,
			Seat:      p.Seat,
			Chips:     p.Chips,
			Active:    p.Active,
			HoleCards: slices.Clone(p.HoleCards),
		}
	}
	return seats
}

// record appends to the action log and publishes the action.
func (t *Table) record(p *Player, action Action, amount int) {
	rec := ActionRecord{
		Hand:       t.handNumber,
		Street:     t.street,
		Player:     p.Name,
		Action:     action,
		Amount:     amount,
		PotAfter:   t.pot,
		ChipsAfter: p.Chips,
	}
	t.actionLog = append(t.actionLog, rec)
	t.eventBus.Publish(PlayerActionEvent{Record: rec, timestamp: time.Now()})
}

// Config returns the table configuration
func (t *Table) Config() TableConfig { return t.config }

// EventBus returns the bus the table publishes on
func (t *Table) EventBus() *EventBus { return t.eventBus }

// Players returns the seats in order. The slice is a copy; the players are
// the table's own.
func (t *Table) Players() []*Player { return slices.Clone(t.players) }

// Player returns the player with the given name, or nil.
func (t *Table) Player(name string) *Player {
	for _, p := range t.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Button returns the seat index of the dealer button, -1 before any hand.
func (t *Table) Button() int { return t.button }

// BlindSeats returns the seats that posted the small and big blind.
func (t *Table) BlindSeats() (small, big int) { return t.sbSeat, t.bbSeat }

// HandNumber returns the number of the current or last hand.
func (t *Table) HandNumber() int { return t.handNumber }

// HandID returns the ID of the current or last hand.
func (t *Table) HandID() string { return t.handID }

// InHand reports whether a hand is being played.
func (t *Table) InHand() bool { return t.inHand }

// Street returns the current street
func (t *Table) Street() Street { return t.street }

// CurrentBet returns the highest wager on the current street.
func (t *Table) CurrentBet() int { return t.currentBet }

// Pot returns the chips wagered this hand and not yet awarded.
func (t *Table) Pot() int { return t.pot }

// Community returns a copy of the community cards.
func (t *Table) Community() []deck.Card { return slices.Clone(t.community) }

// ActionLog returns a copy of the hand's action log.
func (t *Table) ActionLog() []ActionRecord { return slices.Clone(t.actionLog) }

// LastResult returns the result of the last completed hand, or nil.
func (t *Table) LastResult() *GameResult { return t.result }

// ActionOn returns the player to act, or nil when no decision is pending.
func (t *Table) ActionOn() *Player {
	if t.actionOn < 0 {
		return nil
	}
	return t.players[t.actionOn]
}

// ChipTotal returns the chips in stacks plus the pot.
func (t *Table) ChipTotal() int {
	total := t.pot
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// ActiveCount returns the number of seats that still have chips.
func (t *Table) ActiveCount() int {
	count := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			count++
		}
	}
	return count
}

// InHandCount returns the number of seats still contesting the pot.
func (t *Table) InHandCount() int {
	count := 0
	for _, p := range t.players {
		if p.InHand() {
			count++
		}
	}
	return count
}

func (t *Table) String() string {
	actor := "none"
	if p := t.ActionOn(); p != nil {
		actor = p.Name
	}
	return fmt.Sprintf("Hand #%d - %s - Pot: %d - Action on: %s", t.handNumber, t.street, t.pot, actor)
}
