package game

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/deck"
	"github.com/stretchr/testify/require"
)

// testTableOption configures test table creation
type testTableOption func(*testTableBuilder)

type testTableBuilder struct {
	config  TableConfig
	players []string
	chips   []int
	bus     *EventBus
}

func withSeed(seed int64) testTableOption {
	return func(b *testTableBuilder) { b.config.Seed = seed }
}

func withBlinds(small, big int) testTableOption {
	return func(b *testTableBuilder) {
		b.config.SmallBlind = small
		b.config.BigBlind = big
	}
}

func withPlayers(names ...string) testTableOption {
	return func(b *testTableBuilder) { b.players = names }
}

func withChips(chips ...int) testTableOption {
	return func(b *testTableBuilder) { b.chips = chips }
}

func withEventBus(bus *EventBus) testTableOption {
	return func(b *testTableBuilder) { b.bus = bus }
}

// newTestTable creates a 5/10 table with 1000 chip stacks for alice, bob
// and charlie unless told otherwise.
func newTestTable(t *testing.T, opts ...testTableOption) *Table {
	t.Helper()

	b := &testTableBuilder{
		config: TableConfig{
			SmallBlind:    5,
			BigBlind:      10,
			MaxSeats:      6,
			StartingChips: 1000,
			Seed:          42,
		},
		players: []string{"alice", "bob", "charlie"},
	}
	for _, opt := range opts {
		opt(b)
	}

	table, err := NewTable(b.config, b.bus)
	require.NoError(t, err)
	for i, name := range b.players {
		chips := 0
		if i < len(b.chips) {
			chips = b.chips[i]
		}
		_, err := table.AddPlayer(name, chips)
		require.NoError(t, err)
	}
	return table
}

// stackedDeck returns a deck dealing the given cards first. Hole cards are
// dealt one at a time starting left of the button.
func stackedDeck(t *testing.T, cards string) *deck.Deck {
	t.Helper()
	d, err := deck.Stacked(deck.MustParseCards(cards))
	require.NoError(t, err)
	return d
}

func act(t *testing.T, table *Table, name string, action Action, amount int) {
	t.Helper()
	require.NoError(t, table.ProcessAction(name, action, amount))
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// scriptedAgent plays a fixed sequence of decisions, then checks or folds.
type scriptedAgent struct {
	decisions []Decision
}

func (a *scriptedAgent) MakeDecision(_ context.Context, _ TableState, valid []ValidAction) Decision {
	if len(a.decisions) > 0 {
		d := a.decisions[0]
		a.decisions = a.decisions[1:]
		return d
	}
	for _, v := range valid {
		if v.Action == Check {
			return Decision{Action: Check}
		}
	}
	return Decision{Action: Fold}
}

// passiveAgent always checks or calls.
var passiveAgent = AgentFunc(func(_ context.Context, _ TableState, valid []ValidAction) Decision {
	for _, v := range valid {
		if v.Action == Check || v.Action == Call {
			return Decision{Action: v.Action, Amount: v.MinAmount}
		}
	}
	return Decision{Action: Fold}
})

// shoveAgent always moves all in.
var shoveAgent = AgentFunc(func(_ context.Context, _ TableState, valid []ValidAction) Decision {
	for _, v := range valid {
		if v.Action == AllIn {
			return Decision{Action: AllIn}
		}
	}
	return Decision{Action: Check}
})

// randomAgent picks a uniformly random legal action.
func randomAgent(rng *rand.Rand) Agent {
	return AgentFunc(func(_ context.Context, _ TableState, valid []ValidAction) Decision {
		v := valid[rng.IntN(len(valid))]
		amount := v.MinAmount
		if v.MaxAmount > v.MinAmount {
			amount += rng.IntN(v.MaxAmount - v.MinAmount + 1)
		}
		return Decision{Action: v.Action, Amount: amount}
	})
}

func newTestEngine(t *testing.T, seed int64, agents map[string]Agent, names ...string) *Engine {
	t.Helper()

	table, err := NewTable(TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 6, StartingChips: 1000, Seed: seed}, nil)
	require.NoError(t, err)
	engine := NewEngine(table, testLogger())
	for _, name := range names {
		require.NoError(t, engine.Sit(name, 0, agents[name]))
	}
	return engine
}

func totalChips(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Chips
	}
	return total
}
