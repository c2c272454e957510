package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func stateFor(street game.Street, hole, board string, currentBet, betInRound, pot int) game.TableState {
	var community []deck.Card
	if board != "" {
		community = deck.MustParseCards(board)
	}
	return game.TableState{
		HandNumber: 1,
		Street:     street,
		Pot:        pot,
		CurrentBet: currentBet,
		MinRaiseTo: max(10, 2*currentBet),
		SmallBlind: 5,
		BigBlind:   10,
		Community:  community,
		Players: []game.PlayerState{
			{Name: "hero", Seat: 0, Chips: 1000, BetInRound: betInRound, Active: true, HoleCards: deck.MustParseCards(hole)},
			{Name: "villain", Seat: 1, Chips: 1000, BetInRound: currentBet, Active: true},
		},
		ActingSeat: 0,
	}
}

var (
	facingBet = []game.ValidAction{
		{Action: game.Fold},
		{Action: game.Call, MinAmount: 10, MaxAmount: 10},
		{Action: game.Raise, MinAmount: 20, MaxAmount: 1000},
		{Action: game.AllIn, MinAmount: 1000, MaxAmount: 1000},
	}
	checkable = []game.ValidAction{
		{Action: game.Fold},
		{Action: game.Check},
		{Action: game.Raise, MinAmount: 10, MaxAmount: 1000},
		{Action: game.AllIn, MinAmount: 1000, MaxAmount: 1000},
	}
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds {
		agent, err := New(kind, randutil.New(1), testLogger())
		require.NoError(t, err, kind)
		assert.NotNil(t, agent, kind)
	}

	_, err := New("shark", randutil.New(1), testLogger())
	assert.Error(t, err)
}

func TestFoldBot(t *testing.T) {
	t.Parallel()

	b := NewFoldBot(testLogger())
	ctx := context.Background()

	d := b.MakeDecision(ctx, stateFor(game.Preflop, "As Ad", "", 10, 0, 15), facingBet)
	assert.Equal(t, game.Fold, d.Action)

	d = b.MakeDecision(ctx, stateFor(game.Flop, "7c 2d", "Ks 9h 4c", 0, 0, 20), checkable)
	assert.Equal(t, game.Check, d.Action)
}

func TestCallBot(t *testing.T) {
	t.Parallel()

	b := NewCallBot(testLogger())
	ctx := context.Background()

	d := b.MakeDecision(ctx, stateFor(game.Flop, "7c 2d", "Ks 9h 4c", 10, 0, 30), facingBet)
	assert.Equal(t, game.Call, d.Action)
	assert.Equal(t, 10, d.Amount)

	d = b.MakeDecision(ctx, stateFor(game.Flop, "7c 2d", "Ks 9h 4c", 0, 0, 20), checkable)
	assert.Equal(t, game.Check, d.Action)

	t.Run("short stack shoves", func(t *testing.T) {
		state := stateFor(game.Preflop, "7c 2d", "", 10, 0, 15)
		state.Players[0].Chips = 50
		valid := []game.ValidAction{
			{Action: game.Fold},
			{Action: game.Call, MinAmount: 10, MaxAmount: 10},
			{Action: game.AllIn, MinAmount: 50, MaxAmount: 50},
		}
		d := b.MakeDecision(ctx, state, valid)
		assert.Equal(t, game.AllIn, d.Action)
		assert.Equal(t, 50, d.Amount)
	})
}

func TestRandBotPicksLegalActions(t *testing.T) {
	t.Parallel()

	b := NewRandBot(randutil.New(7), testLogger())
	state := stateFor(game.Preflop, "7c 2d", "", 10, 0, 15)

	seen := make(map[game.Action]bool)
	for range 500 {
		d := b.MakeDecision(context.Background(), state, facingBet)
		seen[d.Action] = true

		v, ok := lookup(d.Action, facingBet)
		require.True(t, ok, "action %s not offered", d.Action)
		if d.Action == game.Raise {
			assert.GreaterOrEqual(t, d.Amount, v.MinAmount)
			assert.LessOrEqual(t, d.Amount, v.MaxAmount)
		}
	}
	assert.Len(t, seen, len(facingBet), "every action should come up eventually")
}

func TestRandBotIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewRandBot(randutil.New(99), testLogger())
	b := NewRandBot(randutil.New(99), testLogger())
	state := stateFor(game.Preflop, "7c 2d", "", 10, 0, 15)

	for range 50 {
		assert.Equal(t,
			a.MakeDecision(context.Background(), state, facingBet),
			b.MakeDecision(context.Background(), state, facingBet))
	}
}

func TestPreflopTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hole string
		want handTier
	}{
		{"As Ad", tierPremium},
		{"Th Tc", tierPremium},
		{"Ah Ks", tierPremium},
		{"Kh Qh", tierPremium},
		{"Kh Qd", tierPlayable},
		{"5s 5d", tierPlayable},
		{"Jc Tc", tierPlayable},
		{"Ah 4h", tierPlayable},
		{"8d 7d", tierPlayable},
		{"8d 7s", tierTrash},
		{"7c 2d", tierTrash},
		{"Ah 4d", tierTrash},
	}

	for _, tt := range tests {
		t.Run(tt.hole, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preflopTier(deck.MustParseCards(tt.hole)))
		})
	}
}

func TestTAGBot(t *testing.T) {
	t.Parallel()

	// A nil rng keeps the bot from bluffing.
	b := NewTAGBot(nil, testLogger())

	tests := []struct {
		name  string
		state game.TableState
		valid []game.ValidAction
		want  game.Action
	}{
		{"premium raises", stateFor(game.Preflop, "As Ad", "", 10, 0, 15), facingBet, game.Raise},
		{"playable calls", stateFor(game.Preflop, "5s 5d", "", 10, 0, 15), facingBet, game.Call},
		{"playable folds to a big raise", stateFor(game.Preflop, "5s 5d", "", 60, 0, 75), facingBet, game.Fold},
		{"trash folds", stateFor(game.Preflop, "7c 2d", "", 10, 0, 15), facingBet, game.Fold},
		{"trash checks the big blind", stateFor(game.Preflop, "7c 2d", "", 10, 10, 20), checkable, game.Check},
		{"two pair bets", stateFor(game.Flop, "Ks 9d", "Kh 9h 4c", 0, 0, 20), checkable, game.Raise},
		{"one pair calls", stateFor(game.Turn, "Ks 2d", "Kh 9h 4c 7s", 10, 0, 40), facingBet, game.Call},
		{"one pair folds to overbet", stateFor(game.Turn, "Ks 2d", "Kh 9h 4c 7s", 100, 0, 40), facingBet, game.Fold},
		{"air checks", stateFor(game.River, "7c 2d", "Ks 9h 4c Jd Qs", 0, 0, 40), checkable, game.Check},
		{"air folds", stateFor(game.River, "7c 2d", "Ks 9h 4c Jd Qs", 10, 0, 50), facingBet, game.Fold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := b.MakeDecision(context.Background(), tt.state, tt.valid)
			assert.Equal(t, tt.want, d.Action, d.Reasoning)
			assert.NotEmpty(t, d.Reasoning)
		})
	}
}

func TestTAGBotRaiseUsesMinimum(t *testing.T) {
	t.Parallel()

	b := NewTAGBot(nil, testLogger())
	d := b.MakeDecision(context.Background(), stateFor(game.Preflop, "Kc Kd", "", 10, 0, 15), facingBet)
	require.Equal(t, game.Raise, d.Action)
	assert.Equal(t, 20, d.Amount)
}

func TestTAGBotReasoningNamesHand(t *testing.T) {
	t.Parallel()

	b := NewTAGBot(nil, testLogger())
	state := stateFor(game.Flop, "Ks 9d", "Kh 9h 4c", 0, 0, 20)
	d := b.MakeDecision(context.Background(), state, checkable)

	hand := evaluator.MustEvaluate(deck.MustParseCards("Ks 9d Kh 9h 4c"))
	assert.Contains(t, d.Reasoning, hand.Describe())
}

func TestBotsPlayFullGame(t *testing.T) {
	t.Parallel()

	tbl, err := game.NewTable(game.TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 4, StartingChips: 500, Seed: 3}, nil)
	require.NoError(t, err)
	engine := game.NewEngine(tbl, testLogger())

	rng := randutil.New(3)
	for i, kind := range Kinds {
		agent, err := New(kind, rng, testLogger())
		require.NoError(t, err)
		require.NoError(t, engine.Sit(kind, 0, agent), "seat %d", i)
	}

	_, err = engine.RunTournament(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, 500*len(Kinds), engine.Table().ChipTotal())
}
