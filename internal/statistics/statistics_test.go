package statistics

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.9))
	assert.Error(t, stats.Validate(), "no hands recorded")
}

func TestStatisticsSingleValue(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.5, WentToShowdown: true, PotBB: 10})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Equal(t, 250.0, stats.BBPer100())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.Equal(t, 2.5, stats.ShowdownBB)
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for _, r := range []HandResult{
		{NetBB: 1, WentToShowdown: false, PotBB: 1.5},
		{NetBB: -2, WentToShowdown: true, PotBB: 60},
		{NetBB: 3, WentToShowdown: true, PotBB: 12},
		{NetBB: -1, WentToShowdown: false, PotBB: 3},
		{NetBB: 4, WentToShowdown: false, PotBB: 80},
	} {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 1.0, stats.Mean(), 1e-9)
	// Sample variance of {1,-2,3,-1,4}: sum of squared deviations 26 over 4.
	assert.InDelta(t, 6.5, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(6.5), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(6.5)/math.Sqrt(5), stats.StdError(), 1e-9)
	assert.Equal(t, 1.0, stats.Median())
	assert.Equal(t, -2.0, stats.Percentile(0))
	assert.Equal(t, 4.0, stats.Percentile(1))
	assert.InDelta(t, -1.5, stats.Percentile(0.125), 1e-9)

	lo, hi := stats.ConfidenceInterval95()
	assert.Less(t, lo, stats.Mean())
	assert.Greater(t, hi, stats.Mean())

	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 2, stats.NonShowdownWins)
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, 4.0, stats.NonShowdownBB, 1e-9)
	assert.Equal(t, 80.0, stats.MaxPotBB)
	assert.Equal(t, 2, stats.BigPots)
	assert.InDelta(t, 2.0, stats.BigPotsBB, 1e-9)
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()

	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{{NetBB: 1}, {NetBB: -3, WentToShowdown: true}, {NetBB: 2, PotBB: 55}, {NetBB: 0.5}}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	assert.Equal(t, all.Hands, a.Hands)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
	assert.Equal(t, all.Median(), a.Median())
	assert.Equal(t, all.BigPots, a.BigPots)
	assert.NoError(t, a.Validate())
}

func TestStatisticsValidateDetectsCorruption(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1})
	stats.ShowdownBB += 5
	assert.Error(t, stats.Validate())

	stats = &Statistics{}
	stats.Add(HandResult{NetBB: 1})
	stats.Values = nil
	assert.Error(t, stats.Validate())
}

func TestTrackerRecordsTable(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	tbl, err := game.NewTable(game.TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 3, StartingChips: 500, Seed: 4}, nil)
	require.NoError(t, err)
	engine := game.NewEngine(tbl, logger)

	rng := randutil.New(4)
	for _, kind := range []string{"tag", "call", "random"} {
		agent, err := bot.New(kind, rng, logger)
		require.NoError(t, err)
		require.NoError(t, engine.Sit(kind, 0, agent))
	}

	tracker := NewTracker()
	engine.EventBus().Subscribe(tracker)
	standings, err := engine.RunTournament(context.Background(), 40)
	require.NoError(t, err)

	assert.Equal(t, []string{"call", "random", "tag"}, tracker.Seats())

	// Net results in big blinds sum to zero across seats, and each seat's
	// total matches its final stack.
	total := 0.0
	for _, s := range standings {
		stats, ok := tracker.Stats(s.Name)
		require.True(t, ok)
		require.NoError(t, stats.Validate())
		assert.InDelta(t, float64(s.Chips-500)/10, stats.AllBB, 1e-6, s.Name)
		total += stats.AllBB
	}
	assert.InDelta(t, 0, total, 1e-6)

	_, ok := tracker.Stats("nobody")
	assert.False(t, ok)
}

func TestTrackerMerge(t *testing.T) {
	t.Parallel()

	a, b := NewTracker(), NewTracker()
	feed := func(tr *Tracker, stacks map[string]int) {
		tr.OnEvent(game.HandStartEvent{BigBlind: 10, Seats: []game.SeatSnapshot{
			{Name: "x", Chips: 100, Active: true},
			{Name: "y", Chips: 100, Active: true},
			{Name: "z", Chips: 0, Active: false},
		}})
		tr.OnEvent(game.PotAwardEvent{Result: game.GameResult{Pot: 40, Stacks: stacks}})
	}
	feed(a, map[string]int{"x": 120, "y": 80})
	feed(b, map[string]int{"x": 90, "y": 110})

	a.Merge(b)
	a.Merge(a)

	x, ok := a.Stats("x")
	require.True(t, ok)
	assert.Equal(t, 2, x.Hands)
	assert.InDelta(t, 1.0, x.AllBB, 1e-9)
	assert.Equal(t, 1, x.NonShowdownWins)
	assert.Equal(t, []string{"x", "y"}, a.Seats(), "seats sitting out are not tracked")
}
