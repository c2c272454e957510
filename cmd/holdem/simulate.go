package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/config"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// SimulateCmd runs independent tables concurrently
type SimulateCmd struct {
	Config   string `short:"c" default:"holdem.hcl" help:"Path to the HCL config (defaults are used if missing)"`
	Tables   int    `short:"n" default:"8" help:"Number of tables to run"`
	Parallel int    `short:"j" default:"4" help:"Tables to run at once"`
	Hands    int    `help:"Override the number of hands per table (0 = config value)"`
	Seed     *int64 `help:"Base seed; table i uses seed+i"`
	Debug    bool   `help:"Enable debug logging"`
}

// tableResult is the outcome of one simulated table.
type tableResult struct {
	Table     int
	Seed      int64
	Standings []game.Standing
	Stats     *statistics.Tracker
}

// seatSummary aggregates one seat across all tables.
type seatSummary struct {
	Name  string
	Chips int
	Wins  int
	Stats statistics.Statistics
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(os.Stderr, cfg.Runner.LogLevel, c.Debug)

	if c.Hands > 0 {
		cfg.Runner.Hands = c.Hands
	}
	switch {
	case c.Seed != nil:
		cfg.Table.Seed = *c.Seed
	case cfg.Table.Seed == 0:
		cfg.Table.Seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", cfg.Table.Seed)
	}
	// Per-table histories would overwrite each other.
	cfg.Runner.HistoryDir = ""
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	start := time.Now()
	results, err := simulate(ctx, cfg, c.Tables, c.Parallel, logger)
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "tables", len(results), "duration", time.Since(start))

	fmt.Println(renderSummary(summarize(results)))
	return nil
}

// simulate plays tables copies of cfg concurrently, at most parallel at a
// time. Table i is seeded with cfg.Table.Seed+i.
func simulate(ctx context.Context, cfg *config.Config, tables, parallel int, logger *log.Logger) ([]tableResult, error) {
	if tables <= 0 {
		return nil, fmt.Errorf("tables must be positive, got %d", tables)
	}

	results := make([]tableResult, tables)
	expected := 0
	for _, seat := range cfg.Seats {
		expected += cmp.Or(seat.Chips, cfg.Table.StartingChips)
	}

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i := range tables {
		tableCfg := *cfg
		tableCfg.Table.Seed = cfg.Table.Seed + int64(i)

		g.Go(func() error {
			tracker := statistics.NewTracker()
			standings, err := play(ctx, &tableCfg, logger.With("table", i), tracker)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}

			total := 0
			for _, s := range standings {
				total += s.Chips
			}
			if total != expected {
				return fmt.Errorf("table %d: %w: have %d chips, want %d", i, game.ErrChipConservation, total, expected)
			}

			results[i] = tableResult{Table: i, Seed: tableCfg.Table.Seed, Standings: standings, Stats: tracker}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// summarize totals chips per seat and counts the tables each seat finished
// ahead on.
func summarize(results []tableResult) []seatSummary {
	byName := make(map[string]*seatSummary)
	var order []string
	merged := statistics.NewTracker()
	for _, r := range results {
		if r.Stats != nil {
			merged.Merge(r.Stats)
		}
		for i, s := range r.Standings {
			sum, ok := byName[s.Name]
			if !ok {
				sum = &seatSummary{Name: s.Name}
				byName[s.Name] = sum
				order = append(order, s.Name)
			}
			sum.Chips += s.Chips
			if i == 0 {
				sum.Wins++
			}
		}
	}

	summaries := make([]seatSummary, 0, len(order))
	for _, name := range order {
		sum := byName[name]
		sum.Stats, _ = merged.Stats(name)
		summaries = append(summaries, *sum)
	}
	slices.SortStableFunc(summaries, func(a, b seatSummary) int {
		return cmp.Compare(b.Chips, a.Chips)
	})
	return summaries
}

func renderSummary(summaries []seatSummary) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Muted).
		Headers("PLAYER", "TOTAL CHIPS", "TABLES WON", "HANDS", "BB/100", "95% CI")
	for _, s := range summaries {
		lo, hi := s.Stats.ConfidenceInterval95()
		t.Row(s.Name,
			strconv.Itoa(s.Chips),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Stats.Hands),
			fmt.Sprintf("%+.1f", s.Stats.BBPer100()),
			fmt.Sprintf("[%+.1f, %+.1f]", lo*100, hi*100))
	}
	return t.String()
}
