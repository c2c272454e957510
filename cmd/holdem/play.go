package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/config"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/handlog"
	"github.com/lox/pokertable/internal/statistics"
)

// PlayCmd plays a single table of bots
type PlayCmd struct {
	Config     string `short:"c" default:"holdem.hcl" help:"Path to the HCL config (defaults are used if missing)"`
	Hands      int    `help:"Override the number of hands to play (0 = config value)"`
	Seed       *int64 `help:"Override the table seed"`
	HistoryDir string `help:"Write each hand as JSON and PHH into this directory"`
	Quiet      bool   `short:"q" help:"Only print the final standings"`
	Debug      bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(os.Stderr, cfg.Runner.LogLevel, c.Debug)

	if c.Hands > 0 {
		cfg.Runner.Hands = c.Hands
	}
	if c.HistoryDir != "" {
		cfg.Runner.HistoryDir = c.HistoryDir
	}
	switch {
	case c.Seed != nil:
		cfg.Table.Seed = *c.Seed
	case cfg.Table.Seed == 0:
		cfg.Table.Seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", cfg.Table.Seed)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	tracker := statistics.NewTracker()
	listeners := []game.EventListener{tracker}
	if !c.Quiet {
		listeners = append(listeners, newEventPrinter(os.Stdout))
	}

	standings, err := play(ctx, cfg, logger, listeners...)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println(renderStandings(standings))
	fmt.Println(renderStats(tracker))
	return nil
}

// play runs the configured table to completion, publishing its events to
// listeners.
func play(ctx context.Context, cfg *config.Config, logger *log.Logger, listeners ...game.EventListener) ([]game.Standing, error) {
	engine, err := buildEngine(cfg, quartz.NewReal(), logger)
	if err != nil {
		return nil, err
	}

	for _, l := range listeners {
		engine.EventBus().Subscribe(l)
	}

	if cfg.Runner.HistoryDir != "" {
		store, err := handlog.NewStore(cfg.Runner.HistoryDir, "main", logger)
		if err != nil {
			return nil, err
		}
		engine.EventBus().Subscribe(game.NewHandHistory(store.OnHand))
		defer func() {
			written, failed := store.Stats()
			logger.Info("Hand histories written", "dir", store.Dir(), "hands", written, "failed", failed)
		}()
	}

	logger.Info("Starting table",
		"seats", len(cfg.Seats),
		"small_blind", cfg.Table.SmallBlind,
		"big_blind", cfg.Table.BigBlind,
		"hands", cfg.Runner.Hands,
		"seed", cfg.Table.Seed)

	return engine.RunTournament(ctx, cfg.Runner.Hands)
}
