package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/config"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
)

// buildEngine creates a table from cfg and seats its bots. Bots draw from a
// stream seeded separately from the table's shuffles.
func buildEngine(cfg *config.Config, clock quartz.Clock, logger *log.Logger) (*game.Engine, error) {
	tbl, err := game.NewTable(cfg.TableConfig(), nil)
	if err != nil {
		return nil, err
	}
	engine := game.NewEngine(tbl, logger)

	rng := randutil.New(^cfg.Table.Seed)
	for _, seat := range cfg.Seats {
		agent, err := bot.New(seat.Bot, rng, logger.With("seat", seat.Name))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}

		timeout, err := seat.TimeoutDuration()
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		if timeout > 0 {
			agent = bot.WithTimeout(agent, timeout, clock, logger)
		}

		if err := engine.Sit(seat.Name, seat.Chips, agent); err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	return engine, nil
}
