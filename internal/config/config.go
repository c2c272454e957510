// Package config loads table, seat and runner settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/game"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("invalid config")

// Config is the complete configuration for a table run
type Config struct {
	Table  TableSettings
	Seats  []SeatConfig
	Runner RunnerSettings
}

// fileConfig mirrors Config with optional blocks for decoding.
type fileConfig struct {
	Table  *TableSettings  `hcl:"table,block"`
	Seats  []SeatConfig    `hcl:"seat,block"`
	Runner *RunnerSettings `hcl:"runner,block"`
}

// TableSettings configures blinds and seating limits
type TableSettings struct {
	SmallBlind    int   `hcl:"small_blind,optional"`
	BigBlind      int   `hcl:"big_blind,optional"`
	MaxSeats      int   `hcl:"max_seats,optional"`
	StartingChips int   `hcl:"starting_chips,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// SeatConfig defines a seated bot
type SeatConfig struct {
	Name    string `hcl:"name,label"`
	Bot     string `hcl:"bot,optional"`
	Chips   int    `hcl:"chips,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// RunnerSettings controls how many hands are played and where histories go
type RunnerSettings struct {
	Hands      int    `hcl:"hands,optional"`
	HistoryDir string `hcl:"history_dir,optional"`
	LogLevel   string `hcl:"log_level,optional"`
}

// Default returns a heads-up configuration with default blinds.
func Default() *Config {
	tc := game.DefaultTableConfig()
	return &Config{
		Table: TableSettings{
			SmallBlind:    tc.SmallBlind,
			BigBlind:      tc.BigBlind,
			MaxSeats:      tc.MaxSeats,
			StartingChips: tc.StartingChips,
		},
		Seats: []SeatConfig{
			{Name: "tag", Bot: "tag"},
			{Name: "caller", Bot: "call"},
		},
		Runner: RunnerSettings{
			Hands:    100,
			LogLevel: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Config{Seats: decoded.Seats}
	if decoded.Table != nil {
		config.Table = *decoded.Table
	}
	if decoded.Runner != nil {
		config.Runner = *decoded.Runner
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := game.DefaultTableConfig()
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = defaults.SmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}
	if c.Table.MaxSeats == 0 {
		c.Table.MaxSeats = max(defaults.MaxSeats, len(c.Seats))
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = c.Table.BigBlind * 100 // 100 big blinds
	}
	for i := range c.Seats {
		if c.Seats[i].Bot == "" {
			c.Seats[i].Bot = "call"
		}
	}
	if c.Runner.Hands == 0 {
		c.Runner.Hands = 100
	}
	if c.Runner.LogLevel == "" {
		c.Runner.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.TableConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Seats) < 2 {
		return fmt.Errorf("%w: at least two seats must be configured", ErrInvalid)
	}
	if len(c.Seats) > c.Table.MaxSeats {
		return fmt.Errorf("%w: %d seats configured but table holds %d", ErrInvalid, len(c.Seats), c.Table.MaxSeats)
	}

	seen := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if seen[seat.Name] {
			return fmt.Errorf("%w: seat %s configured twice", ErrInvalid, seat.Name)
		}
		seen[seat.Name] = true

		if !slices.Contains(bot.Kinds, seat.Bot) {
			return fmt.Errorf("%w: seat %s: invalid bot %s", ErrInvalid, seat.Name, seat.Bot)
		}
		if seat.Chips < 0 {
			return fmt.Errorf("%w: seat %s: chips must not be negative", ErrInvalid, seat.Name)
		}
		if seat.Timeout != "" {
			if _, err := seat.TimeoutDuration(); err != nil {
				return fmt.Errorf("%w: seat %s: %w", ErrInvalid, seat.Name, err)
			}
		}
	}

	if c.Runner.Hands < 0 {
		return fmt.Errorf("%w: hands must not be negative", ErrInvalid)
	}
	return nil
}

// TableConfig converts the table block to the engine's configuration.
func (c *Config) TableConfig() game.TableConfig {
	return game.TableConfig{
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		MaxSeats:      c.Table.MaxSeats,
		StartingChips: c.Table.StartingChips,
		Seed:          c.Table.Seed,
	}
}

// TimeoutDuration parses the seat's decision timeout. An empty value means
// no timeout.
func (s SeatConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

// GetSeatByName returns a seat configuration by name
func (c *Config) GetSeatByName(name string) *SeatConfig {
	for i := range c.Seats {
		if c.Seats[i].Name == name {
			return &c.Seats[i]
		}
	}
	return nil
}
