package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Engine drives a Table through complete hands, asking each seat's Agent
// for decisions. Its methods are safe to call from multiple goroutines;
// they are serialized by a per-table mutex.
type Engine struct {
	mu     sync.Mutex
	table  *Table
	agents map[string]Agent
	logger *log.Logger
}

// NewEngine creates an engine for table
func NewEngine(table *Table, logger *log.Logger) *Engine {
	return &Engine{
		table:  table,
		agents: make(map[string]Agent),
		logger: logger.WithPrefix("engine"),
	}
}

// Sit adds a player to the table with the agent that plays for them. A
// chips value of zero uses the table's starting stack.
func (e *Engine) Sit(name string, chips int, agent Agent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if agent == nil {
		return fmt.Errorf("sit %q: nil agent", name)
	}
	if _, err := e.table.AddPlayer(name, chips); err != nil {
		return fmt.Errorf("sit %q: %w", name, err)
	}
	e.agents[name] = agent
	return nil
}

// Table returns the table being driven. Callers must not mutate it while
// the engine is playing.
func (e *Engine) Table() *Table {
	return e.table
}

// EventBus returns the bus the table publishes on
func (e *Engine) EventBus() *EventBus {
	return e.table.EventBus()
}

// Snapshot returns a public view of the table.
func (e *Engine) Snapshot() TableState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.State(-1)
}

// PlayHand plays one complete hand and returns its result.
func (e *Engine) PlayHand(ctx context.Context) (*GameResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.table
	for _, p := range t.players {
		if p.Chips > 0 && e.agents[p.Name] == nil {
			return nil, fmt.Errorf("%w: no agent for %q", ErrUnknownPlayer, p.Name)
		}
	}

	chipsBefore := t.ChipTotal()
	if err := t.StartNewHand(); err != nil {
		return nil, err
	}

	logger := e.logger.With("hand", t.HandNumber())
	logger.Info("Starting hand", "id", t.HandID(), "button", t.players[t.button].Name, "players", t.ActiveCount())

	err := playOut(t, func(p *Player) error {
		return e.decide(ctx, logger, p)
	})
	if err != nil {
		return nil, fmt.Errorf("hand %d: %w", t.HandNumber(), err)
	}

	winners, err := t.Showdown()
	if err != nil {
		return nil, fmt.Errorf("hand %d showdown: %w", t.HandNumber(), err)
	}
	result, err := t.AwardPot(winners)
	if err != nil {
		logger.Error("Pot award failed", "error", err)
		return nil, fmt.Errorf("hand %d award: %w", t.HandNumber(), err)
	}

	if chipsAfter := t.ChipTotal(); chipsAfter != chipsBefore {
		logger.Error("Chip conservation violation detected!", "before", chipsBefore, "after", chipsAfter)
		return result, fmt.Errorf("%w: %d chips before hand %d, %d after", ErrChipConservation, chipsBefore, result.HandNumber, chipsAfter)
	}

	for _, w := range result.Winners {
		hand := "uncontested"
		if w.Hand != nil {
			hand = w.Hand.String()
		}
		logger.Info("Hand complete", "winner", w.Player, "amount", w.Amount, "hand", hand, "street", result.Street)
	}
	return result, nil
}

// decide asks p's agent for a decision and applies it. A decision the
// table rejects is replaced by a fold.
func (e *Engine) decide(ctx context.Context, logger *log.Logger, p *Player) error {
	t := e.table
	state := t.State(p.Seat)
	valid := t.ValidActions()

	decision := e.agents[p.Name].MakeDecision(ctx, state, valid)
	err := t.ProcessAction(p.Name, decision.Action, decision.Amount)
	if errors.Is(err, ErrIllegalAction) {
		logger.Warn("Rejected decision, folding", "player", p.Name, "action", decision.Action, "amount", decision.Amount, "error", err)
		decision = Decision{Action: Fold, Reasoning: "illegal decision"}
		err = t.ProcessAction(p.Name, Fold, 0)
	}
	if err != nil {
		return err
	}

	logger.Debug("Player action",
		"player", p.Name,
		"street", t.Street(),
		"action", decision.Action,
		"amount", decision.Amount,
		"pot", t.Pot(),
		"reasoning", decision.Reasoning)
	return nil
}

// playOut runs the hand's betting from the current state until the pot can
// be awarded, calling decide for every pending decision. Streets on which
// nobody can bet are dealt straight through.
func playOut(t *Table, decide func(p *Player) error) error {
	for {
		for p := t.ActionOn(); p != nil; p = t.ActionOn() {
			if err := decide(p); err != nil {
				return err
			}
		}
		if t.InHandCount() <= 1 || t.Street() == Showdown {
			return nil
		}
		if err := t.AdvanceStreet(); err != nil {
			return err
		}
	}
}
