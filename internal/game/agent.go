package game

import (
	"context"
	"slices"

	"github.com/lox/pokertable/internal/deck"
)

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    int    // For raises, the raise-to target
	Reasoning string // Human-readable explanation
}

// PlayerState is the public view of a seat for decision making
type PlayerState struct {
	Name       string
	Seat       int
	Chips      int
	BetInRound int
	TotalBet   int
	Folded     bool
	AllIn      bool
	Active     bool
	HoleCards  []deck.Card // Only populated for the acting player
}

// TableState is an immutable snapshot of the table handed to an Agent
type TableState struct {
	HandNumber int
	HandID     string
	Street     Street
	Pot        int
	CurrentBet int
	MinRaiseTo int
	SmallBlind int
	BigBlind   int
	Button     int
	Community  []deck.Card
	Players    []PlayerState
	ActingSeat int // Index into Players of the seat deciding, -1 for observers
	ActionLog  []ActionRecord
}

// Acting returns the acting player's state.
func (s TableState) Acting() (PlayerState, bool) {
	if s.ActingSeat < 0 || s.ActingSeat >= len(s.Players) {
		return PlayerState{}, false
	}
	return s.Players[s.ActingSeat], true
}

// ToCall returns the chips the acting player needs to call.
func (s TableState) ToCall() int {
	p, ok := s.Acting()
	if !ok {
		return 0
	}
	return max(0, s.CurrentBet-p.BetInRound)
}

// Agent represents anything that makes decisions for a seat. Agents receive
// a snapshot and return a decision; they never mutate the table.
type Agent interface {
	MakeDecision(ctx context.Context, state TableState, valid []ValidAction) Decision
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, state TableState, valid []ValidAction) Decision

func (f AgentFunc) MakeDecision(ctx context.Context, state TableState, valid []ValidAction) Decision {
	return f(ctx, state, valid)
}

// State builds a snapshot of the table. Hole cards are only included for
// the seat at viewer; pass -1 for a public view.
func (t *Table) State(viewer int) TableState {
	state := TableState{
		HandNumber: t.handNumber,
		HandID:     t.handID,
		Street:     t.street,
		Pot:        t.pot,
		CurrentBet: t.currentBet,
		MinRaiseTo: t.MinRaiseTo(),
		SmallBlind: t.config.SmallBlind,
		BigBlind:   t.config.BigBlind,
		Button:     t.button,
		Community:  t.Community(),
		Players:    make([]PlayerState, len(t.players)),
		ActingSeat: -1,
		ActionLog:  t.ActionLog(),
	}
	for i, p := range t.players {
		ps := PlayerState{
			Name:       p.Name,
			Seat:       p.Seat,
			Chips:      p.Chips,
			BetInRound: p.BetInRound,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			Active:     p.Active,
		}
		if i == viewer {
			ps.HoleCards = slices.Clone(p.HoleCards)
			state.ActingSeat = i
		}
		state.Players[i] = ps
	}
	return state
}
