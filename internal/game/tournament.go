package game

import (
	"cmp"
	"context"
	"slices"
)

// Standing is a seat's chip count at the end of a tournament.
type Standing struct {
	Name  string
	Seat  int
	Chips int
}

// RunTournament plays hands until maxHands have been played or at most one
// player has chips left. A maxHands of zero or less means no hand limit.
// Cancelling ctx stops the tournament between hands.
func (e *Engine) RunTournament(ctx context.Context, maxHands int) ([]Standing, error) {
	for played := 0; maxHands <= 0 || played < maxHands; played++ {
		if err := ctx.Err(); err != nil {
			return e.Standings(), err
		}
		if e.activeCount() < 2 {
			break
		}
		if _, err := e.PlayHand(ctx); err != nil {
			return e.Standings(), err
		}
	}

	standings := e.Standings()
	if len(standings) > 0 {
		e.logger.Info("Tournament complete", "hands", e.table.HandNumber(), "leader", standings[0].Name, "chips", standings[0].Chips)
	}
	return standings, nil
}

// Standings returns every seat ordered by chips, most first, ties in seat
// order.
func (e *Engine) Standings() []Standing {
	e.mu.Lock()
	defer e.mu.Unlock()

	standings := make([]Standing, len(e.table.players))
	for i, p := range e.table.players {
		standings[i] = Standing{Name: p.Name, Seat: p.Seat, Chips: p.Chips}
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.Chips, a.Chips)
	})
	return standings
}

func (e *Engine) activeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.ActiveCount()
}
