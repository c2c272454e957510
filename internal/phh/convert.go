package phh

import (
	"errors"
	"fmt"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
)

// ErrIncompleteHand is returned when a hand record lacks what PHH needs.
var ErrIncompleteHand = errors.New("phh: incomplete hand record")

// FromHistory converts a recorded hand to PHH. Seats sitting out the hand
// are omitted; the remaining players are ordered from the small blind.
func FromHistory(rec game.HandRecord, table string) (*HandHistory, error) {
	if len(rec.Actions) < 2 || rec.Actions[0].Action != game.SmallBlind {
		return nil, fmt.Errorf("%w: hand %d has no blind posts", ErrIncompleteHand, rec.HandNumber)
	}

	order, err := positionOrder(rec.Seats, rec.Actions[0].Player)
	if err != nil {
		return nil, fmt.Errorf("hand %d: %w", rec.HandNumber, err)
	}
	positions := make(map[string]int, len(order))
	for pos, seat := range order {
		positions[seat.Name] = pos
	}

	n := len(order)
	hist := &HandHistory{
		Variant:           Variant,
		Table:             table,
		SeatCount:         len(rec.Seats),
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            rec.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Actions:           make([]string, 0, n+len(rec.Actions)+4),
		Players:           make([]string, n),
		HandID:            rec.HandID,
		Board:             FormatBoard(rec.Board),
		Timestamp:         rec.StartedAt,
		Metadata: map[string]any{
			"hand_number": rec.HandNumber,
			"seed":        rec.Seed,
		},
	}

	for pos, seat := range order {
		hist.Seats[pos] = seat.Seat + 1
		hist.StartingStacks[pos] = seat.Chips
		hist.FinishingStacks[pos] = seat.Chips
		hist.Players[pos] = seat.Name

		cards := FormatCards(seat.HoleCards)
		if cards == "" {
			cards = unknownCards
		}
		hist.Actions = append(hist.Actions, fmt.Sprintf("d dh p%d %s", pos+1, cards))
	}

	street := game.Preflop
	streetBet := 0
	committed := make(map[string]int, n)

	for _, a := range rec.Actions {
		pos, ok := positions[a.Player]
		if !ok {
			return nil, fmt.Errorf("%w: action by unseated player %q", ErrIncompleteHand, a.Player)
		}

		if a.Street != street {
			hist.Actions = appendBoard(hist.Actions, rec.Board, street, a.Street)
			street = a.Street
			streetBet = 0
			clear(committed)
		}

		raised := false
		switch a.Action {
		case game.SmallBlind, game.BigBlind:
			hist.BlindsOrStraddles[pos] = a.Amount
			committed[a.Player] += a.Amount
		case game.Call:
			committed[a.Player] += a.Amount
		case game.Raise:
			committed[a.Player] = a.Amount
			raised = true
		case game.AllIn:
			committed[a.Player] += a.Amount
			raised = committed[a.Player] > streetBet
		}
		streetBet = max(streetBet, committed[a.Player])

		if formatted, ok := FormatAction(pos, a.Action, committed[a.Player], raised); ok {
			hist.Actions = append(hist.Actions, formatted)
		}
	}

	// Boards run out after all-ins have no actions of their own.
	hist.Actions = appendBoard(hist.Actions, rec.Board, street, game.River)

	for _, shown := range rec.Showdown {
		pos, ok := positions[shown.Player]
		if !ok {
			continue
		}
		hist.Actions = append(hist.Actions, fmt.Sprintf("p%d sm %s", pos+1, FormatCards(shown.HoleCards)))
	}

	if rec.Result != nil {
		for pos, name := range hist.Players {
			if stack, ok := rec.Result.Stacks[name]; ok {
				hist.FinishingStacks[pos] = stack
			}
		}
		for _, w := range rec.Result.Winners {
			if pos, ok := positions[w.Player]; ok {
				hist.Winnings[pos] += w.Amount
			}
		}
	}

	hist.populateTimeFields()
	return hist, nil
}

// positionOrder returns the seats dealt into the hand, rotated so the small
// blind comes first.
func positionOrder(seats []game.SeatSnapshot, smallBlind string) ([]game.SeatSnapshot, error) {
	var active []game.SeatSnapshot
	start := -1
	for _, s := range seats {
		if !s.Active {
			continue
		}
		if s.Name == smallBlind {
			start = len(active)
		}
		active = append(active, s)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: small blind %q not seated", ErrIncompleteHand, smallBlind)
	}

	order := make([]game.SeatSnapshot, 0, len(active))
	for i := range active {
		order = append(order, active[(start+i)%len(active)])
	}
	return order, nil
}

// appendBoard adds a board deal action for every street after from up to
// and including to, as far as the board reaches.
func appendBoard(actions []string, board []deck.Card, from, to game.Street) []string {
	for s := from + 1; s <= to && s <= game.River; s++ {
		cards := streetCards(board, s)
		if len(cards) == 0 {
			break
		}
		actions = append(actions, "d db "+FormatCards(cards))
	}
	return actions
}

func streetCards(board []deck.Card, street game.Street) []deck.Card {
	var lo, hi int
	switch street {
	case game.Flop:
		lo, hi = 0, 3
	case game.Turn:
		lo, hi = 3, 4
	case game.River:
		lo, hi = 4, 5
	default:
		return nil
	}
	if len(board) < hi {
		return nil
	}
	return board[lo:hi]
}
