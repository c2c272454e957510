package game

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
)

// WinnerInfo describes one player's winnings for a hand. Hand is nil when
// the pot was won without a showdown.
type WinnerInfo struct {
	Player    string          `json:"player"`
	Amount    int             `json:"amount"`
	HoleCards []deck.Card     `json:"hole_cards"`
	Hand      *evaluator.Hand `json:"hand,omitempty"`
}

// GameResult is the immutable outcome of one hand.
type GameResult struct {
	HandNumber int            `json:"hand_number"`
	HandID     string         `json:"hand_id"`
	Pot        int            `json:"pot"`
	Street     Street         `json:"street"`
	Community  []deck.Card    `json:"community"`
	Winners    []WinnerInfo   `json:"winners"`
	Refunds    map[string]int `json:"refunds,omitempty"`
	Layers     []PotLayer     `json:"layers"`
	Stacks     map[string]int `json:"stacks"` // Every seat's stack after the award
}

// WonByFold reports whether the hand ended without a showdown.
func (r GameResult) WonByFold() bool {
	return len(r.Winners) == 1 && r.Winners[0].Hand == nil
}

// Winner returns the winner info for name, if they won anything.
func (r GameResult) Winner(name string) (WinnerInfo, bool) {
	for _, w := range r.Winners {
		if w.Player == name {
			return w, true
		}
	}
	return WinnerInfo{}, false
}

// Showdown decides who wins the pot. With a single contender left that
// player wins without any evaluation. Otherwise the hand must have reached
// the showdown street; every contender's best hand is evaluated and the
// strongest, possibly tied, are returned in seat order.
func (t *Table) Showdown() ([]*Player, error) {
	if !t.inHand {
		return nil, ErrNoHandInProgress
	}

	var contenders []*Player
	for _, p := range t.players {
		if p.InHand() {
			contenders = append(contenders, p)
		}
	}
	if len(contenders) == 1 {
		return contenders, nil
	}
	if t.street != Showdown {
		return nil, fmt.Errorf("%w: %d players still in hand on the %s", ErrRoundIncomplete, len(contenders), t.street)
	}

	t.showdown = make(map[string]evaluator.Hand, len(contenders))
	revealed := make([]ShowdownHand, 0, len(contenders))
	var (
		winners []*Player
		best    evaluator.Hand
	)
	for _, p := range contenders {
		cards := append(slices.Clone(p.HoleCards), t.community...)
		hand, err := evaluator.Evaluate(cards)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		t.showdown[p.Name] = hand
		revealed = append(revealed, ShowdownHand{Player: p.Name, HoleCards: slices.Clone(p.HoleCards), Hand: hand})

		switch c := evaluator.Compare(hand, best); {
		case len(winners) == 0 || c > 0:
			winners = []*Player{p}
			best = hand
		case c == 0:
			winners = append(winners, p)
		}
	}

	t.eventBus.Publish(ShowdownEvent{
		HandNumber: t.handNumber,
		Board:      t.Community(),
		Hands:      revealed,
		Winners:    names(winners),
		timestamp:  time.Now(),
	})
	return winners, nil
}

// AwardPot settles the pot between winners, credits the stacks, records the
// GameResult and ends the hand.
func (t *Table) AwardPot(winners []*Player) (*GameResult, error) {
	if !t.inHand {
		return nil, ErrNoHandInProgress
	}
	if len(winners) == 0 {
		return nil, fmt.Errorf("%w: no winners", ErrIllegalAction)
	}

	settlement := Settle(t.players, winners)
	if settlement.Total() != t.pot {
		return nil, fmt.Errorf("%w: settled %d of a %d pot", ErrChipConservation, settlement.Total(), t.pot)
	}

	result := &GameResult{
		HandNumber: t.handNumber,
		HandID:     t.handID,
		Pot:        t.pot,
		Street:     t.street,
		Community:  t.Community(),
		Layers:     settlement.Layers,
		Stacks:     make(map[string]int, len(t.players)),
	}
	if len(settlement.Refunds) > 0 {
		result.Refunds = maps.Clone(settlement.Refunds)
	}

	for _, p := range t.players {
		p.Chips += settlement.Payout(p.Name)
		result.Stacks[p.Name] = p.Chips
	}
	for _, w := range winners {
		info := WinnerInfo{
			Player:    w.Name,
			Amount:    settlement.Wins[w.Name],
			HoleCards: slices.Clone(w.HoleCards),
		}
		if hand, ok := t.showdown[w.Name]; ok {
			info.Hand = &hand
		}
		result.Winners = append(result.Winners, info)
	}

	t.pot = 0
	t.actionOn = -1
	t.inHand = false
	t.result = result

	if total := t.ChipTotal(); total != t.startTotal {
		return result, fmt.Errorf("%w: %d chips at hand start, %d after award", ErrChipConservation, t.startTotal, total)
	}

	t.eventBus.Publish(PotAwardEvent{Result: *result, timestamp: time.Now()})
	return result, nil
}
