package game

import (
	"cmp"
	"slices"
)

// PotLayer is one slice of the pot between two wager thresholds.
type PotLayer struct {
	Threshold    int            `json:"threshold"`
	Amount       int            `json:"amount"`
	Contributors []string       `json:"contributors"`
	Winners      []string       `json:"winners,omitempty"`
	Refunded     bool           `json:"refunded,omitempty"`
	Shares       map[string]int `json:"shares"`
}

// Settlement is the distribution of a hand's pot.
type Settlement struct {
	Wins    map[string]int // Chips won, per player
	Refunds map[string]int // Chips returned from layers nobody could win
	Layers  []PotLayer
}

// Total returns the number of chips distributed.
func (s Settlement) Total() int {
	total := 0
	for _, layer := range s.Layers {
		total += layer.Amount
	}
	return total
}

// Payout returns everything a player receives, wins and refunds.
func (s Settlement) Payout(name string) int {
	return s.Wins[name] + s.Refunds[name]
}

// Settle splits the chips wagered by players between winners.
//
// Contributions are cut into layers at each distinct TotalBet. A layer is
// shared by the winners whose TotalBet reaches it, with any odd chips going
// to the first of them in seat order. A layer no winner reaches is returned
// to its contributors that are still in the hand, or to all its
// contributors if every one of them folded, again with odd chips to the
// first in seat order.
func Settle(players []*Player, winners []*Player) Settlement {
	s := Settlement{
		Wins:    make(map[string]int),
		Refunds: make(map[string]int),
	}

	var contributors []*Player
	for _, p := range players {
		if p.TotalBet > 0 {
			contributors = append(contributors, p)
		}
	}
	bySeat := func(a, b *Player) int { return cmp.Compare(a.Seat, b.Seat) }
	slices.SortFunc(contributors, bySeat)

	thresholds := make([]int, 0, len(contributors))
	for _, p := range contributors {
		thresholds = append(thresholds, p.TotalBet)
	}
	slices.Sort(thresholds)
	thresholds = slices.Compact(thresholds)

	winners = slices.Clone(winners)
	slices.SortFunc(winners, bySeat)

	previous := 0
	for _, threshold := range thresholds {
		var inLayer, live, eligible []*Player
		for _, p := range contributors {
			if p.TotalBet >= threshold {
				inLayer = append(inLayer, p)
				if !p.Folded {
					live = append(live, p)
				}
			}
		}
		for _, w := range winners {
			if w.TotalBet >= threshold {
				eligible = append(eligible, w)
			}
		}

		layer := PotLayer{
			Threshold:    threshold,
			Amount:       (threshold - previous) * len(inLayer),
			Contributors: names(inLayer),
			Shares:       make(map[string]int),
		}
		previous = threshold

		if len(eligible) > 0 {
			layer.Winners = names(eligible)
			split(layer.Amount, eligible, layer.Shares)
			for name, amount := range layer.Shares {
				s.Wins[name] += amount
			}
		} else {
			recipients := live
			if len(recipients) == 0 {
				recipients = inLayer
			}
			layer.Refunded = true
			split(layer.Amount, recipients, layer.Shares)
			for name, amount := range layer.Shares {
				s.Refunds[name] += amount
			}
		}
		s.Layers = append(s.Layers, layer)
	}
	return s
}

// split divides amount evenly between recipients, odd chips to the first.
func split(amount int, recipients []*Player, shares map[string]int) {
	each := amount / len(recipients)
	remainder := amount % len(recipients)
	for i, p := range recipients {
		share := each
		if i == 0 {
			share += remainder
		}
		shares[p.Name] += share
	}
}

func names(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
