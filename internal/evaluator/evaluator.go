package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/pokertable/internal/deck"
)

// ErrInvalidHand is returned for card sets that cannot be evaluated.
var ErrInvalidHand = errors.New("invalid hand")

// Evaluate returns the strongest five-card hand contained in cards, which
// must hold between 5 and 7 distinct cards. The result does not depend on
// the order of cards.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: need 5-7 cards, got %d", ErrInvalidHand, len(cards))
	}

	var (
		seen       [deck.Size]bool
		rankCounts [15]int
		suitCounts [4]int
		suitRanks  [4]uint16
		allRanks   uint16
	)
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit < deck.Spades || c.Suit > deck.Diamonds {
			return Hand{}, fmt.Errorf("%w: bad card %d/%d", ErrInvalidHand, c.Suit, c.Rank)
		}
		if seen[c.Index()] {
			return Hand{}, fmt.Errorf("%w: duplicate %s", ErrInvalidHand, c.Notation())
		}
		seen[c.Index()] = true
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		suitRanks[c.Suit] |= 1 << c.Rank
		allRanks |= 1 << c.Rank
	}

	// With at most 7 cards only one suit can reach five.
	flushSuit := -1
	for s, n := range suitCounts {
		if n >= 5 {
			flushSuit = s
		}
	}

	if flushSuit >= 0 {
		if high := straightHigh(suitRanks[flushSuit]); high > 0 {
			if high == int(deck.Ace) {
				return Hand{Category: RoyalFlush, Tiebreak: straightRanks(high)}, nil
			}
			return Hand{Category: StraightFlush, Tiebreak: straightRanks(high)}, nil
		}
	}

	var quads, trips, pairs, singles []int
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		switch rankCounts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			singles = append(singles, r)
		}
	}

	if len(quads) > 0 {
		return Hand{Category: FourOfAKind, Tiebreak: []int{quads[0], highestExcept(rankCounts, quads[0])}}, nil
	}

	if len(trips) > 0 {
		// A second set of trips plays as the pair.
		pair := 0
		if len(trips) > 1 {
			pair = trips[1]
		}
		if len(pairs) > 0 && pairs[0] > pair {
			pair = pairs[0]
		}
		if pair > 0 {
			return Hand{Category: FullHouse, Tiebreak: []int{trips[0], pair}}, nil
		}
	}

	if flushSuit >= 0 {
		return Hand{Category: Flush, Tiebreak: topRanks(suitRanks[flushSuit], 5)}, nil
	}

	if high := straightHigh(allRanks); high > 0 {
		return Hand{Category: Straight, Tiebreak: straightRanks(high)}, nil
	}

	if len(trips) > 0 {
		return Hand{Category: ThreeOfAKind, Tiebreak: append([]int{trips[0]}, kickers(rankCounts, 2, trips[0])...)}, nil
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		return Hand{Category: TwoPair, Tiebreak: append([]int{hi, lo}, kickers(rankCounts, 1, hi, lo)...)}, nil
	}

	if len(pairs) == 1 {
		return Hand{Category: OnePair, Tiebreak: append([]int{pairs[0]}, kickers(rankCounts, 3, pairs[0])...)}, nil
	}

	return Hand{Category: HighCard, Tiebreak: singles[:5]}, nil
}

// MustEvaluate is Evaluate for known-good card sets in tests and fixtures.
func MustEvaluate(cards []deck.Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// straightHigh returns the top rank of the highest straight in the rank
// mask, 5 for the wheel, or 0 when there is none.
func straightHigh(mask uint16) int {
	if mask&(1<<deck.Ace) != 0 {
		mask |= 1 << 1
	}
	for high := int(deck.Ace); high >= 5; high-- {
		run := uint16(0x1f) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	return 0
}

func straightRanks(high int) []int {
	return []int{high, high - 1, high - 2, high - 3, high - 4}
}

// topRanks returns the n highest ranks set in mask, descending.
func topRanks(mask uint16, n int) []int {
	out := make([]int, 0, n)
	for r := int(deck.Ace); r >= int(deck.Two) && len(out) < n; r-- {
		if mask&(1<<r) != 0 {
			out = append(out, r)
		}
	}
	return out
}

// kickers returns the n highest ranks present, skipping the excluded ranks.
// Every remaining card counts, so a third pair can supply a kicker.
func kickers(counts [15]int, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for r := int(deck.Ace); r >= int(deck.Two) && len(out) < n; r-- {
		if counts[r] == 0 || contains(exclude, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func highestExcept(counts [15]int, exclude int) int {
	k := kickers(counts, 1, exclude)
	if len(k) == 0 {
		return 0
	}
	return k[0]
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
