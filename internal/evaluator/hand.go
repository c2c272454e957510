package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokertable/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest first.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	if c < HighCard || c > RoyalFlush {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name as produced by String.
func (c *Category) UnmarshalText(text []byte) error {
	for cat := HighCard; cat <= RoyalFlush; cat++ {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// Hand is the evaluated strength of the best five cards.
//
// Tiebreak holds ranks (2..14) in comparison priority order. A five-high
// straight reports its ace as 1, so the wheel is [5 4 3 2 1].
type Hand struct {
	Category Category `json:"category"`
	Tiebreak []int    `json:"tiebreak"`
}

// String renders the category, e.g. "Full House".
func (h Hand) String() string {
	return h.Category.String()
}

// Describe renders the category with the ranks that decide it, e.g.
// "Two Pair (K Q 9)".
func (h Hand) Describe() string {
	if len(h.Tiebreak) == 0 {
		return h.Category.String()
	}
	parts := make([]string, len(h.Tiebreak))
	for i, r := range h.Tiebreak {
		if r == 1 {
			r = int(deck.Ace)
		}
		parts[i] = deck.Rank(r).String()
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(parts, " "))
}

// Compare compares two hands and returns:
// -1 if a is weaker than b
//
//	0 if a equals b
//	1 if a is stronger than b
func Compare(a, b Hand) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
	}
	return 0
}

// Beats reports whether h is strictly stronger than other.
func (h Hand) Beats(other Hand) bool {
	return Compare(h, other) > 0
}
