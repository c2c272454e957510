package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when card notation cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// Suits lists every suit in deck construction order.
var Suits = [...]Suit{Spades, Hearts, Clubs, Diamonds}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Letter returns the single ASCII letter used in card notation (s, h, c, d).
func (s Suit) Letter() byte {
	switch s {
	case Spades:
		return 's'
	case Hearts:
		return 'h'
	case Clubs:
		return 'c'
	case Diamonds:
		return 'd'
	default:
		return '?'
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank from 2 to 14 (ace high).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the single character for the rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// Valid reports whether r is within 2..14.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Cards are plain values and are copied freely.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Notation returns the ASCII form of a card (e.g., "As") used in logs and
// hand histories.
func (c Card) Notation() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Index returns a unique 0..51 index for the card.
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// MarshalText encodes the card in ASCII notation.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Rank.Valid() || c.Suit < Spades || c.Suit > Diamonds {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidCard, c.Suit, c.Rank)
	}
	return []byte(c.Notation()), nil
}

// UnmarshalText decodes ASCII card notation.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a single card such as "As", "th" or "10d".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankPart := strings.ToUpper(s[:len(s)-1])
	if rankPart == "10" {
		rankPart = "T"
	}
	if len(rankPart) != 1 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	idx := strings.IndexByte(rankLetters, rankPart[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch strings.ToLower(s[len(s)-1:]) {
	case "s":
		suit = Spades
	case "h":
		suit = Hearts
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}

	return NewCard(suit, Two+Rank(idx)), nil
}

// ParseCards parses a run of cards with or without separators, e.g.
// "AsKsQs", "As Ks Qs" or "As,Ks,10s".
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		for len(field) > 0 {
			n := 2
			if strings.HasPrefix(field, "10") {
				n = 3
			}
			if len(field) < n {
				return nil, fmt.Errorf("%w: trailing %q", ErrInvalidCard, field)
			}
			card, err := ParseCard(field[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			field = field[n:]
		}
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals in tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards in ASCII notation separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Notation()
	}
	return strings.Join(parts, " ")
}
