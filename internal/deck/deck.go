package deck

import (
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a full deck.
const Size = 52

// Deck represents a deck of playing cards. Cards are dealt from the front
// only; a dealt card never returns to the deck.
type Deck struct {
	cards []Card
	next  int
}

// Fresh returns the 52 cards in construction order (suit-major, rank ascending).
func Fresh() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a full deck shuffled with the provided RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: Fresh()}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewDeckFromCards creates a deck that deals the given cards in order.
// Used for replaying a recorded hand and for stacked test decks.
func NewDeckFromCards(cards []Card) (*Deck, error) {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidCard, c.Notation())
		}
		seen[c] = true
	}
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d, nil
}

// Stacked returns a full deck whose first cards are prefix, followed by the
// remaining cards in construction order.
func Stacked(prefix []Card) (*Deck, error) {
	cards := make([]Card, 0, Size)
	cards = append(cards, prefix...)
	used := make(map[Card]bool, len(prefix))
	for _, c := range prefix {
		used[c] = true
	}
	for _, c := range Fresh() {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	return NewDeckFromCards(cards)
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// DealN deals n cards from the deck, or fewer if the deck runs out.
func (d *Deck) DealN(n int) []Card {
	if n > d.Remaining() {
		n = d.Remaining()
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Order returns a copy of the full card order, dealt cards included.
func (d *Deck) Order() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
