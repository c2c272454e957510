package game

import "github.com/lox/pokertable/internal/deck"

// Player represents a seat at the table. The stack carries over between
// hands; everything else is reset when a hand starts.
type Player struct {
	Name      string
	Seat      int
	Chips     int
	HoleCards []deck.Card

	BetInRound      int // Wager on the current street
	TotalBet        int // Wager over the whole hand
	Folded          bool
	AllIn           bool
	Active          bool // False once the player starts a hand with no chips
	ActedThisStreet bool
}

// NewPlayer creates a player with the given stack
func NewPlayer(name string, seat, chips int) *Player {
	return &Player{
		Name:   name,
		Seat:   seat,
		Chips:  chips,
		Active: chips > 0,
	}
}

// InHand reports whether the player still contests the current pot.
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

// CanAct reports whether the player can still make decisions this hand.
func (p *Player) CanAct() bool {
	return p.Active && !p.Folded && !p.AllIn
}

func (p *Player) resetForHand() {
	p.Active = p.Chips > 0
	p.HoleCards = nil
	p.BetInRound = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.ActedThisStreet = false
}

func (p *Player) resetForStreet() {
	p.BetInRound = 0
	p.ActedThisStreet = false
}

// commit moves up to amount chips from the stack into the current wager and
// returns what was actually committed.
func (p *Player) commit(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.BetInRound += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
