package game

import (
	"fmt"
	"time"
)

// NextPlayer returns the first seat after from that can still act, walking
// the table circularly. It returns nil when no seat can act.
func (t *Table) NextPlayer(from int) *Player {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		p := t.players[((from+i)%n+n)%n]
		if p.CanAct() {
			return p
		}
	}
	return nil
}

// MinRaiseTo returns the smallest legal raise-to target: the larger of the
// big blind and twice the current bet.
func (t *Table) MinRaiseTo() int {
	return max(t.config.BigBlind, 2*t.currentBet)
}

// ValidActions lists the legal actions for the player to act, or nil when
// no decision is pending.
func (t *Table) ValidActions() []ValidAction {
	p := t.ActionOn()
	if p == nil {
		return nil
	}

	actions := []ValidAction{{Action: Fold}}
	toCall := t.currentBet - p.BetInRound
	if toCall <= 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else if p.Chips > 0 {
		call := min(toCall, p.Chips)
		actions = append(actions, ValidAction{Action: Call, MinAmount: call, MaxAmount: call})
	}

	if maxTarget := p.BetInRound + p.Chips; p.Chips > 0 && maxTarget >= t.MinRaiseTo() {
		actions = append(actions, ValidAction{Action: Raise, MinAmount: t.MinRaiseTo(), MaxAmount: maxTarget})
	}
	if p.Chips > 0 {
		actions = append(actions, ValidAction{Action: AllIn, MinAmount: p.Chips, MaxAmount: p.Chips})
	}
	return actions
}

// ProcessAction applies an action by the named player. For Raise, amount
// is the raise-to target; it is ignored for every other action.
//
// Rejected actions leave the table and the action log untouched.
func (t *Table) ProcessAction(name string, action Action, amount int) error {
	if !t.inHand || t.street == Showdown {
		return ErrNoHandInProgress
	}
	p := t.Player(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	if !p.CanAct() {
		return fmt.Errorf("%w: %s", ErrPlayerCannotAct, name)
	}
	if t.actionOn != p.Seat {
		actor := "nobody"
		if cur := t.ActionOn(); cur != nil {
			actor = cur.Name
		}
		return fmt.Errorf("%w: %s acted, waiting on %s", ErrOutOfTurn, name, actor)
	}

	toCall := t.currentBet - p.BetInRound
	var paid, logged int

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if toCall > 0 {
			return fmt.Errorf("%w: %s cannot check facing %d", ErrIllegalAction, name, toCall)
		}

	case Call:
		if toCall <= 0 {
			return fmt.Errorf("%w: %s has nothing to call", ErrIllegalAction, name)
		}
		paid = p.commit(toCall)
		logged = paid

	case Raise:
		if amount < t.MinRaiseTo() {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrIllegalAction, amount, t.MinRaiseTo())
		}
		if amount-p.BetInRound > p.Chips {
			return fmt.Errorf("%w: raise to %d exceeds stack of %d", ErrIllegalAction, amount, p.Chips)
		}
		paid = p.commit(amount - p.BetInRound)
		t.currentBet = amount
		logged = amount

	case AllIn:
		paid = p.commit(p.Chips)
		if p.BetInRound > t.currentBet {
			t.currentBet = p.BetInRound
		}
		logged = paid

	default:
		return fmt.Errorf("%w: %s is not a player action", ErrIllegalAction, action)
	}

	t.pot += paid
	p.ActedThisStreet = true
	t.record(p, action, logged)
	t.advanceAction(p.Seat)
	return nil
}

// advanceAction passes the action to the next seat, or to nobody once the
// street's betting is over.
func (t *Table) advanceAction(from int) {
	t.actionOn = -1
	if t.IsRoundComplete() || t.bettingClosed() {
		return
	}
	next := t.NextPlayer(from)
	for i := 0; next != nil && i < len(t.players); i, next = i+1, t.NextPlayer(next.Seat) {
		if !next.ActedThisStreet || next.BetInRound != t.currentBet {
			t.actionOn = next.Seat
			return
		}
	}
}

// IsRoundComplete reports whether the current street's betting is over: at
// most one seat still contests the pot, or every seat that can act has
// acted this street and matched the highest wager.
func (t *Table) IsRoundComplete() bool {
	if t.InHandCount() <= 1 {
		return true
	}
	for _, p := range t.players {
		if !p.CanAct() {
			continue
		}
		if !p.ActedThisStreet || p.BetInRound != t.currentBet {
			return false
		}
	}
	return true
}

// bettingClosed reports whether no further decisions are possible this
// street: nobody can act, or a single seat can act and already matches the
// highest wager, so the board runs out.
func (t *Table) bettingClosed() bool {
	var canAct []*Player
	for _, p := range t.players {
		if p.CanAct() {
			canAct = append(canAct, p)
		}
	}
	switch len(canAct) {
	case 0:
		return true
	case 1:
		return canAct[0].BetInRound >= t.currentBet
	default:
		return false
	}
}

// AdvanceStreet closes the current betting round, deals the next street's
// community cards and sets the first player to act. Advancing from the
// river moves the hand to showdown.
func (t *Table) AdvanceStreet() error {
	if !t.inHand || t.street == Showdown {
		return ErrNoHandInProgress
	}
	if t.actionOn >= 0 {
		return fmt.Errorf("%w: waiting on %s", ErrRoundIncomplete, t.players[t.actionOn].Name)
	}
	if t.InHandCount() <= 1 {
		return fmt.Errorf("%w: hand already decided", ErrIllegalAction)
	}

	for _, p := range t.players {
		p.resetForStreet()
	}
	t.currentBet = 0
	t.street++

	n := t.street.cardsFor()
	if n > 0 {
		cards := t.deck.DealN(n)
		if len(cards) != n {
			return fmt.Errorf("%w: deck exhausted dealing %s", ErrInvalidConfig, t.street)
		}
		t.community = append(t.community, cards...)
		t.eventBus.Publish(StreetDealtEvent{
			HandNumber: t.handNumber,
			Street:     t.street,
			Cards:      cards,
			Board:      t.Community(),
			timestamp:  time.Now(),
		})
	}

	t.actionOn = -1
	if t.street != Showdown && !t.bettingClosed() {
		if next := t.NextPlayer(t.button); next != nil {
			t.actionOn = next.Seat
		}
	}
	return nil
}
