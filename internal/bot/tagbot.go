package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/game"
)

// TAGBot plays tight-aggressive: it raises strong starting hands, calls
// with playable ones and folds the rest. After the flop it bets made hands
// and gives up without one.
type TAGBot struct {
	mu        sync.Mutex
	rng       *rand.Rand
	bluffRate float64
	logger    *log.Logger
}

// NewTAGBot creates a TAG bot. The rng drives the occasional bluff; a nil
// rng disables bluffing.
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, bluffRate: 0.05, logger: logger.WithPrefix("tagbot")}
}

type handTier int

const (
	tierTrash handTier = iota
	tierPlayable
	tierPremium
)

// preflopTier buckets two hole cards.
func preflopTier(hole []deck.Card) handTier {
	if len(hole) != 2 {
		return tierTrash
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := hole[0].Suit == hole[1].Suit

	switch {
	case hi == lo && hi >= deck.Ten:
		return tierPremium
	case hi == deck.Ace && lo >= deck.Queen:
		return tierPremium
	case hi == deck.King && lo == deck.Queen && suited:
		return tierPremium
	case hi == lo:
		return tierPlayable
	case lo >= deck.Ten:
		return tierPlayable
	case hi == deck.Ace && suited:
		return tierPlayable
	case suited && hi-lo == 1 && lo >= deck.Five:
		return tierPlayable
	}
	return tierTrash
}

func (b *TAGBot) MakeDecision(_ context.Context, state game.TableState, valid []game.ValidAction) game.Decision {
	acting, ok := state.Acting()
	if !ok {
		return checkOrFold(valid, "tag-bot cannot see its seat")
	}

	if state.Street == game.Preflop {
		return b.preflop(state, acting, valid)
	}
	return b.postflop(state, acting, valid)
}

func (b *TAGBot) preflop(state game.TableState, acting game.PlayerState, valid []game.ValidAction) game.Decision {
	tier := preflopTier(acting.HoleCards)
	notation := deck.FormatCards(acting.HoleCards)

	switch tier {
	case tierPremium:
		return b.raise(valid, fmt.Sprintf("premium hand %s", notation))
	case tierPlayable:
		// Don't play into a re-raise with a marginal hand.
		if state.CurrentBet > 3*state.BigBlind {
			return checkOrFold(valid, fmt.Sprintf("playable hand %s facing a raise", notation))
		}
		return choose(valid, fmt.Sprintf("playable hand %s", notation), game.Check, game.Call)
	default:
		if b.bluff() {
			return b.raise(valid, fmt.Sprintf("bluffing with %s", notation))
		}
		return checkOrFold(valid, fmt.Sprintf("weak hand %s", notation))
	}
}

func (b *TAGBot) postflop(state game.TableState, acting game.PlayerState, valid []game.ValidAction) game.Decision {
	cards := append(append([]deck.Card(nil), acting.HoleCards...), state.Community...)
	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		b.logger.Warn("Failed to evaluate hand", "player", acting.Name, "cards", deck.FormatCards(cards), "error", err)
		return checkOrFold(valid, "unreadable hand")
	}

	toCall := state.ToCall()
	switch {
	case hand.Category >= evaluator.TwoPair:
		return b.raise(valid, "value bet with "+hand.Describe())
	case hand.Category == evaluator.OnePair:
		// Call bets up to the size of the pot.
		if toCall > state.Pot {
			return checkOrFold(valid, hand.Describe()+" against a big bet")
		}
		return choose(valid, "showdown value with "+hand.Describe(), game.Check, game.Call)
	default:
		if toCall == 0 && b.bluff() {
			return b.raise(valid, "bluffing with "+hand.Describe())
		}
		return checkOrFold(valid, "nothing with "+hand.Describe())
	}
}

// raise makes a minimum raise when allowed, otherwise the strongest
// legal action available.
func (b *TAGBot) raise(valid []game.ValidAction, reasoning string) game.Decision {
	return choose(valid, reasoning, game.Raise, game.AllIn, game.Call, game.Check)
}

func (b *TAGBot) bluff() bool {
	if b.rng == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64() < b.bluffRate
}
