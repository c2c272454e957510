// Package bot provides simple decision providers for seats at a table.
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
)

// Kinds lists the bot names accepted by New.
var Kinds = []string{"fold", "call", "random", "tag"}

// New creates a bot by name. rng is only used by bots that need randomness.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch kind {
	case "fold":
		return NewFoldBot(logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "tag":
		return NewTAGBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q", kind)
	}
}

func hasAction(action game.Action, valid []game.ValidAction) bool {
	_, ok := lookup(action, valid)
	return ok
}

func lookup(action game.Action, valid []game.ValidAction) (game.ValidAction, bool) {
	for _, v := range valid {
		if v.Action == action {
			return v, true
		}
	}
	return game.ValidAction{}, false
}

// choose returns the first of the preferred actions that is legal, falling
// back to a fold.
func choose(valid []game.ValidAction, reasoning string, preferred ...game.Action) game.Decision {
	for _, action := range preferred {
		if v, ok := lookup(action, valid); ok {
			return game.Decision{Action: action, Amount: v.MinAmount, Reasoning: reasoning}
		}
	}
	return game.Decision{Action: game.Fold, Reasoning: "fallback: " + reasoning}
}

// checkOrFold is what a seat does when it has nothing better to say.
func checkOrFold(valid []game.ValidAction, reasoning string) game.Decision {
	return choose(valid, reasoning, game.Check, game.Fold)
}
