package bot

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance. Pass a seeded rng for
// reproducible play.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

func (r *RandBot) MakeDecision(_ context.Context, _ game.TableState, valid []game.ValidAction) game.Decision {
	if len(valid) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	choice := valid[r.rng.IntN(len(valid))]
	amount := choice.MinAmount
	if choice.Action == game.Raise && choice.MaxAmount > choice.MinAmount {
		amount += r.rng.IntN(choice.MaxAmount - choice.MinAmount + 1)
	}
	return game.Decision{Action: choice.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
