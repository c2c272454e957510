package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
)

// CallBot is a calling station: it checks when it can and calls any bet,
// shoving instead when its stack is under ten big blinds and nobody has
// raised yet.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger.WithPrefix("callbot")}
}

func (c *CallBot) MakeDecision(_ context.Context, state game.TableState, valid []game.ValidAction) game.Decision {
	acting, ok := state.Acting()
	if ok && state.BigBlind > 0 && acting.Chips < 10*state.BigBlind && state.CurrentBet <= state.BigBlind {
		if hasAction(game.AllIn, valid) {
			c.logger.Debug("Short stack shove", "player", acting.Name, "chips", acting.Chips)
			return choose(valid, "shoving with short stack", game.AllIn)
		}
	}
	return choose(valid, "call-bot calling", game.Check, game.Call, game.AllIn)
}
