package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger.WithPrefix("foldbot")}
}

func (f *FoldBot) MakeDecision(_ context.Context, state game.TableState, valid []game.ValidAction) game.Decision {
	if hasAction(game.Check, valid) {
		return game.Decision{Action: game.Check, Reasoning: "fold-bot checking"}
	}
	f.logger.Debug("Folding", "hand", state.HandNumber, "street", state.Street, "to_call", state.ToCall())
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}
