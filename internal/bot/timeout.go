package bot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/game"
)

// DefaultTimeout is how long a wrapped agent gets to decide.
const DefaultTimeout = 5 * time.Second

type timeoutAgent struct {
	agent   game.Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// WithTimeout bounds how long agent may take to decide. When the deadline
// passes, or ctx is cancelled first, the seat checks if checking is free and
// folds otherwise. The inner agent's context is cancelled either way.
func WithTimeout(agent game.Agent, timeout time.Duration, clock quartz.Clock, logger *log.Logger) game.Agent {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &timeoutAgent{
		agent:   agent,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("timeout"),
	}
}

func (a *timeoutAgent) MakeDecision(ctx context.Context, state game.TableState, valid []game.ValidAction) game.Decision {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() { close(timeoutFired) }, "decision")
	defer timer.Stop()

	decisionChan := make(chan game.Decision, 1)
	go func() {
		decisionChan <- a.agent.MakeDecision(ctx, state, valid)
	}()

	var reason string
	select {
	case decision := <-decisionChan:
		if ctx.Err() == nil {
			return decision
		}
		reason = "context cancelled"
	case <-timeoutFired:
		reason = "decision timeout"
	case <-ctx.Done():
		reason = "context cancelled"
	}

	acting, _ := state.Acting()
	a.logger.Warn("Agent did not decide in time",
		"player", acting.Name,
		"hand", state.HandNumber,
		"street", state.Street,
		"timeout", a.timeout,
		"reason", reason)

	if hasAction(game.Check, valid) {
		return game.Decision{Action: game.Check, Reasoning: reason + ", checking"}
	}
	return game.Decision{Action: game.Fold, Reasoning: reason + ", folding"}
}
