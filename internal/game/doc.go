// Package game implements a Texas Hold'em table: seats, the street-by-street
// betting protocol, showdown and layered side-pot settlement.
//
// The main types are Table, which owns all per-hand state and validates
// every action, and Engine, which drives a Table through complete hands by
// asking each seat's Agent for decisions.
//
// # Basic Usage
//
// Run a tournament between a few bots:
//
//	table, _ := game.NewTable(game.TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 6, Seed: 42}, nil)
//	engine := game.NewEngine(table, log.Default())
//	engine.Sit("alice", 1000, bot.NewCallBot(log.Default()))
//	engine.Sit("bob", 1000, bot.NewFoldBot(log.Default()))
//	standings, err := engine.RunTournament(ctx, 100)
//
// Or step a hand manually:
//
//	table.StartNewHand()
//	table.ProcessAction("alice", game.Call, 0)
//	table.ProcessAction("bob", game.Check, 0)
//	table.AdvanceStreet()
//
// # Determinism
//
// Each hand is shuffled from an RNG derived from the table seed and the
// hand number, so a seed reproduces every deal. A specific card order can be
// forced with WithDeck, which is how recorded hands are replayed.
//
// # Observing
//
// Every state transition is published as a typed Event on the table's
// EventBus. HandHistory is a listener that records complete hands for
// persistence and Replay.
package game
