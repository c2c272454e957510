package game

import "errors"

var (
	// ErrIllegalAction is returned for actions the betting rules do not allow
	// in the current state, such as checking facing a bet.
	ErrIllegalAction = errors.New("illegal action")

	// ErrOutOfTurn is returned when a seat acts while another seat is to act.
	ErrOutOfTurn = errors.New("not this player's turn")

	// ErrPlayerCannotAct is returned when a folded, all-in or eliminated seat
	// tries to act.
	ErrPlayerCannotAct = errors.New("player cannot act")

	ErrTableFull        = errors.New("table is full")
	ErrDuplicatePlayer  = errors.New("duplicate player name")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrNoHandInProgress = errors.New("no hand in progress")
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	ErrRoundIncomplete  = errors.New("betting round incomplete")
	ErrInvalidConfig    = errors.New("invalid table config")

	// ErrChipConservation signals chips were created or destroyed. It is
	// always a bug.
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrReplayMismatch is returned when replaying a recorded hand diverges
	// from the recording.
	ErrReplayMismatch = errors.New("replay mismatch")
)
