package game

import "fmt"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return streetNames[s]
}

// MarshalText encodes the street by name.
func (s Street) MarshalText() ([]byte, error) {
	if s < Preflop || s > Showdown {
		return nil, fmt.Errorf("unknown street %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name.
func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// cardsFor returns how many community cards are dealt when entering s.
func (s Street) cardsFor() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// Action represents a player action. SmallBlind and BigBlind only appear in
// the action log; they are posted by the table, never chosen.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
	SmallBlind
	BigBlind
)

var actionNames = [...]string{"fold", "check", "call", "raise", "allin", "small_blind", "big_blind"}

func (a Action) String() string {
	if a < Fold || a > BigBlind {
		return "unknown"
	}
	return actionNames[a]
}

// IsBlind reports whether a is a forced blind post.
func (a Action) IsBlind() bool {
	return a == SmallBlind || a == BigBlind
}

// ParseAction parses an action name such as "raise" or "allin".
func ParseAction(s string) (Action, error) {
	switch s {
	case "all_in", "all-in":
		return AllIn, nil
	}
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrIllegalAction, s)
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	if a < Fold || a > BigBlind {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ValidAction represents an action that a player can legally take.
//
// For Call and AllIn the amounts are the chips that would be committed. For
// Raise they bound the raise-to target, the player's total wager this street
// after raising.
type ValidAction struct {
	Action    Action
	MinAmount int
	MaxAmount int
}

// ActionRecord is one entry of the table's append-only action log.
//
// Amount is the chips committed by the action, except for Raise where it is
// the raise-to target.
type ActionRecord struct {
	Hand       int    `json:"hand"`
	Street     Street `json:"street"`
	Player     string `json:"player"`
	Action     Action `json:"action"`
	Amount     int    `json:"amount"`
	PotAfter   int    `json:"pot_after"`
	ChipsAfter int    `json:"chips_after"`
}

func (r ActionRecord) String() string {
	switch r.Action {
	case Fold, Check:
		return fmt.Sprintf("%s %s", r.Player, r.Action)
	case Raise:
		return fmt.Sprintf("%s raises to %d", r.Player, r.Amount)
	default:
		return fmt.Sprintf("%s %s %d", r.Player, r.Action, r.Amount)
	}
}
