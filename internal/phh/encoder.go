package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lox/pokertable/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSession writes several hands as one PHHS file, each hand in its
// own numbered section starting at 1.
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatAction converts an engine action to a PHH action string. position
// is the player's PHH index (0-based) and totalBet the player's total
// commitment on the street after the action. The boolean is false for
// actions PHH records elsewhere (blind posts) or cannot express.
func FormatAction(position int, action game.Action, totalBet int, raised bool) (string, bool) {
	player := fmt.Sprintf("p%d", position+1)
	switch action {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Raise:
		if totalBet <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, totalBet), true
	case game.AllIn:
		// An all-in that doesn't top the current bet is a call.
		if !raised {
			return player + " cc", true
		}
		return fmt.Sprintf("%s cbr %d", player, totalBet), true
	case game.SmallBlind, game.BigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, action, totalBet), true
	}
}
