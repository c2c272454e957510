package phh

import (
	"strings"

	"github.com/lox/pokertable/internal/deck"
)

// unknownCards stands in for hole cards that were never shown.
const unknownCards = "????"

// FormatCards renders cards the way PHH actions expect them: concatenated
// two-character notations such as "AhKh".
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Notation())
	}
	return b.String()
}

// FormatBoard returns the notation of each board card.
func FormatBoard(cards []deck.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Notation()
	}
	return out
}
