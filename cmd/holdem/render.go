package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/statistics"
)

// Styles holds the lipgloss styles used for terminal output
type Styles struct {
	Title     lipgloss.Style
	Street    lipgloss.Style
	Player    lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Muted     lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Error     lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Street: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Player: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
	}
}

var styles = defaultStyles()

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return styles.RedCard.Render(c.String())
	}
	return styles.BlackCard.Render(c.String())
}

func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return styles.Muted.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func renderAction(rec game.ActionRecord) string {
	var what string
	switch rec.Action {
	case game.Fold, game.Check:
		what = rec.Action.String()
	case game.Raise:
		what = fmt.Sprintf("raises to %d", rec.Amount)
	case game.AllIn:
		what = fmt.Sprintf("all-in for %d", rec.Amount)
	case game.Call:
		what = fmt.Sprintf("calls %d", rec.Amount)
	case game.SmallBlind:
		what = fmt.Sprintf("posts small blind %d", rec.Amount)
	case game.BigBlind:
		what = fmt.Sprintf("posts big blind %d", rec.Amount)
	default:
		what = fmt.Sprintf("%s %d", rec.Action, rec.Amount)
	}
	return fmt.Sprintf("  %s %s %s",
		styles.Player.Render(rec.Player),
		styles.Action.Render(what),
		styles.Muted.Render(fmt.Sprintf("(pot %d, stack %d)", rec.PotAfter, rec.ChipsAfter)))
}

// eventPrinter writes a readable hand log as table events arrive.
type eventPrinter struct {
	w io.Writer
}

func newEventPrinter(w io.Writer) *eventPrinter {
	return &eventPrinter{w: w}
}

// OnEvent implements game.EventListener
func (p *eventPrinter) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.HandStartEvent:
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, styles.Title.Render(fmt.Sprintf("Hand #%d", e.HandNumber)),
			styles.Muted.Render(fmt.Sprintf("blinds %d/%d, button %s", e.SmallBlind, e.BigBlind, seatName(e.Seats, e.Button))))
		for _, s := range e.Seats {
			if !s.Active {
				continue
			}
			fmt.Fprintf(p.w, "  %s %s %s\n", styles.Player.Render(s.Name), renderCards(s.HoleCards), styles.Muted.Render(strconv.Itoa(s.Chips)))
		}
	case game.StreetDealtEvent:
		fmt.Fprintf(p.w, "%s %s\n", styles.Street.Render(strings.ToUpper(e.Street.String())), renderCards(e.Board))
	case game.PlayerActionEvent:
		fmt.Fprintln(p.w, renderAction(e.Record))
	case game.ShowdownEvent:
		fmt.Fprintln(p.w, styles.Street.Render("SHOWDOWN"))
		for _, h := range e.Hands {
			fmt.Fprintf(p.w, "  %s shows %s %s\n", styles.Player.Render(h.Player), renderCards(h.HoleCards), styles.Muted.Render(h.Hand.Describe()))
		}
	case game.PotAwardEvent:
		fmt.Fprintln(p.w, renderResult(e.Result))
	}
}

func seatName(seats []game.SeatSnapshot, seat int) string {
	for _, s := range seats {
		if s.Seat == seat {
			return s.Name
		}
	}
	return "?"
}

func renderResult(result game.GameResult) string {
	var b strings.Builder
	for i, w := range result.Winners {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %s wins %d", w.Player, w.Amount)
		if w.Hand != nil {
			line += " with " + w.Hand.Describe()
		}
		b.WriteString(styles.Winner.Render(line))
	}
	for _, name := range slices.Sorted(maps.Keys(result.Refunds)) {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  %s takes back %d uncalled", name, result.Refunds[name])))
	}
	return b.String()
}

func renderStandings(standings []game.Standing) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Muted).
		Headers("#", "PLAYER", "SEAT", "CHIPS")
	for i, s := range standings {
		t.Row(strconv.Itoa(i+1), s.Name, strconv.Itoa(s.Seat+1), strconv.Itoa(s.Chips))
	}
	return t.String()
}

func renderStats(tracker *statistics.Tracker) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Muted).
		Headers("PLAYER", "HANDS", "BB/100", "SHOWDOWN BB", "NON-SHOWDOWN BB", "MEDIAN BB")
	for _, name := range tracker.Seats() {
		s, _ := tracker.Stats(name)
		t.Row(name,
			strconv.Itoa(s.Hands),
			fmt.Sprintf("%+.1f", s.BBPer100()),
			fmt.Sprintf("%+.1f", s.ShowdownBB),
			fmt.Sprintf("%+.1f", s.NonShowdownBB),
			fmt.Sprintf("%+.2f", s.Median()))
	}
	return t.String()
}
