package statistics

import (
	"maps"
	"slices"
	"sync"

	"github.com/lox/pokertable/internal/game"
)

// Tracker is a game.EventListener that records every dealt-in seat's
// result for each completed hand.
type Tracker struct {
	mu       sync.Mutex
	bigBlind int
	starting map[string]int
	showdown map[string]bool
	seats    map[string]*Statistics
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seats: make(map[string]*Statistics)}
}

// OnEvent implements game.EventListener
func (t *Tracker) OnEvent(event game.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartEvent:
		t.bigBlind = e.BigBlind
		t.starting = make(map[string]int, len(e.Seats))
		t.showdown = make(map[string]bool, len(e.Seats))
		for _, s := range e.Seats {
			if s.Active {
				t.starting[s.Name] = s.Chips
			}
		}
	case game.ShowdownEvent:
		for _, h := range e.Hands {
			t.showdown[h.Player] = true
		}
	case game.PotAwardEvent:
		if t.starting == nil || t.bigBlind <= 0 {
			return
		}
		bb := float64(t.bigBlind)
		for name, start := range t.starting {
			stats, ok := t.seats[name]
			if !ok {
				stats = &Statistics{}
				t.seats[name] = stats
			}
			stats.Add(HandResult{
				NetBB:          float64(e.Result.Stacks[name]-start) / bb,
				WentToShowdown: t.showdown[name],
				PotBB:          float64(e.Result.Pot) / bb,
			})
		}
		t.starting = nil
	}
}

// Seats returns the names of every seat with results, sorted.
func (t *Tracker) Seats() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Sorted(maps.Keys(t.seats))
}

// Stats returns a copy of a seat's statistics.
func (t *Tracker) Stats(name string) (Statistics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.seats[name]
	if !ok {
		return Statistics{}, false
	}
	cp := *s
	cp.Values = slices.Clone(s.Values)
	return cp, true
}

// Merge folds another tracker's results into t.
func (t *Tracker) Merge(other *Tracker) {
	if other == t {
		return
	}
	other.mu.Lock()
	snapshot := make(map[string]Statistics, len(other.seats))
	for name, s := range other.seats {
		cp := *s
		cp.Values = slices.Clone(s.Values)
		snapshot[name] = cp
	}
	other.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for name, s := range snapshot {
		stats, ok := t.seats[name]
		if !ok {
			stats = &Statistics{}
			t.seats[name] = stats
		}
		stats.Merge(&s)
	}
}
