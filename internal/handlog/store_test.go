package handlog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// playHands runs a short game with the store recording every hand.
func playHands(t *testing.T, store *Store, hands int) *game.HandHistory {
	t.Helper()

	tbl, err := game.NewTable(game.TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 3, StartingChips: 300, Seed: 5}, nil)
	require.NoError(t, err)
	engine := game.NewEngine(tbl, testLogger())

	rng := randutil.New(5)
	for _, kind := range []string{"random", "tag", "call"} {
		agent, err := bot.New(kind, rng, testLogger())
		require.NoError(t, err)
		require.NoError(t, engine.Sit(kind, 0, agent))
	}

	history := game.NewHandHistory(store.OnHand)
	engine.EventBus().Subscribe(history)

	_, err = engine.RunTournament(context.Background(), hands)
	require.NoError(t, err)
	return history
}

func TestStoreSavesAndLoads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, "test", testLogger())
	require.NoError(t, err)

	history := playHands(t, store, 15)
	played := history.Hands()
	require.NotEmpty(t, played)

	written, failed := store.Stats()
	assert.Equal(t, len(played), written)
	assert.Zero(t, failed)

	for _, rec := range played {
		assert.FileExists(t, filepath.Join(dir, "hand_"+rec.HandID+".json"))
		assert.FileExists(t, filepath.Join(dir, "hand_"+rec.HandID+".phh"))
	}

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, len(played))
	for i, rec := range loaded {
		assert.Equal(t, played[i].HandNumber, rec.HandNumber)
		assert.Equal(t, played[i].Actions, rec.Actions)
		assert.Equal(t, played[i].Deck, rec.Deck)
	}
}

func TestLoadedHandsReplay(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), "test", testLogger())
	require.NoError(t, err)
	playHands(t, store, 10)

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, loaded)

	for _, rec := range loaded {
		result, err := game.Replay(rec)
		require.NoError(t, err, "hand %d", rec.HandNumber)
		assert.Equal(t, rec.Result.Stacks, result.Stacks)
	}
}

func TestStorePHHContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, "felt", testLogger())
	require.NoError(t, err)
	history := playHands(t, store, 1)

	rec, ok := history.Last()
	require.True(t, ok)

	data, err := os.ReadFile(filepath.Join(dir, "hand_"+rec.HandID+".phh"))
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "variant = \"NT\"\n"))
	assert.Contains(t, out, "table = \"felt\"")
	assert.Contains(t, out, "hand = \""+rec.HandID+"\"")
}

func TestListIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, "", testLogger())
	require.NoError(t, err)

	for _, name := range []string{"notes.json", "hand_1.phh", "hand_1.json.tmp.123", "hand_2.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "hand_dir.json"), 0o755))

	paths, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "hand_2.json")}, paths)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte("{not json"), 0o644))
	_, err = Load(garbled)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"hand_number": 1}`), 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestSaveRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), "", testLogger())
	require.NoError(t, err)

	for _, id := range []string{"../escape", `a\b`, ".."} {
		err := store.Save(game.HandRecord{HandID: id})
		assert.ErrorIs(t, err, ErrInvalidRecord, id)
	}
}

func TestOnHandCountsFailures(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), "", testLogger())
	require.NoError(t, err)

	// No blind posts, so PHH conversion fails after the JSON is written.
	store.OnHand(game.HandRecord{HandNumber: 3, HandID: "broken"})

	written, failed := store.Stats()
	assert.Zero(t, written)
	assert.Equal(t, 1, failed)
}

func TestNewStoreRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := NewStore("", "", testLogger())
	assert.Error(t, err)
}
