// Package handlog persists completed hands to disk as JSON for replay and
// as PHH for other tools.
package handlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/phh"
)

const (
	filePrefix = "hand_"
	jsonExt    = ".json"
	phhExt     = ".phh"
)

// ErrInvalidRecord is returned when a hand cannot be named or decoded.
var ErrInvalidRecord = errors.New("handlog: invalid hand record")

// Store writes each completed hand to a directory as hand_<id>.json and
// hand_<id>.phh.
type Store struct {
	dir    string
	table  string
	logger *log.Logger

	mu      sync.Mutex
	written int
	failed  int
}

// NewStore creates the directory if needed. table names the table in PHH
// output.
func NewStore(dir, table string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("handlog: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("handlog: create dir: %w", err)
	}
	return &Store{dir: dir, table: table, logger: logger.WithPrefix("handlog")}, nil
}

// Dir returns the directory hands are written to.
func (s *Store) Dir() string { return s.dir }

// Save writes the JSON and PHH files for a hand.
func (s *Store) Save(rec game.HandRecord) error {
	base, err := baseName(rec)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("handlog: encode hand %d: %w", rec.HandNumber, err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, base+jsonExt), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("handlog: write hand %d: %w", rec.HandNumber, err)
	}

	hist, err := phh.FromHistory(rec, s.table)
	if err != nil {
		return fmt.Errorf("handlog: convert hand %d: %w", rec.HandNumber, err)
	}
	encoded, err := phh.EncodeToBytes(hist)
	if err != nil {
		return fmt.Errorf("handlog: encode phh %d: %w", rec.HandNumber, err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, base+phhExt), encoded, 0o644); err != nil {
		return fmt.Errorf("handlog: write phh %d: %w", rec.HandNumber, err)
	}

	s.mu.Lock()
	s.written++
	s.mu.Unlock()
	return nil
}

// OnHand saves a hand and logs failures. It has the signature expected by
// game.NewHandHistory.
func (s *Store) OnHand(rec game.HandRecord) {
	if err := s.Save(rec); err != nil {
		s.mu.Lock()
		s.failed++
		s.mu.Unlock()
		s.logger.Error("Failed to save hand", "hand", rec.HandNumber, "hand_id", rec.HandID, "error", err)
		return
	}
	s.logger.Debug("Saved hand", "hand", rec.HandNumber, "hand_id", rec.HandID)
}

// Stats returns how many hands were saved and how many failed.
func (s *Store) Stats() (written, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written, s.failed
}

// List returns the JSON history files in the store, ordered by name.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("handlog: read dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || filepath.Ext(name) != jsonExt {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}
	slices.Sort(paths)
	return paths, nil
}

// LoadAll reads every hand in the store, ordered by hand number.
func (s *Store) LoadAll() ([]game.HandRecord, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}
	records := make([]game.HandRecord, 0, len(paths))
	for _, path := range paths {
		rec, err := Load(path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	slices.SortStableFunc(records, func(a, b game.HandRecord) int {
		return a.HandNumber - b.HandNumber
	})
	return records, nil
}

// Load reads a JSON hand history written by Save.
func Load(path string) (game.HandRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.HandRecord{}, fmt.Errorf("handlog: %w", err)
	}
	var rec game.HandRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return game.HandRecord{}, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, path, err)
	}
	if len(rec.Seats) == 0 || len(rec.Deck) == 0 {
		return game.HandRecord{}, fmt.Errorf("%w: %s: missing seats or deck", ErrInvalidRecord, path)
	}
	return rec, nil
}

// baseName returns the file name for a hand without extension. Hands
// without an ID fall back to their number.
func baseName(rec game.HandRecord) (string, error) {
	id := rec.HandID
	if id == "" {
		id = strconv.Itoa(rec.HandNumber)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: unusable hand id %q", ErrInvalidRecord, rec.HandID)
	}
	return filePrefix + id, nil
}
