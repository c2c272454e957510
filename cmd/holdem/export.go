package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/handlog"
	"github.com/lox/pokertable/internal/phh"
)

// ExportCmd converts JSON hand histories to a PHH session
type ExportCmd struct {
	Paths []string `arg:"" name:"path" help:"JSON hand history files or directories written by play"`
	Out   string   `short:"o" help:"Write the PHHS session to this file instead of stdout"`
	Table string   `default:"main" help:"Table name recorded in each hand"`
}

func (c *ExportCmd) Run() error {
	var buf bytes.Buffer
	if err := export(&buf, c.Paths, c.Table); err != nil {
		return err
	}
	if c.Out == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	return os.WriteFile(c.Out, buf.Bytes(), 0o644)
}

// export writes every hand found in paths to w as one PHH session.
// Directories are read in hand number order.
func export(w io.Writer, paths []string, table string) error {
	var records []game.HandRecord
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			rec, err := handlog.Load(filepath.Clean(path))
			if err != nil {
				return err
			}
			records = append(records, rec)
			continue
		}

		store, err := handlog.NewStore(path, table, log.New(io.Discard))
		if err != nil {
			return err
		}
		stored, err := store.LoadAll()
		if err != nil {
			return err
		}
		records = append(records, stored...)
	}

	if len(records) == 0 {
		return fmt.Errorf("no hands found in %v", paths)
	}

	hands := make([]*phh.HandHistory, 0, len(records))
	for _, rec := range records {
		hist, err := phh.FromHistory(rec, table)
		if err != nil {
			return fmt.Errorf("hand %s: %w", rec.HandID, err)
		}
		hands = append(hands, hist)
	}
	return phh.EncodeSession(w, hands)
}
