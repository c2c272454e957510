package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/handlog"
)

// ReplayCmd re-runs recorded hands through a fresh table
type ReplayCmd struct {
	Files []string `arg:"" name:"file" help:"JSON hand history files" type:"existingfile"`
	Quiet bool     `short:"q" help:"Only report whether each hand matched"`
}

func (c *ReplayCmd) Run() error {
	return replayFiles(os.Stdout, c.Files, c.Quiet)
}

func replayFiles(w io.Writer, files []string, quiet bool) error {
	mismatches := 0
	for _, path := range files {
		rec, err := handlog.Load(path)
		if err != nil {
			return err
		}

		var listeners []game.EventListener
		if !quiet {
			listeners = append(listeners, newEventPrinter(w))
		}

		if _, err := game.Replay(rec, listeners...); err != nil {
			mismatches++
			fmt.Fprintln(w, styles.Error.Render(fmt.Sprintf("hand %d (%s): %v", rec.HandNumber, rec.HandID, err)))
			continue
		}
		fmt.Fprintln(w, styles.Winner.Render(fmt.Sprintf("hand %d (%s): replay matches", rec.HandNumber, rec.HandID)))
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d hands did not replay: %w", mismatches, len(files), game.ErrReplayMismatch)
	}
	return nil
}
