package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/lox/blackjacksim/internal/scorestore"
)

// ScoresCmd prints the persisted cross-run aggregate
type ScoresCmd struct {
	ScoreFile string `short:"s" default:"blackjack-scores.bin" help:"Aggregate score file"`
	CSV       bool   `help:"Write the per-hand and streak tables as CSV instead"`
}

func (c *ScoresCmd) Run(cli *CLI) error {
	logger := stderrLogger(cli.LogLevel)

	agg, err := scorestore.Load(c.ScoreFile)
	if err != nil {
		logger.Warn("Score file unusable, showing an empty aggregate", "file", c.ScoreFile, "error", err)
	}

	if c.CSV {
		w := csv.NewWriter(os.Stdout)
		if err := agg.Score.WritePerHandCSV(w); err != nil {
			return err
		}
		if err := agg.Score.WriteStreakCSV(w); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	fmt.Print(agg.Summary())
	for _, id := range agg.Recent {
		fmt.Printf("  run %s\n", id)
	}
	return nil
}
