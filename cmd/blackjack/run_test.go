package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVPath(t *testing.T) {
	assert.Equal(t, "run.csv", csvPath("run.csv", "main", 1))
	assert.Equal(t, "out/run-high.csv", csvPath("out/run.csv", "high", 2))
	assert.Equal(t, "run-low", csvPath("run", "low", 3))
}

func TestTableSeed(t *testing.T) {
	fixed := config.TableConfig{Name: "fixed", Seed: 99}
	open := config.TableConfig{Name: "open"}

	assert.Equal(t, int64(99), tableSeed(fixed, false, 5, 0))
	assert.Equal(t, randutil.Derive(5, 0), tableSeed(fixed, true, 5, 0), "command line seed wins")
	assert.Equal(t, randutil.Derive(5, 1), tableSeed(open, false, 5, 1))
	assert.NotEqual(t, tableSeed(open, false, 5, 0), tableSeed(open, false, 5, 1))
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	rounds := 250
	cmd := &RunCmd{MaxRounds: &rounds, CSV: "x.csv", ScoreFile: "s.bin"}
	cmd.applyOverrides(cfg, "debug")

	assert.Equal(t, "debug", cfg.Simulation.LogLevel)
	assert.Equal(t, 250, cfg.Simulation.MaxRounds)
	assert.Equal(t, "x.csv", cfg.Simulation.CSVFile)
	assert.Equal(t, "s.bin", cfg.Simulation.ScoreFile)
	require.NoError(t, cfg.Validate())

	untouched := config.Default()
	(&RunCmd{}).applyOverrides(untouched, "")
	assert.Equal(t, config.DefaultLogLevel, untouched.Simulation.LogLevel)
	assert.Zero(t, untouched.Simulation.MaxRounds)
}

func TestSelectTable(t *testing.T) {
	cfg, err := config.Parse([]byte(`
table "low" {
  seat "a" { strategy = "wiki" }
}
table "high" {
  minimum_bet = 1000
  seat "b" { strategy = "darwin" }
}
`), "tables.hcl")
	require.NoError(t, err)

	require.NoError(t, (&RunCmd{}).selectTable(cfg))
	assert.Len(t, cfg.Tables, 2)

	require.NoError(t, (&RunCmd{Table: "high"}).selectTable(cfg))
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "high", cfg.Tables[0].Name)
	assert.Equal(t, 1000, cfg.Tables[0].MinimumBet)

	assert.ErrorContains(t, (&RunCmd{Table: "missing"}).selectTable(cfg), `"missing"`)
}

func TestNewLoggerLevels(t *testing.T) {
	for level, want := range map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
	} {
		assert.Equal(t, want, newLogger(io.Discard, level).GetLevel(), level)
	}
}

func TestWriteAggregateCSV(t *testing.T) {
	score := statistics.NewScore()
	require.NoError(t, score.Record(statistics.Won, statistics.Situation{UpCard: 10, Total: 20}))

	var buf bytes.Buffer
	require.NoError(t, writeAggregateCSV(&buf, score))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Player Soft/Hard Hand,Up Card Value,Player Hand Value,"))
	assert.Contains(t, out, "Result,Length 1\n")
	assert.Contains(t, out, "Won,1\n")
}
