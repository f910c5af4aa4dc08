package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/runner"
	"github.com/lox/blackjacksim/internal/scorestore"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/tui"
	"github.com/sanity-io/litter"
)

// RunCmd plays the configured tables
type RunCmd struct {
	Config    string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file (built-in table if missing)"`
	Table     string `short:"t" help:"Play only the named table"`
	Seed      *int64 `help:"Deterministic RNG seed (overrides config)"`
	MaxRounds *int   `help:"Stop after this many rounds per table, 0 for no limit (overrides config)"`
	CSV       string `help:"Write one CSV line per round to this file (overrides config)"`
	ScoreFile string `short:"s" help:"Merge this run into the aggregate score file (overrides config)"`
	TUI       bool   `help:"Show a live progress view"`
	Quiet     bool   `short:"q" help:"Skip the periodic scoreboard"`
}

func (c *RunCmd) Run(cli *CLI) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.applyOverrides(cfg, cli.LogLevel)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.selectTable(cfg); err != nil {
		return err
	}

	runID := uuid.New()
	logger := stderrLogger(cfg.Simulation.LogLevel)
	if c.TUI && logger.GetLevel() < log.WarnLevel {
		logger.SetLevel(log.WarnLevel)
	}
	logger = logger.With("run", runID.String()[:8])
	if logger.GetLevel() <= log.DebugLevel {
		logger.Debug("Effective configuration", "config", litter.Sdump(cfg))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseSeed := int64(0)
	if c.Seed != nil {
		baseSeed = *c.Seed
	}
	baseSeed = randutil.Resolve(baseSeed)

	var monitor runner.Monitor
	var program *tea.Program
	model := tui.NewModel()
	if c.TUI {
		program = tea.NewProgram(model, tea.WithContext(ctx))
		monitor = tui.NewProgramMonitor(program)
	} else {
		monitor = tui.NewConsoleMonitor(os.Stdout, c.Quiet)
	}

	var runners []*runner.Runner
	var csvFiles []*os.File
	defer func() {
		for _, f := range csvFiles {
			if f != nil {
				f.Close()
			}
		}
	}()
	for i, table := range cfg.Tables {
		seed := tableSeed(table, c.Seed != nil, baseSeed, i)
		rc := runner.Config{
			Table:         table,
			Seed:          seed,
			MaxRounds:     cfg.Simulation.MaxRounds,
			ProgressEvery: cfg.Simulation.ProgressInterval(),
			StatsEvery:    cfg.Simulation.StatsInterval(),
			Logger:        logger,
			Monitor:       monitor,
		}

		var f *os.File
		if cfg.Simulation.CSVFile != "" {
			path := csvPath(cfg.Simulation.CSVFile, table.Name, len(cfg.Tables))
			if f, err = os.Create(path); err != nil {
				logger.Warn("CSV output disabled", "table", table.Name, "error", err)
				f = nil
			} else {
				rc.CSV = f
			}
		}
		csvFiles = append(csvFiles, f)

		r, err := runner.New(rc)
		if err != nil {
			return err
		}
		runners = append(runners, r)
	}

	results, err := c.play(ctx, runners, program, model)
	if err != nil {
		return err
	}

	total := statistics.NewScore()
	for i, res := range results {
		if c.TUI {
			fmt.Println(tui.RenderResult(res, tui.Styled(os.Stdout)))
		}
		if f := csvFiles[i]; f != nil {
			if err := writeAggregateCSV(f, res.Score); err != nil {
				logger.Warn("Writing aggregate CSV failed", "table", res.Table, "error", err)
			}
		}
		if err := total.Merge(res.Score); err != nil {
			logger.Error("Combining table scores failed", "table", res.Table, "error", err)
		}
	}

	if cfg.Simulation.ScoreFile != "" {
		mergeScores(logger, cfg.Simulation.ScoreFile, total, runID)
	}
	return nil
}

func (c *RunCmd) applyOverrides(cfg *config.Config, logLevel string) {
	if logLevel != "" {
		cfg.Simulation.LogLevel = logLevel
	}
	if c.MaxRounds != nil {
		cfg.Simulation.MaxRounds = *c.MaxRounds
	}
	if c.CSV != "" {
		cfg.Simulation.CSVFile = c.CSV
	}
	if c.ScoreFile != "" {
		cfg.Simulation.ScoreFile = c.ScoreFile
	}
}

// selectTable narrows the run to the --table given on the command line.
func (c *RunCmd) selectTable(cfg *config.Config) error {
	if c.Table == "" {
		return nil
	}
	table := cfg.TableByName(c.Table)
	if table == nil {
		return fmt.Errorf("no table named %q in configuration", c.Table)
	}
	cfg.Tables = []config.TableConfig{*table}
	return nil
}

// play runs every table, through the progress view when there is one.
func (c *RunCmd) play(ctx context.Context, runners []*runner.Runner, program *tea.Program, model *tui.Model) ([]*runner.Result, error) {
	if program == nil {
		return runner.RunTables(ctx, runners)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		results []*runner.Result
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := runner.RunTables(ctx, runners)
		program.Send(tui.DoneMsg{Err: err})
		done <- outcome{results, err}
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}
	if model.Interrupted() {
		cancel()
	}
	out := <-done
	return out.results, out.err
}

// tableSeed picks a table's seed. An explicit seed in the file wins unless
// one was given on the command line; otherwise each table gets its own
// stream under the base seed.
func tableSeed(table config.TableConfig, flagSet bool, base int64, index int) int64 {
	if table.Seed != 0 && !flagSet {
		return table.Seed
	}
	return randutil.Derive(base, index)
}

// csvPath returns the per-table CSV path; with several tables the table name
// is inserted before the extension.
func csvPath(path, table string, tables int) string {
	if tables <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + table + ext
}

func writeAggregateCSV(w io.Writer, score *statistics.Score) error {
	cw := csv.NewWriter(w)
	if err := score.WritePerHandCSV(cw); err != nil {
		return err
	}
	if err := score.WriteStreakCSV(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func mergeScores(logger *log.Logger, path string, score *statistics.Score, runID uuid.UUID) {
	agg, err := scorestore.Load(path)
	if err != nil {
		logger.Warn("Starting a fresh aggregate", "file", path, "error", err)
	}
	if err := agg.Merge(score, runID); err != nil {
		logger.Error("Aggregate not updated", "file", path, "error", err)
		return
	}
	if err := scorestore.Save(path, agg); err != nil {
		logger.Error("Saving aggregate failed", "file", path, "error", err)
	}
	fmt.Print(agg.Summary())
}
