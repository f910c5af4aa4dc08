// Package runner drives a table until its watched players are bankrupt.
package runner

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Reasons a run stops.
const (
	StopBankrupt   = "all watched players bankrupt"
	StopRoundLimit = "round limit reached"
	StopCancelled  = "cancelled"
)

// Config holds configuration for one table run
type Config struct {
	Table config.TableConfig
	// Seed must already be resolved; zero is a valid seed here.
	Seed      int64
	MaxRounds int

	ProgressEvery time.Duration
	StatsEvery    time.Duration

	// CSV receives one line per round when set.
	CSV io.Writer
	// Shoe replaces the shuffled shoe, for scripted runs.
	Shoe *deck.Shoe

	Clock   quartz.Clock
	Logger  *log.Logger
	Monitor Monitor
}

// PlayerResult is a seat's state when the run stopped.
type PlayerResult struct {
	Name     string
	Strategy string
	Purse    int
	Watched  bool
	Bankrupt bool
	// BankruptRound is the round that broke the player, zero if the player
	// was never solvent at this table or still is.
	BankruptRound int
	Tally         game.ActionTally
}

// Result summarises a finished run.
type Result struct {
	Table      string
	Seed       int64
	Rounds     int
	Elapsed    time.Duration
	Reason     string
	Players    []PlayerResult
	Scoreboard string
	// Score is the sum of every seat's score.
	Score *statistics.Score
	// Final is the table as it stood when the run stopped.
	Final *game.Table
}

// Runner plays rounds on one table.
type Runner struct {
	cfg     Config
	table   *game.Table
	watched []bool
	broke   []int

	csv     *csv.Writer
	clock   quartz.Clock
	logger  *log.Logger
	monitor Monitor

	shuffles *shuffleCounter

	started      bool
	start        time.Time
	lastProgress time.Time
	lastStats    time.Time
}

// New seats the configured players and builds the table.
func New(cfg Config) (*Runner, error) {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Monitor == nil {
		cfg.Monitor = NullMonitor{}
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = config.DefaultProgressEvery
	}
	if cfg.StatsEvery <= 0 {
		cfg.StatsEvery = config.DefaultStatsEvery
	}
	logger := cfg.Logger.With("table", cfg.Table.Name)

	players := make([]*game.Player, 0, len(cfg.Table.Seats))
	watched := make([]bool, 0, len(cfg.Table.Seats))
	anyWatched := false
	for _, seat := range cfg.Table.Seats {
		strategy, err := bot.New(seat.Strategy, logger.With("seat", seat.Name))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		players = append(players, game.NewPlayer(seat.Name, strategy, seat.Purse))
		watched = append(watched, seat.Watched())
		anyWatched = anyWatched || seat.Watched()
	}
	// With nobody watched the run would never end on its own.
	if !anyWatched {
		for i := range watched {
			watched[i] = true
		}
	}

	bus := game.NewEventBus()
	shuffles := &shuffleCounter{}
	bus.Subscribe(shuffles)

	opts := []game.TableOption{game.WithLogger(logger), game.WithEventBus(bus)}
	if cfg.Shoe != nil {
		opts = append(opts, game.WithShoe(cfg.Shoe))
	}
	table, err := game.NewTable(randutil.New(cfg.Seed), cfg.Table.Rules(), players, opts...)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", cfg.Table.Name, err)
	}

	r := &Runner{
		cfg:      cfg,
		table:    table,
		watched:  watched,
		broke:    make([]int, len(players)),
		shuffles: shuffles,
		clock:    cfg.Clock,
		logger:   logger,
		monitor:  cfg.Monitor,
	}
	if cfg.CSV != nil {
		r.csv = csv.NewWriter(cfg.CSV)
	}
	return r, nil
}

// Table returns the table being played
func (r *Runner) Table() *game.Table { return r.table }

// Run plays rounds until every watched player is bankrupt, the round limit
// is reached or ctx is cancelled. A round that fails aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.begin()
	reason := ""
	for reason == "" {
		if ctx.Err() != nil {
			reason = StopCancelled
			break
		}
		if reason = r.stopReason(); reason != "" {
			break
		}
		if err := r.Step(); err != nil {
			return nil, err
		}
	}
	return r.finish(reason)
}

// Step plays a single round and emits any due notifications.
func (r *Runner) Step() error {
	r.begin()
	if err := r.table.PlayRound(); err != nil {
		r.logger.Error("Round failed", "error", err)
		return fmt.Errorf("table %s: %w", r.cfg.Table.Name, err)
	}
	rounds := r.table.Rounds()

	for i, p := range r.table.Players() {
		if r.broke[i] == 0 && p.Bankrupt(r.table.Rules()) {
			r.broke[i] = rounds
			r.logger.Info("Player bankrupt", "player", p.Name, "round", rounds, "purse", p.Purse())
			r.monitor.OnBankrupt(r.cfg.Table.Name, p.Name, rounds)
		}
	}

	r.writeCSV(append([]string{
		strconv.Itoa(rounds),
		strconv.FormatInt(r.clock.Since(r.start).Nanoseconds(), 10),
	}, r.table.CSVRow()...))

	now := r.clock.Now()
	if now.Sub(r.lastProgress) >= r.cfg.ProgressEvery {
		r.lastProgress = now
		r.monitor.OnProgress(r.progress())
	}
	if now.Sub(r.lastStats) >= r.cfg.StatsEvery {
		r.lastStats = now
		r.monitor.OnScoreboard(r.cfg.Table.Name, r.table.Scoreboard())
	}
	return nil
}

func (r *Runner) begin() {
	if r.started {
		return
	}
	r.started = true
	r.start = r.clock.Now()
	r.lastProgress = r.start
	r.lastStats = r.start

	names := make([]string, 0, len(r.table.Players()))
	for i, p := range r.table.Players() {
		names = append(names, p.Name)
		// Seated without the minimum; never announced.
		if p.Bankrupt(r.table.Rules()) {
			r.broke[i] = -1
		}
	}
	r.logger.Info("Run starting", "seed", r.cfg.Seed, "rules", r.table.Rules(), "players", names, "maxRounds", r.cfg.MaxRounds)
	r.monitor.OnRunStart(r.cfg.Table.Name, names, r.cfg.MaxRounds)

	r.writeCSV(append([]string{"Games Played", "Time in Play (ns)"}, r.table.CSVHeader()...))
}

func (r *Runner) stopReason() string {
	if r.cfg.MaxRounds > 0 && r.table.Rounds() >= r.cfg.MaxRounds {
		return StopRoundLimit
	}
	for i, p := range r.table.Players() {
		if r.watched[i] && !p.Bankrupt(r.table.Rules()) {
			return ""
		}
	}
	return StopBankrupt
}

func (r *Runner) writeCSV(record []string) {
	if r.csv == nil {
		return
	}
	if err := r.csv.Write(record); err == nil {
		r.csv.Flush()
	}
	if err := r.csv.Error(); err != nil {
		r.logger.Warn("Disabling CSV output", "error", err)
		r.csv = nil
	}
}

func (r *Runner) progress() Progress {
	solvent := 0
	for _, p := range r.table.Players() {
		if !p.Bankrupt(r.table.Rules()) {
			solvent++
		}
	}
	return Progress{
		Table:    r.cfg.Table.Name,
		Rounds:   r.table.Rounds(),
		Elapsed:  r.clock.Since(r.start),
		Solvent:  solvent,
		Players:  len(r.table.Players()),
		HouseNet: r.table.HouseNet(),
		Shoe:     r.table.ShoeCount(),
		Shuffles: r.shuffles.n,
	}
}

// shuffleCounter counts reshuffles published on the table bus.
type shuffleCounter struct {
	n int
}

func (c *shuffleCounter) OnEvent(event game.GameEvent) {
	if event.EventType() == game.EventTypeShoeShuffled {
		c.n++
	}
}

func (r *Runner) finish(reason string) (*Result, error) {
	score, err := r.table.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", r.cfg.Table.Name, err)
	}

	result := &Result{
		Table:      r.cfg.Table.Name,
		Seed:       r.cfg.Seed,
		Rounds:     r.table.Rounds(),
		Elapsed:    r.clock.Since(r.start),
		Reason:     reason,
		Scoreboard: r.table.Scoreboard(),
		Score:      score,
		Final:      r.table,
	}
	for i, p := range r.table.Players() {
		result.Players = append(result.Players, PlayerResult{
			Name:          p.Name,
			Strategy:      r.cfg.Table.Seats[i].Strategy,
			Purse:         p.Purse(),
			Watched:       r.watched[i],
			Bankrupt:      p.Bankrupt(r.table.Rules()),
			BankruptRound: max(r.broke[i], 0),
			Tally:         p.Tally(),
		})
	}

	r.logger.Info("Run complete", "reason", reason, "rounds", result.Rounds, "elapsed", result.Elapsed, "houseNet", r.table.HouseNet())
	r.monitor.OnProgress(r.progress())
	r.monitor.OnRunComplete(result)
	return result, nil
}

// RunTables runs every runner on its own goroutine. The first failure
// cancels the others; results are returned in runner order.
func RunTables(ctx context.Context, runners []*Runner) ([]*Result, error) {
	results := make([]*Result, len(runners))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range runners {
		g.Go(func() error {
			res, err := r.Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
