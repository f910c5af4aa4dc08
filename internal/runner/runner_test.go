package runner

import (
	"bytes"
	"context"
	"encoding/csv"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	mu        sync.Mutex
	starts    []string
	progress  []Progress
	boards    int
	bankrupts []string
	completed []*Result
}

func (m *recordingMonitor) OnRunStart(table string, _ []string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts = append(m.starts, table)
}

func (m *recordingMonitor) OnProgress(p Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = append(m.progress, p)
}

func (m *recordingMonitor) OnScoreboard(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards++
}

func (m *recordingMonitor) OnBankrupt(_, player string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bankrupts = append(m.bankrupts, player)
}

func (m *recordingMonitor) OnRunComplete(r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, r)
}

func ptr[T any](v T) *T { return &v }

func smallTable(name string, seats ...config.SeatConfig) config.TableConfig {
	return config.TableConfig{
		Name:               name,
		MinimumBet:         10,
		Decks:              2,
		InitialShuffles:    2,
		SubsequentShuffles: 1,
		ReshuffleMin:       ptr(0.2),
		ReshuffleMax:       ptr(0.3),
		Seats:              seats,
	}
}

func TestRunRoundLimit(t *testing.T) {
	var out bytes.Buffer
	mon := &recordingMonitor{}
	r, err := New(Config{
		Table: smallTable("main",
			config.SeatConfig{Name: "dealer", Strategy: "dealer", Purse: 100000},
			config.SeatConfig{Name: "darwin", Strategy: "darwin", Purse: 100000},
		),
		Seed:      7,
		MaxRounds: 50,
		CSV:       &out,
		Clock:     quartz.NewMock(t),
		Monitor:   mon,
	})
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopRoundLimit, res.Reason)
	assert.Equal(t, 50, res.Rounds)
	assert.Equal(t, int64(7), res.Seed)
	require.Len(t, res.Players, 2)

	total := res.Final.HouseNet()
	for _, p := range res.Players {
		assert.Zero(t, p.BankruptRound)
		total += p.Purse
	}
	assert.Equal(t, 200000, total, "chips are conserved")
	assert.Equal(t, res.Score.TotalPlayed(), res.Final.Players()[0].Score().TotalPlayed()+res.Final.Players()[1].Score().TotalPlayed())

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 51)
	assert.Equal(t, []string{"Games Played", "Time in Play (ns)", "Cash"}, records[0][:3])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "50", records[50][0])
	assert.Equal(t, len(records[0]), len(records[50]))

	require.NotEmpty(t, mon.progress)
	final := mon.progress[len(mon.progress)-1]
	assert.Equal(t, 50, final.Rounds)
	assert.Positive(t, final.Shuffles, "a two deck shoe is reshuffled within 50 rounds")

	assert.Equal(t, []string{"main"}, mon.starts)
	require.Len(t, mon.completed, 1)
	assert.Same(t, res, mon.completed[0])
}

func TestRunUntilBankrupt(t *testing.T) {
	mon := &recordingMonitor{}
	r, err := New(Config{
		Table: smallTable("main",
			config.SeatConfig{Name: "dealer", Strategy: "dealer", Purse: 30},
			config.SeatConfig{Name: "counter", Strategy: "counting", Purse: 100000, Watch: ptr(false)},
		),
		Seed:      3,
		MaxRounds: 100000,
		Clock:     quartz.NewMock(t),
		Monitor:   mon,
	})
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StopBankrupt, res.Reason)

	dealer, counter := res.Players[0], res.Players[1]
	assert.True(t, dealer.Watched)
	assert.Equal(t, res.Rounds, dealer.BankruptRound, "the run stops on the round that broke the last watched player")
	assert.Less(t, dealer.Purse, 10)
	assert.True(t, dealer.Bankrupt)
	assert.False(t, counter.Watched)
	assert.Zero(t, counter.BankruptRound)
	assert.Equal(t, []string{"dealer"}, mon.bankrupts)
}

func TestRunNobodyWatchedWatchesEveryone(t *testing.T) {
	r, err := New(Config{
		Table: smallTable("main",
			config.SeatConfig{Name: "a", Strategy: "nobust", Purse: 20, Watch: ptr(false)},
		),
		Seed:      11,
		MaxRounds: 100000,
		Clock:     quartz.NewMock(t),
	})
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopBankrupt, res.Reason)
	assert.True(t, res.Players[0].Watched)
}

func TestRunCancelled(t *testing.T) {
	var out bytes.Buffer
	r, err := New(Config{
		Table: smallTable("main", config.SeatConfig{Name: "wiki", Strategy: "wiki", Purse: 1000}),
		Seed:  1,
		CSV:   &out,
		Clock: quartz.NewMock(t),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, StopCancelled, res.Reason)
	assert.Zero(t, res.Rounds)

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestStepThrottlesNotifications(t *testing.T) {
	clock := quartz.NewMock(t)
	mon := &recordingMonitor{}
	r, err := New(Config{
		Table:         smallTable("main", config.SeatConfig{Name: "wiki", Strategy: "wiki", Purse: 100000}),
		Seed:          5,
		ProgressEvery: 100 * time.Millisecond,
		StatsEvery:    time.Second,
		Clock:         clock,
		Monitor:       mon,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Step())
	}
	assert.Empty(t, mon.progress)
	assert.Zero(t, mon.boards)

	clock.Advance(100 * time.Millisecond)
	require.NoError(t, r.Step())
	require.Len(t, mon.progress, 1)
	assert.Equal(t, 4, mon.progress[0].Rounds)
	assert.Equal(t, 100*time.Millisecond, mon.progress[0].Elapsed)
	assert.Zero(t, mon.boards)

	require.NoError(t, r.Step())
	assert.Len(t, mon.progress, 1)

	clock.Advance(900 * time.Millisecond)
	require.NoError(t, r.Step())
	assert.Len(t, mon.progress, 2)
	assert.Equal(t, 1, mon.boards)
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	_, err := New(Config{
		Table: smallTable("main", config.SeatConfig{Name: "x", Strategy: "martingale", Purse: 100}),
	})
	assert.ErrorContains(t, err, "martingale")
}

func TestRunAbortsOnRoundFailure(t *testing.T) {
	r, err := New(Config{
		Table: smallTable("main", config.SeatConfig{Name: "dealer", Strategy: "dealer", Purse: 100}),
		Shoe:  deck.NewStackedShoe(deck.MustParseCards("KsQh5d")),
		Clock: quartz.NewMock(t),
	})
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.ErrorIs(t, err, deck.ErrEmptyShoe)
}

func TestRunTables(t *testing.T) {
	mon := &recordingMonitor{}
	var runners []*Runner
	for i, name := range []string{"low", "high"} {
		r, err := New(Config{
			Table: smallTable(name,
				config.SeatConfig{Name: "wiki", Strategy: "wiki", Purse: 100000},
				config.SeatConfig{Name: "progression", Strategy: "progression", Purse: 100000},
			),
			Seed:      int64(i + 1),
			MaxRounds: 25,
			Clock:     quartz.NewMock(t),
			Monitor:   mon,
		})
		require.NoError(t, err)
		runners = append(runners, r)
	}

	results, err := RunTables(context.Background(), runners)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "low", results[0].Table)
	assert.Equal(t, "high", results[1].Table)
	for _, res := range results {
		assert.Equal(t, 25, res.Rounds)
	}
	assert.Len(t, mon.completed, 2)
}

func TestRunTablesStopsOnFailure(t *testing.T) {
	good, err := New(Config{
		Table: smallTable("good", config.SeatConfig{Name: "wiki", Strategy: "wiki", Purse: 100000}),
		Clock: quartz.NewMock(t),
	})
	require.NoError(t, err)
	bad, err := New(Config{
		Table: smallTable("bad", config.SeatConfig{Name: "dealer", Strategy: "dealer", Purse: 100}),
		Shoe:  deck.NewStackedShoe(deck.MustParseCards("KsQh")),
		Clock: quartz.NewMock(t),
	})
	require.NoError(t, err)

	_, err = RunTables(context.Background(), []*Runner{good, bad})
	require.ErrorIs(t, err, deck.ErrEmptyShoe)
}

func TestSeatedBankruptIsNotAnnounced(t *testing.T) {
	mon := &recordingMonitor{}
	r, err := New(Config{
		Table: smallTable("main",
			config.SeatConfig{Name: "short", Strategy: "dealer", Purse: 5},
			config.SeatConfig{Name: "wiki", Strategy: "wiki", Purse: 100000},
		),
		Seed:      2,
		MaxRounds: 5,
		Clock:     quartz.NewMock(t),
		Monitor:   mon,
	})
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopRoundLimit, res.Reason)

	short := res.Players[0]
	assert.True(t, short.Bankrupt)
	assert.Zero(t, short.BankruptRound)
	assert.Equal(t, 5, short.Purse)
	assert.Empty(t, mon.bankrupts)
}
