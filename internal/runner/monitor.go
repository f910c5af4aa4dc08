package runner

import "time"

// Monitor receives notifications about a run. Runners on different tables
// call the same monitor from their own goroutines.
type Monitor interface {
	// OnRunStart is called before the first round.
	OnRunStart(table string, players []string, maxRounds int)

	// OnProgress is called at most once per progress interval.
	OnProgress(p Progress)

	// OnScoreboard is called at most once per stats interval.
	OnScoreboard(table, scoreboard string)

	// OnBankrupt is called once per player, after the round that left the
	// player unable to cover the minimum bet.
	OnBankrupt(table, player string, round int)

	// OnRunComplete is called when the run stops without error.
	OnRunComplete(result *Result)
}

// Progress is a snapshot of a running table.
type Progress struct {
	Table    string
	Rounds   int
	Elapsed  time.Duration
	Solvent  int
	Players  int
	HouseNet int
	Shoe     int
	Shuffles int
}

// NullMonitor is a no-op implementation.
type NullMonitor struct{}

func (NullMonitor) OnRunStart(string, []string, int) {}
func (NullMonitor) OnProgress(Progress)              {}
func (NullMonitor) OnScoreboard(string, string)      {}
func (NullMonitor) OnBankrupt(string, string, int)   {}
func (NullMonitor) OnRunComplete(*Result)            {}
