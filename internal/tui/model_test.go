package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjacksim/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *captureSender) Send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func TestModelTracksTables(t *testing.T) {
	m := NewModel()
	assert.Contains(t, m.View(), "seating players")

	m.Update(StartMsg{Table: "main", Players: 4})
	m.Update(StartMsg{Table: "capped", Players: 2, MaxRounds: 100})
	m.Update(ProgressMsg(runner.Progress{Table: "main", Rounds: 42, Solvent: 3, Players: 4, HouseNet: 150, Shuffles: 2}))
	m.Update(ProgressMsg(runner.Progress{Table: "capped", Rounds: 25, Solvent: 2, Players: 2}))
	m.Update(ProgressMsg(runner.Progress{Table: "unknown", Rounds: 1}))

	require.Len(t, m.tables, 2)
	assert.InDelta(t, 0.25, m.byName["main"].fraction(), 1e-9)
	assert.InDelta(t, 0.25, m.byName["capped"].fraction(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "42 rounds, 3/4 solvent, house +150, 2 shuffles")
	assert.Contains(t, view, "capped")

	m.Update(CompleteMsg{Result: &runner.Result{Table: "main", Reason: runner.StopBankrupt}})
	assert.Equal(t, 1.0, m.byName["main"].fraction())
}

func TestModelBankruptEventsAreBounded(t *testing.T) {
	m := NewModel()
	for i := 1; i <= maxEvents+3; i++ {
		m.Update(BankruptMsg{Table: "main", Player: "p", Round: i})
	}
	require.Len(t, m.events, maxEvents)
	assert.Equal(t, "[main] p went bankrupt after 4 games", m.events[0])
	assert.Contains(t, m.View(), "after 11 games")
}

func TestModelQuit(t *testing.T) {
	m := NewModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Interrupted())
	assert.Empty(t, m.View())

	done := NewModel()
	_, cmd = done.Update(DoneMsg{})
	require.NotNil(t, cmd)
	assert.False(t, done.Interrupted())
}

func TestProgramMonitorForwards(t *testing.T) {
	out := &captureSender{}
	var mon runner.Monitor = NewProgramMonitor(out)

	mon.OnRunStart("main", []string{"a", "b"}, 0)
	mon.OnProgress(runner.Progress{Table: "main", Rounds: 3, Elapsed: time.Second})
	mon.OnScoreboard("main", "board")
	mon.OnBankrupt("main", "a", 3)
	res := &runner.Result{Table: "main"}
	mon.OnRunComplete(res)

	require.Len(t, out.msgs, 5)
	assert.Equal(t, StartMsg{Table: "main", Players: 2}, out.msgs[0])
	assert.Equal(t, 3, out.msgs[1].(ProgressMsg).Rounds)
	assert.Equal(t, ScoreboardMsg{Table: "main", Text: "board"}, out.msgs[2])
	assert.Equal(t, BankruptMsg{Table: "main", Player: "a", Round: 3}, out.msgs[3])
	assert.Same(t, res, out.msgs[4].(CompleteMsg).Result)
}

func TestConsoleMonitor(t *testing.T) {
	var sb strings.Builder
	mon := NewConsoleMonitor(&sb, true)

	mon.OnRunStart("main", []string{"a"}, 10)
	mon.OnScoreboard("main", "should not print")
	mon.OnBankrupt("main", "a", 7)

	out := sb.String()
	assert.Contains(t, out, "[main] 1 players, max 10 rounds")
	assert.Contains(t, out, "Player a went bankrupt after 7 games")
	assert.NotContains(t, out, "should not print")
}
