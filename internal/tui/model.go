package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjacksim/internal/runner"
)

const maxEvents = 8

// StartMsg announces a table before its first round.
type StartMsg struct {
	Table     string
	Players   int
	MaxRounds int
}

// ProgressMsg carries a progress snapshot.
type ProgressMsg runner.Progress

// ScoreboardMsg carries a table scoreboard.
type ScoreboardMsg struct {
	Table string
	Text  string
}

// BankruptMsg announces a bankrupt player.
type BankruptMsg struct {
	Table  string
	Player string
	Round  int
}

// CompleteMsg marks a table as stopped.
type CompleteMsg struct {
	Result *runner.Result
}

// DoneMsg ends the program once every table has stopped.
type DoneMsg struct {
	Err error
}

type tableState struct {
	name      string
	players   int
	maxRounds int
	last      runner.Progress
	reason    string
}

// fraction is the share of the run completed: rounds against the limit when
// there is one, otherwise the share of bankrupt players.
func (t *tableState) fraction() float64 {
	if t.reason != "" {
		return 1
	}
	if t.maxRounds > 0 {
		return min(1, float64(t.last.Rounds)/float64(t.maxRounds))
	}
	if t.players == 0 || t.last.Players == 0 {
		return 0
	}
	return float64(t.last.Players-t.last.Solvent) / float64(t.last.Players)
}

// Model is the Bubble Tea model for the live run view
type Model struct {
	spinner spinner.Model
	bar     progress.Model

	tables     []*tableState
	byName     map[string]*tableState
	events     []string
	scoreboard string

	done     bool
	err      error
	quitting bool
}

// NewModel creates an empty progress view
func NewModel() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return &Model{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		byName:  make(map[string]*tableState),
	}
}

// Interrupted reports whether the user quit before the run finished.
func (m *Model) Interrupted() bool { return m.quitting && !m.done }

// Init starts the spinner
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(60, msg.Width-40))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StartMsg:
		t := &tableState{name: msg.Table, players: msg.Players, maxRounds: msg.MaxRounds}
		m.tables = append(m.tables, t)
		m.byName[msg.Table] = t

	case ProgressMsg:
		if t := m.byName[msg.Table]; t != nil {
			t.last = runner.Progress(msg)
		}

	case ScoreboardMsg:
		m.scoreboard = fmt.Sprintf("[%s]\n%s", msg.Table, msg.Text)

	case BankruptMsg:
		m.addEvent(fmt.Sprintf("[%s] %s went bankrupt after %d games", msg.Table, msg.Player, msg.Round))

	case CompleteMsg:
		if t := m.byName[msg.Result.Table]; t != nil {
			t.reason = msg.Result.Reason
		}

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) addEvent(e string) {
	m.events = append(m.events, e)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// View renders the progress view
func (m *Model) View() string {
	if m.done || m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("blackjack simulation"))
	sb.WriteString("\n\n")

	if len(m.tables) == 0 {
		sb.WriteString(m.spinner.View() + " seating players...\n")
	}
	for _, t := range m.tables {
		status := m.spinner.View()
		if t.reason != "" {
			status = WonStyle.Render("✓")
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n",
			status,
			TableStyle.Render(fmt.Sprintf("%-10s", t.name)),
			m.bar.ViewAs(t.fraction()),
			InfoStyle.Render(fmt.Sprintf("%d rounds, %d/%d solvent, house %+d, %d shuffles",
				t.last.Rounds, t.last.Solvent, t.last.Players, t.last.HouseNet, t.last.Shuffles)))
	}

	if len(m.events) > 0 {
		sb.WriteString("\n")
		for _, e := range m.events {
			sb.WriteString(BankruptStyle.Render(e) + "\n")
		}
	}
	if m.scoreboard != "" {
		sb.WriteString("\n" + m.scoreboard)
	}
	sb.WriteString(InfoStyle.Render("\nq to stop\n"))
	return sb.String()
}

// Sender delivers messages to a running program; *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramMonitor forwards runner notifications to a Bubble Tea program.
type ProgramMonitor struct {
	out Sender
}

// NewProgramMonitor creates a monitor feeding out
func NewProgramMonitor(out Sender) *ProgramMonitor {
	return &ProgramMonitor{out: out}
}

// OnRunStart implements runner.Monitor.
func (p *ProgramMonitor) OnRunStart(table string, players []string, maxRounds int) {
	p.out.Send(StartMsg{Table: table, Players: len(players), MaxRounds: maxRounds})
}

// OnProgress implements runner.Monitor.
func (p *ProgramMonitor) OnProgress(pr runner.Progress) {
	p.out.Send(ProgressMsg(pr))
}

// OnScoreboard implements runner.Monitor.
func (p *ProgramMonitor) OnScoreboard(table, scoreboard string) {
	p.out.Send(ScoreboardMsg{Table: table, Text: scoreboard})
}

// OnBankrupt implements runner.Monitor.
func (p *ProgramMonitor) OnBankrupt(table, player string, round int) {
	p.out.Send(BankruptMsg{Table: table, Player: player, Round: round})
}

// OnRunComplete implements runner.Monitor.
func (p *ProgramMonitor) OnRunComplete(res *runner.Result) {
	p.out.Send(CompleteMsg{Result: res})
}
