package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/lox/blackjacksim/internal/runner"
)

// ConsoleMonitor prints bankruptcies and periodic scoreboards as plain
// text. It is safe for use by several runners at once.
type ConsoleMonitor struct {
	runner.NullMonitor

	mu     sync.Mutex
	w      io.Writer
	styled bool
	quiet  bool
}

// NewConsoleMonitor writes to w. With quiet set only bankruptcies and the
// final summary are printed.
func NewConsoleMonitor(w io.Writer, quiet bool) *ConsoleMonitor {
	return &ConsoleMonitor{w: w, styled: Styled(w), quiet: quiet}
}

// OnRunStart implements runner.Monitor.
func (c *ConsoleMonitor) OnRunStart(table string, players []string, maxRounds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	limit := "until bankrupt"
	if maxRounds > 0 {
		limit = fmt.Sprintf("max %d rounds", maxRounds)
	}
	fmt.Fprintf(c.w, "%s %d players, %s\n", render(c.styled, TableStyle, "["+table+"]"), len(players), limit)
}

// OnScoreboard implements runner.Monitor.
func (c *ConsoleMonitor) OnScoreboard(table, scoreboard string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s\n%s\n", render(c.styled, TableStyle, "["+table+"]"), scoreboard)
}

// OnBankrupt implements runner.Monitor.
func (c *ConsoleMonitor) OnBankrupt(table, player string, round int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf("Player %s went bankrupt after %d games", player, round)
	fmt.Fprintf(c.w, "%s %s\n", render(c.styled, TableStyle, "["+table+"]"), render(c.styled, BankruptStyle, msg))
}

// OnRunComplete implements runner.Monitor.
func (c *ConsoleMonitor) OnRunComplete(res *runner.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "\n%s\n%s", res.Scoreboard, RenderResult(res, c.styled))
}
