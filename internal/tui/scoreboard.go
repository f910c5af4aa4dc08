package tui

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/runner"
)

// RenderResult formats the end-of-run player summary for one table.
func RenderResult(res *runner.Result, styled bool) string {
	var sb strings.Builder

	title := fmt.Sprintf("Table %s: %d rounds in %s (%s)", res.Table, res.Rounds, res.Elapsed.Round(1e6), res.Reason)
	sb.WriteString(render(styled, HeaderStyle, title))
	sb.WriteString("\n")

	width := len("Player")
	for _, p := range res.Players {
		width = max(width, len(p.Name))
	}

	fmt.Fprintf(&sb, "%-*s  %-11s  %10s  %8s  %8s  %8s  %s\n",
		width, "Player", "Strategy", "Cash", "Won", "Lost", "Pushed", "Status")
	for i, p := range res.Players {
		score := res.Final.Players()[i].Score()
		status := "solvent"
		switch {
		case p.BankruptRound > 0:
			status = render(styled, BankruptStyle, fmt.Sprintf("bankrupt in round %d", p.BankruptRound))
		case p.Bankrupt:
			status = render(styled, BankruptStyle, "bankrupt")
		}
		if !p.Watched {
			status += render(styled, InfoStyle, " (unwatched)")
		}
		fmt.Fprintf(&sb, "%-*s  %-11s  %10d  %s  %s  %s  %s\n",
			width, p.Name, p.Strategy, p.Purse,
			render(styled, WonStyle, fmt.Sprintf("%8d", score.Won())),
			render(styled, LostStyle, fmt.Sprintf("%8d", score.Lost())),
			render(styled, PushedStyle, fmt.Sprintf("%8d", score.Pushed())),
			status)
		sb.WriteString(render(styled, InfoStyle, fmt.Sprintf("%-*s  %s", width, "", p.Tally)))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "House net: %d\n", res.Final.HouseNet())
	return sb.String()
}
