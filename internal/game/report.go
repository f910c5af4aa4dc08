package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/statistics"
)

// CSVHeader returns the per-player columns for every seat, in seat order.
func (t *Table) CSVHeader() []string {
	var out []string
	for _, p := range t.players {
		out = append(out, p.CSVHeader()...)
	}
	return out
}

// CSVRow returns the values matching CSVHeader
func (t *Table) CSVRow() []string {
	var out []string
	for _, p := range t.players {
		out = append(out, p.CSVRow()...)
	}
	return out
}

// Aggregate sums the scores of every seat.
func (t *Table) Aggregate() (*statistics.Score, error) {
	total := statistics.NewScore()
	for _, p := range t.players {
		if err := total.Merge(p.Score()); err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", p.Name, err)
		}
	}
	return total, nil
}

// Scoreboard lists every player followed by the table totals and the streak
// frequency report.
func (t *Table) Scoreboard() string {
	var sb strings.Builder
	for i, p := range t.players {
		fmt.Fprintf(&sb, "Player %d %s", i, p.Scoreboard())
	}
	total, err := t.Aggregate()
	if err != nil {
		fmt.Fprintf(&sb, "\nTotals unavailable: %v\n", err)
		return sb.String()
	}
	fmt.Fprintf(&sb, "\nTotals on hands played: %s", total.Scoreboard())
	sb.WriteString(total.StreakReport())
	return sb.String()
}
