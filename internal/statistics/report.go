package statistics

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Scoreboard returns a one-line summary of the flat counters.
func (s *Score) Scoreboard() string {
	return fmt.Sprintf("[Total/W-L-P]= %d / %d-%d-%d\n", s.TotalPlayed(), s.Won(), s.Lost(), s.Pushed())
}

// StreakReport lists, per outcome, how often each streak length occurred and
// the share of that outcome's hands that fell in streaks of that length.
func (s *Score) StreakReport() string {
	var sb strings.Builder
	h := s.Streaks()
	for _, o := range Outcomes {
		fmt.Fprintf(&sb, "\nStreak frequency where player %s:\n", o)
		total := s.totals.Count(o)
		for l := 1; l <= MaxStreakLen; l++ {
			n := h.Count(o, l)
			if n == 0 {
				continue
			}
			share := 0.0
			if total > 0 {
				share = float64(n) * float64(l) / float64(total) * 100
			}
			fmt.Fprintf(&sb, "  Length %d: %d (%.2f%%)\n", l, n, share)
		}
	}
	return sb.String()
}

// CSVHeader returns the column names matching CSVRow
func (s *Score) CSVHeader() []string {
	return []string{"Hands Played", "Hands Won", "Hands Lost", "Hands Pushed"}
}

// CSVRow returns the flat counters as CSV fields
func (s *Score) CSVRow() []string {
	return tallyRow(s.totals)
}

func tallyRow(t Tally) []string {
	return []string{
		strconv.Itoa(t.Total()),
		strconv.Itoa(t.Won),
		strconv.Itoa(t.Lost),
		strconv.Itoa(t.Pushed),
	}
}

// WritePerHandCSV writes the breakdown matrix, one row per situation, hard
// totals first.
func (s *Score) WritePerHandCSV(w *csv.Writer) error {
	header := append([]string{"Player Soft/Hard Hand", "Up Card Value", "Player Hand Value"}, s.CSVHeader()...)
	if err := w.Write(header); err != nil {
		return err
	}
	for up := 0; up < UpCards; up++ {
		for i := 0; i < HardSlots; i++ {
			row := append([]string{"Hard", strconv.Itoa(up + 1), strconv.Itoa(i + MinHard)}, tallyRow(s.hard[up][i])...)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	for up := 0; up < UpCards; up++ {
		for i := 0; i < SoftSlots; i++ {
			row := append([]string{"Soft", strconv.Itoa(up + 1), strconv.Itoa(i + MinSoft)}, tallyRow(s.soft[up][i])...)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteStreakCSV writes the streak histogram up to the longest observed
// length, one row per outcome.
func (s *Score) WriteStreakCSV(w *csv.Writer) error {
	h := s.Streaks()
	longest := h.Longest()

	header := []string{"Result"}
	for l := 1; l <= longest; l++ {
		header = append(header, fmt.Sprintf("Length %d", l))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, o := range Outcomes {
		row := []string{o.String()}
		for l := 1; l <= longest; l++ {
			row = append(row, strconv.Itoa(h.Count(o, l)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
