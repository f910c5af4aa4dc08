package statistics

import "fmt"

// Score tracks outcomes for one player, or an aggregate of many.
type Score struct {
	totals Tally
	hard   [UpCards][HardSlots]Tally
	soft   [UpCards][SoftSlots]Tally
	streak Streak
}

// NewScore returns an empty score
func NewScore() *Score {
	return &Score{}
}

// Record files one outcome under the given situation: flat counters, the
// breakdown cell and the streak tracker all advance together.
func (s *Score) Record(o Outcome, sit Situation) error {
	if o < Lost || o > Won {
		return fmt.Errorf("record outcome %d: unknown outcome", o)
	}
	up, slot, err := sit.index()
	if err != nil {
		return err
	}
	if sit.Soft {
		s.soft[up][slot].inc(o)
	} else {
		s.hard[up][slot].inc(o)
	}
	s.totals.inc(o)
	s.streak.Update(o, 1)
	return nil
}

// Won returns the number of hands won
func (s *Score) Won() int { return s.totals.Won }

// Lost returns the number of hands lost
func (s *Score) Lost() int { return s.totals.Lost }

// Pushed returns the number of hands pushed
func (s *Score) Pushed() int { return s.totals.Pushed }

// TotalPlayed returns won+lost+pushed
func (s *Score) TotalPlayed() int { return s.totals.Total() }

// Totals returns the flat counters
func (s *Score) Totals() Tally { return s.totals }

// Cell returns the tally for one situation.
func (s *Score) Cell(sit Situation) (Tally, error) {
	up, slot, err := sit.index()
	if err != nil {
		return Tally{}, err
	}
	if sit.Soft {
		return s.soft[up][slot], nil
	}
	return s.hard[up][slot], nil
}

// BreakdownTotals sums every cell of the breakdown matrix. It always equals
// Totals for a consistent score.
func (s *Score) BreakdownTotals() Tally {
	var sum Tally
	for up := 0; up < UpCards; up++ {
		for i := 0; i < HardSlots; i++ {
			sum.Won += s.hard[up][i].Won
			sum.Lost += s.hard[up][i].Lost
			sum.Pushed += s.hard[up][i].Pushed
		}
		for i := 0; i < SoftSlots; i++ {
			sum.Won += s.soft[up][i].Won
			sum.Lost += s.soft[up][i].Lost
			sum.Pushed += s.soft[up][i].Pushed
		}
	}
	return sum
}

// Streaks returns the streak histogram with the open streak folded in.
func (s *Score) Streaks() Histogram {
	return s.streak.Histogram()
}

// CurrentStreak returns the open streak
func (s *Score) CurrentStreak() (Outcome, int) {
	return s.streak.Current()
}

// Add returns a new score whose counters, breakdown cells and streak
// histograms are the entrywise sums of a and b. Open streaks are folded into
// the histograms, so the result starts with no open streak. On overflow
// neither input is modified and no score is returned.
func Add(a, b *Score) (*Score, error) {
	out := &Score{}
	var err error
	if out.totals, err = addTally(a.totals, b.totals); err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	for up := 0; up < UpCards; up++ {
		for i := 0; i < HardSlots; i++ {
			if out.hard[up][i], err = addTally(a.hard[up][i], b.hard[up][i]); err != nil {
				return nil, fmt.Errorf("hard %d vs %d: %w", i+MinHard, up+1, err)
			}
		}
		for i := 0; i < SoftSlots; i++ {
			if out.soft[up][i], err = addTally(a.soft[up][i], b.soft[up][i]); err != nil {
				return nil, fmt.Errorf("soft %d vs %d: %w", i+MinSoft, up+1, err)
			}
		}
	}
	if out.streak.completed, err = addHistogram(a.Streaks(), b.Streaks()); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge adds other into s. On error s is left unchanged.
func (s *Score) Merge(other *Score) error {
	sum, err := Add(s, other)
	if err != nil {
		return err
	}
	*s = *sum
	return nil
}
