package statistics

import "fmt"

// MaxStreakLen is the longest streak tracked individually. Longer streaks are
// counted in the last bucket.
const MaxStreakLen = 48

// Histogram counts completed streaks: [outcome][length-1].
type Histogram [numOutcomes][MaxStreakLen]int

// Streak follows the current run of identical outcomes and records each run
// into a histogram once a different outcome ends it.
type Streak struct {
	completed Histogram
	dir       Outcome
	length    int
}

// Update extends the current streak by n outcomes of dir, closing the previous
// streak first if dir differs from it.
func (s *Streak) Update(dir Outcome, n int) {
	if dir != s.dir {
		s.completed.record(s.dir, s.length)
		s.dir = dir
		s.length = 0
	}
	s.length += n
}

// Current returns the direction and length of the open streak.
func (s *Streak) Current() (Outcome, int) {
	return s.dir, s.length
}

// Completed returns the histogram of closed streaks only.
func (s *Streak) Completed() Histogram {
	return s.completed
}

// Histogram returns a copy of the completed streaks with the open streak
// folded in. The tracker itself is not modified.
func (s *Streak) Histogram() Histogram {
	h := s.completed
	h.record(s.dir, s.length)
	return h
}

// Longest returns the largest length with a non-zero count in h.
func (h Histogram) Longest() int {
	for l := MaxStreakLen; l > 0; l-- {
		for o := 0; o < numOutcomes; o++ {
			if h[o][l-1] > 0 {
				return l
			}
		}
	}
	return 0
}

// Count returns how many streaks of the given outcome and length were seen.
func (h Histogram) Count(o Outcome, length int) int {
	if length < 1 {
		return 0
	}
	if length > MaxStreakLen {
		length = MaxStreakLen
	}
	return h[o][length-1]
}

func (h *Histogram) record(dir Outcome, length int) {
	if length <= 0 {
		return
	}
	if length > MaxStreakLen {
		length = MaxStreakLen
	}
	h[dir][length-1]++
}

func addHistogram(a, b Histogram) (Histogram, error) {
	var out Histogram
	for o := 0; o < numOutcomes; o++ {
		for l := 0; l < MaxStreakLen; l++ {
			v, err := addInt(a[o][l], b[o][l])
			if err != nil {
				return Histogram{}, fmt.Errorf("streak %s length %d: %w", Outcome(o), l+1, err)
			}
			out[o][l] = v
		}
	}
	return out, nil
}
