// Package statistics tallies blackjack outcomes. A Score keeps flat
// won/lost/pushed counters, a breakdown of the same outcomes keyed by the
// situation the player faced (dealer up-card against the pre-play hand), and
// a histogram of completed win/loss/push streaks. Scores add entrywise so
// per-player figures can be combined across seats and across runs.
package statistics

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is returned when adding scores would overflow a counter.
	ErrOverflow = errors.New("score counter overflow")
	// ErrUnclassifiable is returned for a situation outside the breakdown matrix.
	ErrUnclassifiable = errors.New("unclassifiable situation")
)

// Outcome is the result of one settled hand, from the player's side.
type Outcome int

const (
	Lost Outcome = iota
	Pushed
	Won
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{Lost, Pushed, Won}

const numOutcomes = 3

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Lost:
		return "Lost"
	case Pushed:
		return "Pushed"
	case Won:
		return "Won"
	default:
		return "Unknown"
	}
}

// Breakdown dimensions. Hard pre-play totals run 4 (two deuces) to 20, soft
// totals 12 (two aces) to 21.
const (
	UpCards   = 10
	MinHard   = 4
	MaxHard   = 20
	MinSoft   = 12
	MaxSoft   = 21
	HardSlots = MaxHard - MinHard + 1
	SoftSlots = MaxSoft - MinSoft + 1
)

// Situation is the key an outcome is filed under: the dealer's up-card value
// (1 for an ace through 10) and the player's pre-play total and softness.
type Situation struct {
	UpCard int
	Total  int
	Soft   bool
}

func (s Situation) String() string {
	kind := "hard"
	if s.Soft {
		kind = "soft"
	}
	return fmt.Sprintf("%s %d vs %d", kind, s.Total, s.UpCard)
}

// index returns the matrix coordinates for the situation.
func (s Situation) index() (up, slot int, err error) {
	if s.UpCard < 1 || s.UpCard > UpCards {
		return 0, 0, fmt.Errorf("%v: up-card out of range: %w", s, ErrUnclassifiable)
	}
	if s.Soft {
		if s.Total < MinSoft || s.Total > MaxSoft {
			return 0, 0, fmt.Errorf("%v: soft total out of range: %w", s, ErrUnclassifiable)
		}
		return s.UpCard - 1, s.Total - MinSoft, nil
	}
	if s.Total < MinHard || s.Total > MaxHard {
		return 0, 0, fmt.Errorf("%v: hard total out of range: %w", s, ErrUnclassifiable)
	}
	return s.UpCard - 1, s.Total - MinHard, nil
}

// Tally counts outcomes.
type Tally struct {
	Won    int
	Lost   int
	Pushed int
}

// Total returns the number of outcomes counted
func (t Tally) Total() int {
	return t.Won + t.Lost + t.Pushed
}

// Count returns the counter for one outcome
func (t Tally) Count(o Outcome) int {
	switch o {
	case Won:
		return t.Won
	case Lost:
		return t.Lost
	case Pushed:
		return t.Pushed
	default:
		return 0
	}
}

func (t *Tally) inc(o Outcome) {
	switch o {
	case Won:
		t.Won++
	case Lost:
		t.Lost++
	case Pushed:
		t.Pushed++
	}
}

func addTally(a, b Tally) (Tally, error) {
	var out Tally
	var err error
	if out.Won, err = addInt(a.Won, b.Won); err != nil {
		return Tally{}, err
	}
	if out.Lost, err = addInt(a.Lost, b.Lost); err != nil {
		return Tally{}, err
	}
	if out.Pushed, err = addInt(a.Pushed, b.Pushed); err != nil {
		return Tally{}, err
	}
	return out, nil
}

func addInt(a, b int) (int, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return sum, nil
}
