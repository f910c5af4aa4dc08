package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/game"
)

// BetPolicy sizes the ante for a round.
type BetPolicy interface {
	Ante(seat game.SeatView) int
}

// Flat always bets the table minimum.
type Flat struct{}

func (Flat) Ante(seat game.SeatView) int {
	return seat.Rules.MinimumBet
}

// countDeltas is the running count change per card value, ace first.
var countDeltas = [10]int{-1, 1, 1, 1, 1, 1, 0, 0, 0, -1}

// Counting bets in table-minimum units proportional to a running count of
// the cards exposed since the last reshuffle.
type Counting struct {
	count  int
	units  int
	pushes int
	logger *log.Logger
}

// NewCounting creates a counter starting at one unit.
func NewCounting(logger *log.Logger) *Counting {
	return &Counting{units: 1, logger: logger}
}

// Count returns the running count
func (c *Counting) Count() int { return c.count }

// OnEvent keeps the running count.
func (c *Counting) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.CardExposedEvent:
		c.count += countDeltas[e.Card.Value()-1]
	case game.ShoeShuffledEvent:
		c.count = 0
	}
}

// Ante sizes the bet from the running count. The bet is held after a push;
// otherwise it moves at most to double or half the previous units, is
// floored at the table minimum, capped at a quarter of any table maximum and
// capped at the purse, in that order.
func (c *Counting) Ante(seat game.SeatView) int {
	rules := seat.Rules
	inc := rules.MinimumBet

	if seat.Score.Pushed != c.pushes {
		c.pushes = seat.Score.Pushed
		if c.units > seat.Purse/inc {
			c.units = seat.Purse / inc
		}
		return c.units * inc
	}

	prior := c.units
	units := c.count
	if units < prior/2 {
		units = prior / 2
	}
	if units*inc < rules.MinimumBet {
		units = rules.MinimumBet / inc
	}
	if units > prior*2 {
		units = prior * 2
	}
	if rules.MaximumBet > 0 && units*inc > rules.MaximumBet/4 {
		units = rules.MaximumBet / (inc * 4)
	}
	if units*inc > seat.Purse {
		units = seat.Purse / inc
	}
	c.units = units

	if c.logger != nil {
		c.logger.Debug("Counting ante", "seat", seat.Name, "count", c.count, "units", units)
	}
	return units * inc
}

// ProgressionSpread is the cap in units when the table has no maximum.
const ProgressionSpread = 5

// Progression raises the bet by one unit after each round that added a win
// and drops back to one unit otherwise.
type Progression struct {
	unit int
	wins int
}

// NewProgression creates a progression bettor starting at one unit.
func NewProgression() *Progression {
	return &Progression{unit: 1}
}

// Ante compares the cached win count with the score, so a round that wins
// several split hands still only adds one unit.
func (p *Progression) Ante(seat game.SeatView) int {
	rules := seat.Rules
	inc := rules.MinimumBet
	maxBet := rules.MaximumBet
	if maxBet <= 0 {
		maxBet = inc * ProgressionSpread
	}

	if p.wins < seat.Score.Won {
		p.wins = seat.Score.Won
		if (p.unit+1)*inc <= maxBet {
			p.unit++
		}
	} else {
		p.unit = 1
	}

	if p.unit*inc > seat.Purse {
		p.unit = seat.Purse / inc
	}
	return p.unit * inc
}
