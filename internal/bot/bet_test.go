package bot

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/stretchr/testify/assert"
)

func expose(c *Counting, cards string) {
	for _, card := range deck.MustParseCards(cards) {
		c.OnEvent(game.CardExposedEvent{Card: card})
	}
}

func TestCountingRunningCount(t *testing.T) {
	c := NewCounting(nil)
	expose(c, "2h3d4s5c6h")
	assert.Equal(t, 5, c.Count())

	expose(c, "7h8d9s")
	assert.Equal(t, 5, c.Count(), "sevens to nines are neutral")

	expose(c, "AhTdKsQc")
	assert.Equal(t, 1, c.Count())

	c.OnEvent(game.HandSettledEvent{})
	assert.Equal(t, 1, c.Count())

	c.OnEvent(game.ShoeShuffledEvent{Cards: 52})
	assert.Zero(t, c.Count())
}

func TestCountingAnte(t *testing.T) {
	s := seat(10_000)

	c := NewCounting(nil)
	assert.Equal(t, 10, c.Ante(s), "zero count floors at the minimum")

	expose(c, "2h3d4s5c6h2d3s4c")
	assert.Equal(t, 20, c.Ante(s), "at most double the previous units")
	assert.Equal(t, 40, c.Ante(s))
	assert.Equal(t, 80, c.Ante(s), "count of 8 reached")
	assert.Equal(t, 80, c.Ante(s))

	c.OnEvent(game.ShoeShuffledEvent{})
	assert.Equal(t, 40, c.Ante(s), "at most half the previous units")
	assert.Equal(t, 20, c.Ante(s))
	assert.Equal(t, 10, c.Ante(s))
	assert.Equal(t, 10, c.Ante(s))
}

func TestCountingHoldsBetAfterPush(t *testing.T) {
	s := seat(10_000)
	c := NewCounting(nil)
	expose(c, "2h3d4s5c")
	assert.Equal(t, 20, c.Ante(s))

	s.Score = statistics.Tally{Pushed: 1}
	expose(c, "2h3d4s5c")
	assert.Equal(t, 20, c.Ante(s), "push holds the bet")
	assert.Equal(t, 40, c.Ante(s), "next round moves again")
}

func TestCountingCaps(t *testing.T) {
	c := NewCounting(nil)
	expose(c, "2h3d4s5c6h2d3s4c5h6d")

	capped := seat(10_000)
	capped.Rules.MaximumBet = 120
	assert.Equal(t, 20, c.Ante(capped))
	assert.Equal(t, 30, c.Ante(capped), "quarter of the table maximum")

	broke := seat(15)
	c = NewCounting(nil)
	expose(c, "2h3d4s5c6h")
	assert.Equal(t, 10, c.Ante(broke), "purse caps to whole units")
}

func TestProgression(t *testing.T) {
	p := NewProgression()
	s := seat(10_000)

	assert.Equal(t, 10, p.Ante(s))

	for wins, want := range []int{20, 30, 40, 50, 50} {
		s.Score.Won = wins + 1
		assert.Equal(t, want, p.Ante(s), "after %d wins", wins+1)
	}

	s.Score.Lost++
	assert.Equal(t, 10, p.Ante(s), "reset after a round without a win")

	// Two split hands winning in one round still add a single unit.
	s.Score.Won += 2
	assert.Equal(t, 20, p.Ante(s))
}

func TestProgressionHonoursTableMaximum(t *testing.T) {
	p := NewProgression()
	s := seat(10_000)
	s.Rules.MaximumBet = 25

	p.Ante(s)
	s.Score.Won = 1
	assert.Equal(t, 20, p.Ante(s))
	s.Score.Won = 2
	assert.Equal(t, 20, p.Ante(s), "30 would exceed the maximum")
}

func TestFlat(t *testing.T) {
	assert.Equal(t, 10, Flat{}.Ante(seat(100)))
}
