package game

import (
	"fmt"
	"strconv"

	"github.com/lox/blackjacksim/internal/chips"
	"github.com/lox/blackjacksim/internal/statistics"
)

// ActionTally counts the actions a player has taken.
type ActionTally struct {
	Splits  int
	Doubles int
	Hits    int
	Stands  int
	Busted  int
}

func (t ActionTally) String() string {
	return fmt.Sprintf("splits=%d doubles=%d hits=%d stands=%d busted=%d",
		t.Splits, t.Doubles, t.Hits, t.Stands, t.Busted)
}

// Player is a seat at the table.
type Player struct {
	Name  string
	Agent Agent

	purse chips.Stack
	hands []*Hand
	score *statistics.Score
	tally ActionTally
}

// NewPlayer seats agent with a starting purse.
func NewPlayer(name string, agent Agent, purse int) *Player {
	return &Player{
		Name:  name,
		Agent: agent,
		purse: chips.New(purse),
		score: statistics.NewScore(),
	}
}

// Purse returns the chips the player holds outside live bets
func (p *Player) Purse() int { return p.purse.Value() }

// Score returns the player's cumulative score
func (p *Player) Score() *statistics.Score { return p.score }

// Tally returns the player's action counts
func (p *Player) Tally() ActionTally { return p.tally }

// Hands returns the player's live hands, which only exist mid-round.
func (p *Player) Hands() []HandView {
	out := make([]HandView, len(p.hands))
	for i, h := range p.hands {
		out[i] = h.View()
	}
	return out
}

// Bankrupt reports whether the player can no longer cover the minimum bet.
func (p *Player) Bankrupt(rules Rules) bool {
	return p.purse.Value() < rules.MinimumBet
}

func (p *Player) view(rules Rules) SeatView {
	return SeatView{
		Name:  p.Name,
		Purse: p.purse.Value(),
		Hands: len(p.hands),
		Rules: rules,
		Score: p.score.Totals(),
	}
}

func (p *Player) accept(stack chips.Stack) {
	p.purse.Merge(&stack)
}

// Scoreboard returns the player's cash, score and action counts.
func (p *Player) Scoreboard() string {
	return fmt.Sprintf("[%s]: Cash=%d\n  %s  %s\n", p.Name, p.Purse(), p.score.Scoreboard(), p.tally)
}

// CSVHeader returns the column names matching CSVRow
func (p *Player) CSVHeader() []string {
	return append([]string{"Cash"}, p.score.CSVHeader()...)
}

// CSVRow returns the player's cash and flat score counters
func (p *Player) CSVRow() []string {
	return append([]string{strconv.Itoa(p.Purse())}, p.score.CSVRow()...)
}
