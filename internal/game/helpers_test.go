package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/stretchr/testify/require"
)

// scriptedAgent antes a fixed amount and plays a fixed list of actions,
// standing once the list runs out.
type scriptedAgent struct {
	ante    int
	insure  bool
	actions []Action

	anteCalls      int
	insuranceCalls int
}

func (a *scriptedAgent) DecideAnte(seat SeatView) int {
	a.anteCalls++
	return a.ante
}

func (a *scriptedAgent) DecideAction(seat SeatView, up deck.Card, hand HandView) Action {
	if len(a.actions) == 0 {
		return Stand
	}
	next := a.actions[0]
	a.actions = a.actions[1:]
	return next
}

func (a *scriptedAgent) DecideInsurance(seat SeatView, hand HandView) bool {
	a.insuranceCalls++
	return a.insure
}

// eagerAgent doubles and splits whenever it can afford to, insures every time
// and otherwise follows the house rule.
type eagerAgent struct{}

func (eagerAgent) DecideAnte(seat SeatView) int { return seat.Rules.MinimumBet }

func (eagerAgent) DecideAction(seat SeatView, up deck.Card, hand HandView) Action {
	affordable := seat.Purse >= hand.Bet && seat.Rules.CheckBet(hand.Bet*2)
	switch {
	case hand.Splittable && affordable:
		return Split
	case (hand.Value == 10 || hand.Value == 11) && affordable:
		return DoubleDown
	default:
		return DealerAction(hand.Value)
	}
}

func (eagerAgent) DecideInsurance(seat SeatView, hand HandView) bool { return true }

type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) exposed() []deck.Card {
	var out []deck.Card
	for _, e := range r.events {
		if ce, ok := e.(CardExposedEvent); ok {
			out = append(out, ce.Card)
		}
	}
	return out
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

// scriptRules never reshuffles, so a stacked shoe deals exactly in order.
func scriptRules() Rules {
	r := DefaultRules()
	r.MinimumBet = 10
	r.ReshuffleMin = 0
	r.ReshuffleMax = 0
	return r
}

func scriptedTable(t *testing.T, cards string, players ...*Player) (*Table, *eventRecorder) {
	t.Helper()
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards))
	table, err := NewTable(randutil.New(1), scriptRules(), players, WithShoe(shoe))
	require.NoError(t, err)
	rec := &eventRecorder{}
	table.Subscribe(rec)
	return table, rec
}

func totalPurses(players []*Player) int {
	sum := 0
	for _, p := range players {
		sum += p.Purse()
	}
	return sum
}
