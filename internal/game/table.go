package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/chips"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/statistics"
)

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

type tableConfig struct {
	shoe   *deck.Shoe
	logger *log.Logger
	bus    EventBus
}

// WithShoe uses shoe as the initial draw pile instead of filling and
// shuffling a fresh one. Scripted tests pass a stacked shoe here.
func WithShoe(shoe *deck.Shoe) TableOption {
	return func(c *tableConfig) {
		c.shoe = shoe
	}
}

// WithLogger sets the table logger. The default discards everything.
func WithLogger(logger *log.Logger) TableOption {
	return func(c *tableConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes table events on bus instead of a private bus.
func WithEventBus(bus EventBus) TableOption {
	return func(c *tableConfig) {
		c.bus = bus
	}
}

// Table runs rounds of blackjack for a fixed roster of players.
type Table struct {
	rules   Rules
	rng     *rand.Rand
	players []*Player
	dealer  *Hand

	shoe        *deck.Shoe
	discard     *deck.Shoe
	reshuffleAt int

	// houseNet is what the house has won from the players so far. Purses
	// plus live bets plus houseNet is constant.
	houseNet int
	rounds   int

	bus    EventBus
	logger *log.Logger
}

// NewTable seats players at a table with the given rules. The RNG is required
// so that shuffles and reshuffle thresholds are reproducible.
func NewTable(rng *rand.Rand, rules Rules, players []*Player, opts ...TableOption) (*Table, error) {
	if rng == nil {
		panic("rng is required for table creation")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, errors.New("table needs at least one player")
	}
	for i, p := range players {
		if p == nil || p.Agent == nil {
			return nil, fmt.Errorf("seat %d has no player", i)
		}
	}

	cfg := &tableConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}

	shoe := cfg.shoe
	if shoe == nil {
		shoe = deck.NewShoe(rng)
		shoe.Fill(rules.Decks)
		shoe.Shuffle(rules.InitialShuffles)
	}

	t := &Table{
		rules:   rules,
		rng:     rng,
		players: players,
		shoe:    shoe,
		discard: deck.NewShoe(rng),
		bus:     cfg.bus,
		logger:  cfg.logger.WithPrefix("table"),
	}
	t.reshuffleAt = t.threshold(shoe.Len())

	for _, p := range players {
		if sub, ok := p.Agent.(EventSubscriber); ok {
			t.bus.Subscribe(sub)
		}
	}

	t.logger.Debug("Table ready", "rules", rules, "players", len(players), "shoe", shoe.Len(), "reshuffleAt", t.reshuffleAt)
	return t, nil
}

// Subscribe registers an observer for table events
func (t *Table) Subscribe(sub EventSubscriber) {
	t.bus.Subscribe(sub)
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player { return t.players }

// Rules returns the table rules
func (t *Table) Rules() Rules { return t.rules }

// ShoeCount returns the cards left to draw
func (t *Table) ShoeCount() int { return t.shoe.Len() }

// DiscardCount returns the cards in the discard pile
func (t *Table) DiscardCount() int { return t.discard.Len() }

// HouseNet returns the house's running profit against the players
func (t *Table) HouseNet() int { return t.houseNet }

// Rounds returns how many rounds have been played
func (t *Table) Rounds() int { return t.rounds }

// PlayRound plays one full round. Any error is an invariant violation and
// leaves the table unusable.
func (t *Table) PlayRound() error {
	t.rounds++
	if err := t.playRound(); err != nil {
		return fmt.Errorf("round %d: %w", t.rounds, err)
	}
	return nil
}

func (t *Table) playRound() error {
	logger := t.logger.With("round", t.rounds)

	if err := t.deal(); err != nil {
		return err
	}
	up := t.upCard()
	logger.Debug("Dealt", "upCard", up, "shoe", t.shoe.Len())

	insurance := make([]chips.Stack, len(t.players))
	if up.IsAce() {
		if err := t.offerInsurance(insurance); err != nil {
			return err
		}
	}

	if t.dealer.IsNatural() {
		t.expose(t.dealer.cards[0])
		logger.Debug("Dealer natural", "hand", t.dealer)
		for i, stake := range insurance {
			if stake.IsEmpty() {
				continue
			}
			winnings := chips.New(stake.Value() * 2)
			t.houseNet -= winnings.Value()
			t.players[i].accept(stake)
			t.players[i].accept(winnings)
		}
		if err := t.settle(); err != nil {
			return err
		}
		t.checkReshuffle()
		return nil
	}

	for i := range insurance {
		t.houseNet += insurance[i].Take().Value()
	}

	for _, p := range t.players {
		if err := t.playerTurn(p); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}

	t.expose(t.dealer.cards[0])
	for DealerAction(t.dealer.Value()) == Hit {
		if err := t.hit(t.dealer); err != nil {
			return fmt.Errorf("dealer: %w", err)
		}
	}
	logger.Debug("Dealer stands", "hand", t.dealer)

	if err := t.settle(); err != nil {
		return err
	}
	t.checkReshuffle()
	return nil
}

// deal collects antes and deals two cards to every hand, the dealer's first
// card face down.
func (t *Table) deal() error {
	t.dealer = NewHand(chips.Stack{})
	for _, p := range t.players {
		if p.Bankrupt(t.rules) {
			continue
		}
		amount := p.Agent.DecideAnte(p.view(t.rules))
		if amount == 0 {
			continue
		}
		if !t.rules.CheckBet(amount) {
			return fmt.Errorf("player %s ante %d (%s): %w", p.Name, amount, t.rules, ErrBetOutOfBounds)
		}
		ante, err := p.purse.Remove(amount)
		if err != nil {
			return fmt.Errorf("player %s ante: %w", p.Name, err)
		}
		p.hands = []*Hand{NewHand(ante)}
	}

	card, err := t.draw(false)
	if err != nil {
		return err
	}
	t.dealer.add(card)
	if err := t.dealToPlayers(); err != nil {
		return err
	}
	if card, err = t.draw(true); err != nil {
		return err
	}
	t.dealer.add(card)
	return t.dealToPlayers()
}

func (t *Table) dealToPlayers() error {
	for _, p := range t.players {
		if len(p.hands) == 0 {
			continue
		}
		card, err := t.draw(true)
		if err != nil {
			return err
		}
		p.hands[0].add(card)
	}
	return nil
}

// upCard is the dealer's second card.
func (t *Table) upCard() deck.Card {
	return t.dealer.cards[1]
}

func (t *Table) offerInsurance(stakes []chips.Stack) error {
	for i, p := range t.players {
		if len(p.hands) != 1 {
			continue
		}
		amount := p.hands[0].Bet() / 2
		if amount == 0 || p.Purse() < amount {
			continue
		}
		if !p.Agent.DecideInsurance(p.view(t.rules), p.hands[0].View()) {
			continue
		}
		stake, err := p.purse.Remove(amount)
		if err != nil {
			return fmt.Errorf("player %s insurance: %w", p.Name, err)
		}
		stakes[i] = stake
	}
	return nil
}

// playerTurn pays a natural outright, otherwise plays every hand (including
// those created by splits) and clears out busted hands.
func (t *Table) playerTurn(p *Player) error {
	if len(p.hands) == 0 {
		return nil
	}
	up := t.upCard()

	if first := p.hands[0]; first.IsNatural() {
		bet := first.Bet()
		stake := first.PayOut()
		bonus := chips.New(stake.Value() * 3 / 2)
		t.houseNet -= bonus.Value()
		paid := stake.Value() + bonus.Value()
		p.accept(stake)
		p.accept(bonus)
		if err := t.record(p, statistics.Won, up, first, bet, paid); err != nil {
			return err
		}
		t.discard.Return(first.ReturnCards())
		p.hands = p.hands[1:]
		t.logger.Debug("Player natural", "player", p.Name, "paid", paid)
		return nil
	}

	for i := 0; i < len(p.hands); i++ {
		if err := t.playHand(p, p.hands[i]); err != nil {
			return err
		}
	}

	kept := p.hands[:0]
	for _, h := range p.hands {
		if !h.IsBusted() {
			kept = append(kept, h)
			continue
		}
		bet := h.Bet()
		t.houseNet += h.PayOut().Value()
		if err := t.record(p, statistics.Lost, up, h, bet, 0); err != nil {
			return err
		}
		t.discard.Return(h.ReturnCards())
		t.logger.Debug("Player busts", "player", p.Name, "bet", bet)
	}
	p.hands = kept
	return nil
}

func (t *Table) playHand(p *Player, h *Hand) error {
	up := t.upCard()
	for h.Value() <= 21 && !h.DoubledDown() {
		action := p.Agent.DecideAction(p.view(t.rules), up, h.View())
		switch action {
		case Hit:
			if err := t.hit(h); err != nil {
				return err
			}
			p.tally.Hits++
		case Stand:
			p.tally.Stands++
			return nil
		case DoubleDown:
			bet, err := p.purse.Remove(h.Bet())
			if err != nil {
				return fmt.Errorf("double down: %w", err)
			}
			if err := t.doubleDown(h, bet); err != nil {
				return err
			}
			p.tally.Doubles++
		case Split:
			bet, err := p.purse.Remove(h.Bet())
			if err != nil {
				return fmt.Errorf("split: %w", err)
			}
			other, err := t.split(h, bet)
			if err != nil {
				return err
			}
			p.hands = append(p.hands, other)
			p.tally.Splits++
		default:
			return fmt.Errorf("action %d: %w", action, ErrIllegalAction)
		}
	}
	if h.IsBusted() {
		p.tally.Busted++
	}
	return nil
}

func (t *Table) hit(h *Hand) error {
	if h.Value() > 20 {
		return fmt.Errorf("hit %s: %w", h, ErrIllegalAction)
	}
	card, err := t.draw(true)
	if err != nil {
		return err
	}
	return h.Hit(card)
}

func (t *Table) doubleDown(h *Hand, bet chips.Stack) error {
	if bet.Value() != h.Bet() {
		return fmt.Errorf("double %d onto %d: %w", bet.Value(), h.Bet(), ErrBetMismatch)
	}
	if !t.rules.CheckBet(h.Bet() + bet.Value()) {
		return fmt.Errorf("double to %d: %w", h.Bet()+bet.Value(), ErrBetOutOfBounds)
	}
	card, err := t.draw(true)
	if err != nil {
		return err
	}
	return h.DoubleDown(card, bet)
}

// split separates h and hits both halves once.
func (t *Table) split(h *Hand, bet chips.Stack) (*Hand, error) {
	if bet.Value() != h.Bet() {
		return nil, fmt.Errorf("split %d against %d: %w", bet.Value(), h.Bet(), ErrBetMismatch)
	}
	if !t.rules.CheckBet(h.Bet() + bet.Value()) {
		return nil, fmt.Errorf("split to %d: %w", h.Bet()+bet.Value(), ErrBetOutOfBounds)
	}
	other, err := h.Split(bet)
	if err != nil {
		return nil, err
	}
	if err := t.hit(h); err != nil {
		return nil, err
	}
	if err := t.hit(other); err != nil {
		return nil, err
	}
	return other, nil
}

// settle compares every remaining hand with the dealer, pays out and clears
// the table.
func (t *Table) settle() error {
	up := t.upCard()
	dealerValue := t.dealer.Value()

	for _, p := range t.players {
		for _, h := range p.hands {
			var outcome statistics.Outcome
			bet, paid := h.Bet(), 0
			switch {
			case dealerValue > 21 || h.Value() > dealerValue:
				outcome = statistics.Won
				stake := h.PayOut()
				winnings := chips.New(stake.Value())
				t.houseNet -= winnings.Value()
				paid = stake.Value() + winnings.Value()
				p.accept(stake)
				p.accept(winnings)
			case h.Value() < dealerValue:
				outcome = statistics.Lost
				t.houseNet += h.PayOut().Value()
			default:
				outcome = statistics.Pushed
				stake := h.PayOut()
				paid = stake.Value()
				p.accept(stake)
			}
			if err := t.record(p, outcome, up, h, bet, paid); err != nil {
				return err
			}
			t.discard.Return(h.ReturnCards())
		}
		p.hands = nil
	}

	t.discard.Return(t.dealer.ReturnCards())
	return nil
}

// record scores a hand under its pre-play snapshot, not its final total.
func (t *Table) record(p *Player, outcome statistics.Outcome, up deck.Card, h *Hand, bet, paid int) error {
	snap := h.PrePlay()
	sit := statistics.Situation{UpCard: up.Value(), Total: snap.Value, Soft: snap.Soft}
	if err := p.score.Record(outcome, sit); err != nil {
		return fmt.Errorf("player %s: %w", p.Name, err)
	}
	t.bus.Publish(HandSettledEvent{
		Player:    p.Name,
		Outcome:   outcome,
		Situation: sit,
		Bet:       bet,
		Paid:      paid,
	})
	return nil
}

// draw takes the next card, reshuffling the discards in if the shoe has run
// dry mid-round.
func (t *Table) draw(faceUp bool) (deck.Card, error) {
	if t.shoe.Len() == 0 {
		if t.discard.Len() == 0 {
			return deck.Card{}, deck.ErrEmptyShoe
		}
		t.logger.Debug("Shoe empty mid-round, reshuffling discards", "discards", t.discard.Len())
		t.reshuffle()
	}
	card, err := t.shoe.Draw()
	if err != nil {
		return deck.Card{}, err
	}
	if faceUp {
		t.expose(card)
	}
	return card, nil
}

func (t *Table) expose(card deck.Card) {
	t.bus.Publish(CardExposedEvent{Card: card})
}

func (t *Table) checkReshuffle() {
	if t.shoe.Len() < t.reshuffleAt {
		t.reshuffle()
	}
}

// reshuffle moves every remaining card to the discards, swaps the piles and
// shuffles the new shoe.
func (t *Table) reshuffle() {
	t.shoe.DrainInto(t.discard)
	t.shoe, t.discard = t.discard, t.shoe
	t.shoe.Shuffle(t.rules.SubsequentShuffles)
	t.reshuffleAt = t.threshold(t.shoe.Len())
	t.logger.Debug("Reshuffled", "cards", t.shoe.Len(), "reshuffleAt", t.reshuffleAt)
	t.bus.Publish(ShoeShuffledEvent{Cards: t.shoe.Len(), Threshold: t.reshuffleAt})
}

// threshold picks a reshuffle point uniformly between the configured
// fractions of an n card shoe.
func (t *Table) threshold(n int) int {
	low := int(t.rules.ReshuffleMin * float64(n))
	span := int((t.rules.ReshuffleMax - t.rules.ReshuffleMin) * float64(n))
	if span <= 0 {
		return low
	}
	return low + t.rng.IntN(span)
}
