// Package game implements an automated blackjack table.
//
// The main type is Table, which owns a shoe, a discard pile, a dealer hand and
// a fixed roster of seated players. Each call to PlayRound runs one complete
// round: antes and the deal, the insurance offer when the dealer shows an ace,
// the natural check, every player's turn, the dealer's turn, settlement and
// finally the reshuffle check.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	players := []*game.Player{
//	    game.NewPlayer("darwin", agent, 100000),
//	}
//	table, err := game.NewTable(rng, game.DefaultRules(), players)
//	if err != nil {
//	    return err
//	}
//	for table.Players()[0].Purse() >= table.Rules().MinimumBet {
//	    if err := table.PlayRound(); err != nil {
//	        return err
//	    }
//	}
//
// # Deterministic Testing
//
// The RNG is required so every shuffle and reshuffle threshold is
// reproducible. For fully scripted rounds, pass a stacked shoe:
//
//	shoe := deck.NewStackedShoe(deck.MustParseCards("Th7s6d5c"))
//	table, _ := game.NewTable(rng, rules, players, game.WithShoe(shoe))
//
// # Architecture
//
// Decisions are delegated to an Agent per seat, which only ever sees read-only
// views of its seat and hand. Exposed cards and reshuffles are published
// synchronously on an EventBus; agents that implement EventSubscriber are
// subscribed when the table is built. Table errors are invariant violations
// and leave the round in an undefined state.
package game
