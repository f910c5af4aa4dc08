package game

import "fmt"

// Limits accepted by Rules.Validate.
const (
	MaxDecks    = 19231
	MaxShuffles = 32
)

// Rules describes a table's betting limits and shoe handling.
type Rules struct {
	MinimumBet int
	// MaximumBet of 0 means the table has no maximum.
	MaximumBet         int
	Decks              int
	InitialShuffles    int
	SubsequentShuffles int
	// ReshuffleMin and ReshuffleMax bound the fraction of a fresh shoe below
	// which the table reshuffles after a round.
	ReshuffleMin float64
	ReshuffleMax float64
}

// DefaultRules returns an eight deck table with a 500 minimum and no maximum.
func DefaultRules() Rules {
	return Rules{
		MinimumBet:         500,
		MaximumBet:         0,
		Decks:              8,
		InitialShuffles:    8,
		SubsequentShuffles: 4,
		ReshuffleMin:       0.10,
		ReshuffleMax:       0.15,
	}
}

// Validate checks the rules are internally consistent.
func (r Rules) Validate() error {
	switch {
	case r.MinimumBet < 1:
		return fmt.Errorf("minimum bet %d must be positive: %w", r.MinimumBet, ErrInvalidRules)
	case r.MaximumBet < 0:
		return fmt.Errorf("maximum bet %d must not be negative: %w", r.MaximumBet, ErrInvalidRules)
	case r.MaximumBet > 0 && r.MaximumBet < r.MinimumBet:
		return fmt.Errorf("maximum bet %d below minimum %d: %w", r.MaximumBet, r.MinimumBet, ErrInvalidRules)
	case r.Decks < 1 || r.Decks > MaxDecks:
		return fmt.Errorf("deck count %d outside 1-%d: %w", r.Decks, MaxDecks, ErrInvalidRules)
	case r.InitialShuffles < 1 || r.InitialShuffles > MaxShuffles:
		return fmt.Errorf("initial shuffles %d outside 1-%d: %w", r.InitialShuffles, MaxShuffles, ErrInvalidRules)
	case r.SubsequentShuffles < 1 || r.SubsequentShuffles > MaxShuffles:
		return fmt.Errorf("subsequent shuffles %d outside 1-%d: %w", r.SubsequentShuffles, MaxShuffles, ErrInvalidRules)
	case r.ReshuffleMin < 0 || r.ReshuffleMax > 1 || r.ReshuffleMin > r.ReshuffleMax:
		return fmt.Errorf("reshuffle bounds %.2f-%.2f must satisfy 0 <= min <= max <= 1: %w",
			r.ReshuffleMin, r.ReshuffleMax, ErrInvalidRules)
	}
	return nil
}

// CheckBet reports whether amount is within the table limits.
func (r Rules) CheckBet(amount int) bool {
	if amount < r.MinimumBet {
		return false
	}
	return r.MaximumBet == 0 || amount <= r.MaximumBet
}

func (r Rules) String() string {
	limit := "no max"
	if r.MaximumBet > 0 {
		limit = fmt.Sprintf("max %d", r.MaximumBet)
	}
	return fmt.Sprintf("min %d, %s, %d decks", r.MinimumBet, limit, r.Decks)
}
