package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
		valid  bool
	}{
		{"defaults", func(r *Rules) {}, true},
		{"zero minimum", func(r *Rules) { r.MinimumBet = 0 }, false},
		{"negative maximum", func(r *Rules) { r.MaximumBet = -1 }, false},
		{"maximum below minimum", func(r *Rules) { r.MaximumBet = 100 }, false},
		{"maximum equals minimum", func(r *Rules) { r.MaximumBet = 500 }, true},
		{"no decks", func(r *Rules) { r.Decks = 0 }, false},
		{"largest shoe", func(r *Rules) { r.Decks = MaxDecks }, true},
		{"too many decks", func(r *Rules) { r.Decks = MaxDecks + 1 }, false},
		{"no initial shuffle", func(r *Rules) { r.InitialShuffles = 0 }, false},
		{"too many subsequent shuffles", func(r *Rules) { r.SubsequentShuffles = MaxShuffles + 1 }, false},
		{"inverted reshuffle bounds", func(r *Rules) { r.ReshuffleMin, r.ReshuffleMax = 0.5, 0.2 }, false},
		{"reshuffle above one", func(r *Rules) { r.ReshuffleMax = 1.5 }, false},
		{"never reshuffle early", func(r *Rules) { r.ReshuffleMin, r.ReshuffleMax = 0, 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			err := r.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRules)
			}
		})
	}
}

func TestRulesCheckBet(t *testing.T) {
	r := DefaultRules()
	assert.False(t, r.CheckBet(499))
	assert.True(t, r.CheckBet(500))
	assert.True(t, r.CheckBet(1_000_000), "no maximum")

	r.MaximumBet = 2000
	assert.True(t, r.CheckBet(2000))
	assert.False(t, r.CheckBet(2001))
}
