package game

import "errors"

var (
	// ErrIllegalAction is returned for a hit, double or split the hand cannot take.
	ErrIllegalAction = errors.New("illegal action")
	// ErrBetMismatch is returned when a double or split bet differs from the hand bet.
	ErrBetMismatch = errors.New("bet does not match hand bet")
	// ErrBetOutOfBounds is returned when a bet falls outside the table limits.
	ErrBetOutOfBounds = errors.New("bet outside table limits")
	// ErrInvalidRules is returned by Rules.Validate.
	ErrInvalidRules = errors.New("invalid table rules")
)
