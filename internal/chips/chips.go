// Package chips implements the table currency. A Stack never holds a negative
// amount and chips only move between stacks; they are created explicitly with
// New when the house pays out.
package chips

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when removing more chips than a stack holds.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Stack is a pile of chips.
type Stack struct {
	value int
}

// New creates a stack holding value chips. Negative values panic.
func New(value int) Stack {
	if value < 0 {
		panic(fmt.Sprintf("chips: negative stack %d", value))
	}
	return Stack{value: value}
}

// Value returns the number of chips in the stack
func (s Stack) Value() int {
	return s.value
}

// IsEmpty reports whether the stack holds no chips
func (s Stack) IsEmpty() bool {
	return s.value == 0
}

// Remove splits amount chips off into a new stack.
func (s *Stack) Remove(amount int) (Stack, error) {
	if amount < 0 {
		return Stack{}, fmt.Errorf("remove %d chips: negative amount", amount)
	}
	if amount > s.value {
		return Stack{}, fmt.Errorf("remove %d chips from %d: %w", amount, s.value, ErrInsufficientFunds)
	}
	s.value -= amount
	return Stack{value: amount}, nil
}

// Merge moves every chip from src into s, leaving src empty.
func (s *Stack) Merge(src *Stack) {
	s.value += src.value
	src.value = 0
}

// Take empties the stack and returns its chips.
func (s *Stack) Take() Stack {
	out := Stack{value: s.value}
	s.value = 0
	return out
}

func (s Stack) String() string {
	return fmt.Sprintf("%d chips", s.value)
}
