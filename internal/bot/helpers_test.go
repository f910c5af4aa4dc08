package bot

import "github.com/lox/blackjacksim/internal/chips"

func chipsOf(n int) chips.Stack { return chips.New(n) }
