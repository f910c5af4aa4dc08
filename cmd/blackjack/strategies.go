package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/blackjacksim/internal/bot"
)

// StrategiesCmd lists the strategy registry
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range bot.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, bot.Describe(name))
	}
	return w.Flush()
}
