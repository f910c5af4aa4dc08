package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel   string           `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	Run        RunCmd           `cmd:"" default:"withargs" help:"Play tables until every watched player is bankrupt"`
	Scores     ScoresCmd        `cmd:"" help:"Show the score aggregated over all runs"`
	Strategies StrategiesCmd    `cmd:"" help:"List the built-in strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack table simulator for comparing betting and playing strategies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
