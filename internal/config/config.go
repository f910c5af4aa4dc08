// Package config loads simulation settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacksim/internal/bot"
	"github.com/lox/blackjacksim/internal/game"
)

// Defaults applied to anything the file leaves out.
const (
	DefaultLogLevel      = "info"
	DefaultProgressEvery = 100 * time.Millisecond
	DefaultStatsEvery    = time.Second
	DefaultPurse         = 100000
)

// Config represents a complete simulation file
type Config struct {
	Simulation *SimulationConfig `hcl:"simulation,block"`
	Tables     []TableConfig     `hcl:"table,block"`
}

// SimulationConfig holds run-wide settings
type SimulationConfig struct {
	LogLevel      string `hcl:"log_level,optional"`
	CSVFile       string `hcl:"csv_file,optional"`
	ScoreFile     string `hcl:"score_file,optional"`
	ProgressEvery string `hcl:"progress_every,optional"`
	StatsEvery    string `hcl:"stats_every,optional"`
	// MaxRounds of 0 plays until every watched seat is bankrupt.
	MaxRounds int `hcl:"max_rounds,optional"`
}

// TableConfig defines one table and its seats
type TableConfig struct {
	Name               string       `hcl:"name,label"`
	MinimumBet         int          `hcl:"minimum_bet,optional"`
	MaximumBet         int          `hcl:"maximum_bet,optional"`
	Decks              int          `hcl:"decks,optional"`
	InitialShuffles    int          `hcl:"initial_shuffles,optional"`
	SubsequentShuffles int          `hcl:"subsequent_shuffles,optional"`
	ReshuffleMin       *float64     `hcl:"reshuffle_min,optional"`
	ReshuffleMax       *float64     `hcl:"reshuffle_max,optional"`
	Seed               int64        `hcl:"seed,optional"`
	Seats              []SeatConfig `hcl:"seat,block"`
}

// SeatConfig defines a player
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Purse    int    `hcl:"purse,optional"`
	// Watch of false leaves the seat out of the bankruptcy stop condition.
	Watch *bool `hcl:"watch,optional"`
}

// Watched reports whether the run waits for this seat to go bankrupt
func (s SeatConfig) Watched() bool {
	return s.Watch == nil || *s.Watch
}

// Rules converts the table settings to game rules
func (t TableConfig) Rules() game.Rules {
	r := game.Rules{
		MinimumBet:         t.MinimumBet,
		MaximumBet:         t.MaximumBet,
		Decks:              t.Decks,
		InitialShuffles:    t.InitialShuffles,
		SubsequentShuffles: t.SubsequentShuffles,
	}
	if t.ReshuffleMin != nil {
		r.ReshuffleMin = *t.ReshuffleMin
	}
	if t.ReshuffleMax != nil {
		r.ReshuffleMax = *t.ReshuffleMax
	}
	return r
}

// ProgressInterval returns the parsed progress_every
func (s *SimulationConfig) ProgressInterval() time.Duration {
	d, err := time.ParseDuration(s.ProgressEvery)
	if err != nil {
		return DefaultProgressEvery
	}
	return d
}

// StatsInterval returns the parsed stats_every
func (s *SimulationConfig) StatsInterval() time.Duration {
	d, err := time.ParseDuration(s.StatsEvery)
	if err != nil {
		return DefaultStatsEvery
	}
	return d
}

func ptr[T any](v T) *T { return &v }

// Default returns the built-in seven seat table.
func Default() *Config {
	cfg := &Config{
		Simulation: &SimulationConfig{},
		Tables: []TableConfig{{
			Name: "main",
			Seats: []SeatConfig{
				{Name: "wiki", Strategy: "wiki"},
				// The counter outlives everyone else; waiting for it would
				// stretch a run indefinitely.
				{Name: "counting", Strategy: "counting", Watch: ptr(false)},
				{Name: "progression", Strategy: "progression"},
				{Name: "nobust", Strategy: "nobust"},
				{Name: "dealer", Strategy: "dealer"},
				{Name: "darwin-1", Strategy: "darwin"},
				{Name: "darwin-2", Strategy: "darwin"},
			},
		}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse reads configuration from HCL source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = Default().Tables
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	sim := c.Simulation
	if sim.LogLevel == "" {
		sim.LogLevel = DefaultLogLevel
	}
	if sim.ProgressEvery == "" {
		sim.ProgressEvery = DefaultProgressEvery.String()
	}
	if sim.StatsEvery == "" {
		sim.StatsEvery = DefaultStatsEvery.String()
	}

	rules := game.DefaultRules()
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.MinimumBet == 0 {
			t.MinimumBet = rules.MinimumBet
		}
		if t.Decks == 0 {
			t.Decks = rules.Decks
		}
		if t.InitialShuffles == 0 {
			t.InitialShuffles = rules.InitialShuffles
		}
		if t.SubsequentShuffles == 0 {
			t.SubsequentShuffles = rules.SubsequentShuffles
		}
		if t.ReshuffleMin == nil {
			t.ReshuffleMin = ptr(rules.ReshuffleMin)
		}
		if t.ReshuffleMax == nil {
			t.ReshuffleMax = ptr(rules.ReshuffleMax)
		}
		for j := range t.Seats {
			seat := &t.Seats[j]
			if seat.Strategy == "" {
				seat.Strategy = seat.Name
			}
			if seat.Purse == 0 {
				seat.Purse = DefaultPurse
			}
		}
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	switch c.Simulation.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Simulation.LogLevel)
	}
	for _, field := range []struct{ name, value string }{
		{"progress_every", c.Simulation.ProgressEvery},
		{"stats_every", c.Simulation.StatsEvery},
	} {
		d, err := time.ParseDuration(field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", field.name)
		}
	}
	if c.Simulation.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative")
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	tables := make(map[string]bool)
	for _, t := range c.Tables {
		if tables[t.Name] {
			return fmt.Errorf("duplicate table %q", t.Name)
		}
		tables[t.Name] = true

		if err := t.Rules().Validate(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		if len(t.Seats) == 0 {
			return fmt.Errorf("table %s: at least one seat must be configured", t.Name)
		}
		seats := make(map[string]bool)
		for _, s := range t.Seats {
			if seats[s.Name] {
				return fmt.Errorf("table %s: duplicate seat %q", t.Name, s.Name)
			}
			seats[s.Name] = true
			if !bot.Known(s.Strategy) {
				return fmt.Errorf("table %s: seat %s: unknown strategy %q (known: %v)", t.Name, s.Name, s.Strategy, bot.Names())
			}
			if s.Purse < 0 {
				return fmt.Errorf("table %s: seat %s: purse must not be negative", t.Name, s.Name)
			}
		}
	}
	return nil
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
