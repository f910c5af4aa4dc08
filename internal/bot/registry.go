package bot

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

type entry struct {
	description string
	build       func(logger *log.Logger) *Strategy
}

var registry = map[string]entry{
	"dealer": {
		description: "house rule: hit below 17, flat minimum bet",
		build: func(*log.Logger) *Strategy {
			return NewStrategy("dealer", DealerRule{}, Flat{})
		},
	},
	"nobust": {
		description: "never hit 12 or more, flat minimum bet",
		build: func(*log.Logger) *Strategy {
			return NewStrategy("nobust", NoBust{}, Flat{})
		},
	},
	"darwin": {
		description: "Darwin Ortiz basic strategy, flat minimum bet",
		build: func(*log.Logger) *Strategy {
			return NewStrategy("darwin", NewBasicStrategy(DarwinTables()), Flat{})
		},
	},
	"wiki": {
		description: "published basic strategy, flat minimum bet",
		build: func(*log.Logger) *Strategy {
			return NewStrategy("wiki", NewBasicStrategy(WikiTables()), Flat{})
		},
	},
	"counting": {
		description: "Darwin Ortiz basic strategy, bets sized by a running count",
		build: func(logger *log.Logger) *Strategy {
			return NewStrategy("counting", NewBasicStrategy(DarwinTables()), NewCounting(logger))
		},
	},
	"progression": {
		description: "Darwin Ortiz basic strategy, one unit more after every win",
		build: func(*log.Logger) *Strategy {
			return NewStrategy("progression", NewBasicStrategy(DarwinTables()), NewProgression())
		},
	},
}

// New builds a fresh strategy by name. Every call returns independent state,
// so each seat needs its own.
func New(name string, logger *log.Logger) (*Strategy, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (known: %v)", name, Names())
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e.build(logger.WithPrefix(name)), nil
}

// Names lists the registered strategies in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of a registered strategy.
func Describe(name string) string {
	return registry[name].description
}

// Known reports whether name is a registered strategy.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}
