// Package lint holds the check framework and the built-in checks.
// A Check is a pure function over one parsed file: it reads the tree and
// the source text, and reports diagnostics with optional fixes. Checks
// never mutate the tree, so the driver is free to run files in parallel.
package lint

import (
	"sort"
	"sync"

	"rill/internal/diag"
)

// Meta describes a check for registries, configs and --help output.
type Meta struct {
	Name string // стабильное имя для конфига и CLI
	Code diag.Code
	Doc  string
}

type Check interface {
	Meta() Meta
	Run(pass *Pass)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Check{}
)

// Register adds a check to the global registry. Duplicate names are a
// programmer error.
func Register(c Check) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name := c.Meta().Name
	if _, dup := registry[name]; dup {
		panic("lint: duplicate check name " + name)
	}
	registry[name] = c
}

// All returns every registered check, sorted by name for determinism.
func All() []Check {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Check, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Meta().Name < out[j].Meta().Name
	})
	return out
}

// Lookup finds a check by its registered name.
func Lookup(name string) (Check, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}
