// Package toggle mutates the enabled/disabled state of aggregated entries.
// Each entry is owned by exactly one source file and one of three mutation
// strategies; every write is a read-modify-write that preserves all unrelated
// keys in the owning file.
package toggle

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/contracts"
	"github.com/mcpscope/mcpscope/internal/errors"
)

var _ contracts.EntryToggler = (*Dispatcher)(nil)

// Dispatcher routes a toggle to the one strategy authoritative for the entry.
// In-flight toggles that target the same source file are serialized to avoid
// read-modify-write races. NewDispatcher should be used to create instances
// of Dispatcher.
type Dispatcher struct {
	logger hclog.Logger
	paths  config.Paths

	mu        sync.Mutex
	fileLocks map[string]*sync.Mutex
}

// NewDispatcher creates a dispatcher over the resolved source paths.
func NewDispatcher(logger hclog.Logger, paths config.Paths) *Dispatcher {
	return &Dispatcher{
		logger:    logger.Named("toggle"),
		paths:     paths,
		fileLocks: make(map[string]*sync.Mutex),
	}
}

// Toggle flips the entry's enabled state in its authoritative source.
// Dispatch order, first match wins: managed entries are rejected; entries with
// a plugin ID go to the plugin strategy; project entries go to the exclusion
// list strategy; user and local entries go to the map-move strategy.
// Write failures always propagate: a swallowed failed toggle is silent data loss.
func (d *Dispatcher) Toggle(entry config.Entry) error {
	switch {
	case entry.Scope == config.ScopeManaged:
		d.logger.Warn("Refusing to toggle managed entry", "name", entry.Name)
		return fmt.Errorf("%w: '%s'", errors.ErrManagedImmutable, entry.Name)
	case entry.PluginID != "":
		return d.togglePlugin(entry)
	case entry.Scope == config.ScopeProject:
		return d.toggleExclusion(entry)
	default:
		return d.toggleUserStore(entry)
	}
}

// lock acquires the per-file mutex for path and returns its release func.
func (d *Dispatcher) lock(path string) func() {
	d.mu.Lock()
	l, ok := d.fileLocks[path]
	if !ok {
		l = &sync.Mutex{}
		d.fileLocks[path] = l
	}
	d.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ensureMap returns the map held under key in doc, creating and inserting an
// empty one when the key is absent or holds a non-object value.
func ensureMap(doc map[string]any, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	doc[key] = m
	return m
}
