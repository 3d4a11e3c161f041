package config

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/mcpscope/mcpscope/internal/files"
)

// Aggregator orchestrates parallel reads across all known sources and
// normalizes each into entries. NewAggregator should be used to create
// instances of Aggregator.
type Aggregator struct {
	logger hclog.Logger
	paths  Paths
}

// NewAggregator creates an aggregator over the resolved source paths.
func NewAggregator(logger hclog.Logger, paths Paths) *Aggregator {
	return &Aggregator{
		logger: logger.Named("aggregator"),
		paths:  paths,
	}
}

// Paths returns the source paths this aggregator resolves entries from.
func (a *Aggregator) Paths() Paths {
	return a.paths
}

// Aggregate resolves entries from all five sources concurrently and returns
// the combined, deduplicated set. It never fails: any per-source problem
// degrades to that source contributing zero entries. The result is produced
// only once every source has settled.
func (a *Aggregator) Aggregate(ctx context.Context) []Entry {
	readers := []func() []Entry{
		a.readProject,
		a.readUser,
		a.readLocal,
		a.readManaged,
		a.readPlugins,
	}

	results := make([][]Entry, len(readers))

	g, _ := errgroup.WithContext(ctx)
	for i, read := range readers {
		g.Go(func() error {
			results[i] = read()
			return nil
		})
	}
	// Readers swallow their own failures, the group only coordinates completion.
	_ = g.Wait()

	var combined []Entry
	seen := make(map[string]struct{})
	for _, entries := range results {
		for _, entry := range entries {
			id := entry.Identity()
			if _, dup := seen[id]; dup {
				a.logger.Debug("Dropping duplicate entry", "name", entry.Name, "scope", entry.Scope)
				continue
			}
			seen[id] = struct{}{}
			combined = append(combined, entry)
		}
	}

	a.logger.Debug("Aggregation complete", "entries", len(combined))

	return combined
}

// Find locates an aggregated entry by name, optionally narrowed to a scope.
// It reports all matches so callers can distinguish absent from ambiguous.
func Find(entries []Entry, name string, scope Scope) []Entry {
	var matches []Entry
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		if scope != "" && e.Scope != scope {
			continue
		}
		matches = append(matches, e)
	}
	return matches
}

// load reads one source document, logging (not raising) any absence.
func (a *Aggregator) load(path string, v any) bool {
	if !files.LoadInto(path, v) {
		a.logger.Debug("Source contributes no entries", "path", path)
		return false
	}
	return true
}

// usable filters out entries whose transport config has no active variant.
func (a *Aggregator) usable(name string, transport TransportConfig, source string) bool {
	if name == "" {
		return false
	}
	if _, err := transport.Kind(); err != nil {
		a.logger.Warn("Skipping entry with invalid transport config", "name", name, "source", source, "error", err)
		return false
	}
	return true
}
