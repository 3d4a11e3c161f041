// Package contracts defines the small interfaces the presentation layers
// (CLI commands, HTTP status API) consume, decoupling them from the concrete
// aggregator and probe engine.
package contracts

import (
	"context"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/health"
)

// EntryAggregator resolves the current normalized entry set from all sources.
type EntryAggregator interface {
	// Aggregate resolves entries from every source, never failing; degraded
	// sources contribute nothing.
	Aggregate(ctx context.Context) []config.Entry
}

// EntryToggler mutates an entry's enabled state in its authoritative source.
type EntryToggler interface {
	// Toggle flips the entry's enabled state. Managed entries are rejected;
	// write failures propagate.
	Toggle(entry config.Entry) error
}

// HealthProber runs health probes and exposes the transient result cache.
type HealthProber interface {
	// CheckTier1 performs the cheap reachability probe for one entry.
	CheckTier1(ctx context.Context, entry config.Entry) health.Result

	// CheckTier2 performs the full protocol-handshake probe for one entry.
	CheckTier2(ctx context.Context, entry config.Entry) health.Result

	// CheckTier1All probes entries concurrently and returns joined results
	// keyed by entry identity.
	CheckTier1All(ctx context.Context, entries []config.Entry) map[string]health.Result

	// CheckTier2All probes entries concurrently, reporting each result as it
	// individually completes.
	CheckTier2All(ctx context.Context, entries []config.Entry) <-chan health.EntryResult

	// Cached returns the unexpired cached result for an entry, if any.
	Cached(entry config.Entry) (health.Result, bool)
}
