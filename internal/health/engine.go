package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/mcpscope/mcpscope/internal/config"
)

// Engine runs health probes and owns the transient result cache. Every
// external resource a probe touches (process handle, network connection) is
// scoped to that one probe call and released on every exit path.
// NewEngine should be used to create instances of Engine.
type Engine struct {
	logger     hclog.Logger
	cache      *ResultCache
	opts       Options
	httpClient *http.Client
	now        func() time.Time
}

// EntryResult pairs an entry with one probe outcome, for incremental batch
// observation.
type EntryResult struct {
	Entry  config.Entry
	Result Result
}

// NewEngine creates a probe engine with the provided options applied on top
// of defaults.
func NewEngine(logger hclog.Logger, opt ...Option) (*Engine, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Engine{
		logger:     logger.Named("health"),
		cache:      NewResultCache(opts.CacheTTL),
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.HTTPTimeout},
		now:        time.Now,
	}, nil
}

// Cached returns the cached result for an entry, if present and unexpired.
func (e *Engine) Cached(entry config.Entry) (Result, bool) {
	return e.cache.Get(entry.Identity())
}

// CheckTier1All probes all given entries concurrently as an unordered batch
// and returns the joined results keyed by entry identity.
func (e *Engine) CheckTier1All(ctx context.Context, entries []config.Entry) map[string]Result {
	results := make(map[string]Result, len(entries))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for _, entry := range entries {
		g.Go(func() error {
			result := e.CheckTier1(gctx, entry)

			mu.Lock()
			results[entry.Identity()] = result
			mu.Unlock()

			return nil
		})
	}
	// Probes never fail, the group only bounds parallelism.
	_ = g.Wait()

	return results
}

// CheckTier2All probes all given entries concurrently and reports each
// entry's result on the returned channel as it individually completes.
// The channel is closed once every probe has settled. A stuck probe is
// bounded by its own timeouts and cannot block its siblings.
func (e *Engine) CheckTier2All(ctx context.Context, entries []config.Entry) <-chan EntryResult {
	out := make(chan EntryResult, len(entries))

	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Concurrency)

		for _, entry := range entries {
			g.Go(func() error {
				// Publish the in-flight marker so concurrent readers see the
				// probe happening rather than a stale result.
				if entry.Enabled {
					e.cache.Put(entry.Identity(), Result{Status: StatusChecking, Tier: Tier2, CheckedAt: e.now()})
				}

				out <- EntryResult{Entry: entry, Result: e.CheckTier2(gctx, entry)}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

// record caches a completed probe's result and returns it. Either tier
// overwrites whatever the cache held before.
func (e *Engine) record(entry config.Entry, result Result) Result {
	e.cache.Put(entry.Identity(), result)
	return result
}
