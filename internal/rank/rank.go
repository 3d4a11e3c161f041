// Package rank orders aggregated entries for display using health-result
// priority with a deterministic tiebreak. Ranking holds no state: it is
// recomputed fresh on every call and is stable for equal inputs.
package rank

import (
	"slices"
	"strings"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/health"
)

// Priority buckets, ascending. Good outcomes sort first, failures last.
const (
	priorityGood     = 0
	priorityChecking = 1
	priorityUnknown  = 2
	priorityFailure  = 3
)

// Rank returns the entries ordered by health priority, tie-broken by
// case-sensitive lexicographic name order. Entries without a result rank as
// unknown. The input slice is not modified.
func Rank(entries []config.Entry, results map[string]health.Result) []config.Entry {
	ranked := slices.Clone(entries)

	slices.SortStableFunc(ranked, func(a, b config.Entry) int {
		pa, pb := priorityFor(a, results), priorityFor(b, results)
		if pa != pb {
			return pa - pb
		}
		return strings.Compare(a.Name, b.Name)
	})

	return ranked
}

func priorityFor(entry config.Entry, results map[string]health.Result) int {
	result, ok := results[entry.Identity()]
	if !ok {
		return priorityUnknown
	}

	switch result.Status {
	case health.StatusHealthy, health.StatusBinaryFound, health.StatusReachable:
		return priorityGood
	case health.StatusChecking:
		return priorityChecking
	case health.StatusUnknown:
		return priorityUnknown
	default:
		return priorityFailure
	}
}
