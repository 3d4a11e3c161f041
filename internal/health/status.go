// Package health probes configured MCP server entries through a two-tier
// checking protocol: cheap side-effect-free reachability checks (tier 1) and
// full protocol-handshake checks (tier 2), with a time-bounded result cache.
package health

import (
	"time"
)

const (
	// StatusHealthy is a tier-2 outcome: connect, handshake and ping all succeeded.
	StatusHealthy Status = "healthy"

	// StatusDegraded indicates a server that responds but is impaired.
	StatusDegraded Status = "degraded"

	// StatusBinaryFound is a tier-1 outcome for process entries: the command
	// resolves to an executable on the search path.
	StatusBinaryFound Status = "binary_found"

	// StatusCommandNotFound indicates the entry's command does not resolve to
	// an executable, or a tier-2 spawn failed for the same reason.
	StatusCommandNotFound Status = "command_not_found"

	// StatusReachable is a tier-1 outcome for endpoint entries: the server
	// answered at all, even with a non-auth error status.
	StatusReachable Status = "reachable"

	// StatusUnreachable indicates connection, DNS or timeout failure.
	StatusUnreachable Status = "unreachable"

	// StatusAuthFailed indicates an HTTP 401/403 or an unauthorized failure.
	StatusAuthFailed Status = "auth_failed"

	// StatusChecking indicates a probe is currently in flight.
	StatusChecking Status = "checking"

	// StatusUnknown indicates no probe has produced a result. Disabled entries
	// always short-circuit to this status without any I/O.
	StatusUnknown Status = "unknown"

	// StatusError is the catch-all classification for unrecognized failures.
	StatusError Status = "error"
)

// Status is the classification of one probe outcome. Probes always produce a
// classified result; they never raise failures to the caller.
type Status string

// Tier identifies which probe protocol produced a result.
type Tier int

const (
	// Tier1 is the cheap, side-effect-free reachability check.
	Tier1 Tier = 1

	// Tier2 is the full protocol-handshake check.
	Tier2 Tier = 2
)

// ServerInfo carries the identity a server reported during the tier-2 handshake.
type ServerInfo struct {
	Name    string `json:"name"    yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Result is the outcome of one probe of either tier.
type Result struct {
	Status Status `json:"status" yaml:"status"`
	Tier   Tier   `json:"tier"   yaml:"tier"`

	// Latency is present for probes that reached the server.
	Latency *time.Duration `json:"latency,omitempty" yaml:"latency,omitempty"`

	// ToolCount is present when tier-2 tool enumeration succeeded. Enumeration
	// is best-effort: its failure never downgrades the overall result.
	ToolCount *int `json:"toolCount,omitempty" yaml:"toolCount,omitempty"`

	// ServerInfo is present when the tier-2 handshake reported it.
	ServerInfo *ServerInfo `json:"serverInfo,omitempty" yaml:"serverInfo,omitempty"`

	// Error holds the failure detail for failure statuses.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CheckedAt is when the probe completed. It drives both display and cache expiry.
	CheckedAt time.Time `json:"checkedAt" yaml:"checkedAt"`
}

// Good reports whether the result's status is a good outcome.
func (r Result) Good() bool {
	switch r.Status {
	case StatusHealthy, StatusBinaryFound, StatusReachable:
		return true
	default:
		return false
	}
}
