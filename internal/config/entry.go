// Package config aggregates MCP server configuration entries from the five
// known sources (project file, user store, per-user per-project block,
// administrator-managed file, and plugin installations) into one normalized
// entity set.
package config

import (
	"fmt"
	"strings"
)

// Scope identifies the provenance category of an Entry. It determines the
// entry's toggle strategy and whether the entry is read-only.
type Scope string

const (
	// ScopeProject entries come from the shared project file and are toggled
	// through the personal exclusion list.
	ScopeProject Scope = "project"

	// ScopeUser entries come from the top-level maps of the per-user store.
	ScopeUser Scope = "user"

	// ScopeLocal entries come from the per-user store's block for the current
	// project.
	ScopeLocal Scope = "local"

	// ScopeManaged entries come from the administrator-managed file. They are
	// always enabled and can never be mutated.
	ScopeManaged Scope = "managed"
)

// ParseScope converts a user-supplied string into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeProject:
		return ScopeProject, nil
	case ScopeUser:
		return ScopeUser, nil
	case ScopeLocal:
		return ScopeLocal, nil
	case ScopeManaged:
		return ScopeManaged, nil
	default:
		return "", fmt.Errorf("unknown scope '%s' (expected project, user, local or managed)", s)
	}
}

// TransportKind discriminates the two transport variants.
type TransportKind string

const (
	// TransportStdio launches a local process and speaks MCP over stdio.
	TransportStdio TransportKind = "stdio"

	// TransportHTTP connects to a remote MCP endpoint over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// TransportConfig holds the connection details for one MCP server.
// It is a two-variant union: process-launch (Command/Args/Env/WorkingDir) or
// network-endpoint (URL/Headers). The active variant is discriminated solely
// by the presence of Command vs URL.
type TransportConfig struct {
	Command    string            `json:"command,omitempty"    yaml:"command,omitempty"`
	Args       []string          `json:"args,omitempty"       yaml:"args,omitempty"`
	Env        map[string]string `json:"env,omitempty"        yaml:"env,omitempty"`
	WorkingDir string            `json:"workingDir,omitempty" yaml:"workingDir,omitempty"`

	URL     string            `json:"url,omitempty"     yaml:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Kind reports which variant of the union is active.
// The process variant wins when both defining fields are present, matching the
// single-check discrimination rule: a config with a command launches a process.
func (t TransportConfig) Kind() (TransportKind, error) {
	switch {
	case strings.TrimSpace(t.Command) != "":
		return TransportStdio, nil
	case strings.TrimSpace(t.URL) != "":
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("transport config has neither command nor url")
	}
}

// Environ returns the Env map flattened into KEY=VALUE form for process launch.
func (t TransportConfig) Environ() []string {
	env := make([]string, 0, len(t.Env))
	for k, v := range t.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

// Entry is one normalized, toggleable configuration unit resolved from any source.
type Entry struct {
	// Name identifies the entry. It is unique only within its (scope, source)
	// pair, not globally.
	Name string `json:"name" yaml:"name"`

	// Transport holds the connection details for the server.
	Transport TransportConfig `json:"transport" yaml:"transport"`

	// Scope is the provenance category, which also selects the toggle strategy.
	Scope Scope `json:"scope" yaml:"scope"`

	// Enabled is derived from the structural location the entry was found in,
	// never from a stored flag on the entry itself.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// SourceFile is the absolute path of the file authoritative for this entry.
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`

	// PluginID is set only when the entry was contributed by a plugin
	// installation. A non-empty PluginID re-routes toggling to the plugin
	// strategy, which flips every entry sharing the same PluginID.
	PluginID string `json:"pluginId,omitempty" yaml:"pluginId,omitempty"`
}

// Identity returns the composite key that identifies this entry across
// aggregation passes. Entries carry no persisted identity; this key is
// reconstructed from (name, scope) plus the plugin ID for plugin entries.
func (e Entry) Identity() string {
	if e.PluginID != "" {
		return e.Name + "\x00" + string(e.Scope) + "\x00" + e.PluginID
	}
	return e.Name + "\x00" + string(e.Scope)
}
