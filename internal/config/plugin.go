package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Plugin installation scope attribute values, as written by plugin installers.
const (
	installScopeProject = "project"
	installScopeUser    = "user"
	installScopeLocal   = "local"
)

// pluginInstallation describes one installation of a plugin: where it is
// anchored on disk and at which scope it was installed.
type pluginInstallation struct {
	Scope string `json:"scope"`
	Path  string `json:"path"`
}

// sharedSettingsDoc is the shape of the per-user settings file, as far as
// plugin enablement is concerned.
type sharedSettingsDoc struct {
	EnabledPlugins map[string]bool `json:"enabledPlugins"`
}

// readPlugins resolves entries contributed by installed plugins. Each
// installation contributes the entries of its own config file, tagged with the
// plugin ID. One corrupt or missing installation never prevents any sibling
// plugin, or any other source, from contributing.
func (a *Aggregator) readPlugins() []Entry {
	var registry map[string]json.RawMessage
	if !a.load(a.paths.PluginRegistryFile, &registry) {
		return nil
	}

	var settings sharedSettingsDoc
	_ = a.load(a.paths.SharedSettingsFile, &settings)

	var entries []Entry
	// A plugin installed via multiple mechanisms contributes only once per scope.
	seen := make(map[string]struct{})

	for pluginID, raw := range registry {
		installs, ok := normalizeInstallations(raw)
		if !ok {
			a.logger.Warn("Skipping unreadable plugin registration", "plugin", pluginID)
			continue
		}

		for _, install := range installs {
			scope, ok := a.resolveInstallScope(install)
			if !ok {
				continue
			}

			dedupeKey := pluginID + "\x00" + string(scope)
			if _, dup := seen[dedupeKey]; dup {
				continue
			}

			contributed := a.readPluginConfig(pluginID, install, scope)
			if len(contributed) == 0 {
				continue
			}

			seen[dedupeKey] = struct{}{}
			entries = append(entries, contributed...)
		}
	}

	// Enablement lives in a separate boolean registry keyed by plugin ID.
	// Absence from that registry means enabled.
	for i := range entries {
		if enabled, ok := settings.EnabledPlugins[entries[i].PluginID]; ok {
			entries[i].Enabled = enabled
		}
	}

	return entries
}

// readPluginConfig reads one installation's own config file. An installation
// contributes entries only if that file is present and non-empty.
func (a *Aggregator) readPluginConfig(pluginID string, install pluginInstallation, scope Scope) []Entry {
	configFile := filepath.Join(install.Path, ProjectConfigFileName)

	var doc projectDoc
	if !a.load(configFile, &doc) {
		return nil
	}

	entries := make([]Entry, 0, len(doc.MCPServers))
	for name, transport := range doc.MCPServers {
		if !a.usable(name, transport, configFile) {
			continue
		}

		entries = append(entries, Entry{
			Name:       name,
			Transport:  transport,
			Scope:      scope,
			Enabled:    true, // Overridden from the enablement registry by the caller.
			SourceFile: configFile,
			PluginID:   pluginID,
		})
	}

	return entries
}

// resolveInstallScope maps an installation's scope attribute and anchor path
// onto an entry Scope. Project-anchored installations whose anchor is a strict
// ancestor of the current project are promoted to the broader user scope;
// anchors unrelated to the current project do not apply at all.
func (a *Aggregator) resolveInstallScope(install pluginInstallation) (Scope, bool) {
	anchor := filepath.Clean(strings.TrimSpace(install.Path))
	if anchor == "" || anchor == "." {
		return "", false
	}

	switch strings.ToLower(strings.TrimSpace(install.Scope)) {
	case installScopeProject:
		switch {
		case anchor == a.paths.ProjectDir:
			return ScopeProject, true
		case isStrictAncestor(anchor, a.paths.ProjectDir):
			return ScopeUser, true
		default:
			return "", false
		}
	case installScopeLocal:
		switch {
		case anchor == a.paths.ProjectDir:
			return ScopeLocal, true
		case isStrictAncestor(anchor, a.paths.ProjectDir):
			return ScopeUser, true
		default:
			return "", false
		}
	default:
		// "user" and anything unrecognized: applies everywhere.
		return ScopeUser, true
	}
}

// normalizeInstallations flattens the two registry shapes (single installation
// object, or array of installations) into one list immediately after reading,
// before any other logic touches the data.
func normalizeInstallations(raw json.RawMessage) ([]pluginInstallation, bool) {
	var many []pluginInstallation
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, true
	}

	var one pluginInstallation
	if err := json.Unmarshal(raw, &one); err == nil {
		return []pluginInstallation{one}, true
	}

	return nil, false
}

// isStrictAncestor reports whether dir is a strict ancestor of path.
func isStrictAncestor(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
