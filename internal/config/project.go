package config

import (
	"slices"
)

// Document keys shared between the source readers and the toggle strategies.
const (
	KeyMCPServers             = "mcpServers"
	KeyDisabledMCPServers     = "disabledMcpServers"
	KeyProjects               = "projects"
	KeyDisabledProjectServers = "disabledProjectServers"
	KeyEnabledPlugins         = "enabledPlugins"
)

// projectDoc is the shape of the shared project file (<project>/.mcp.json).
// The shared file carries no enabled/disabled information.
type projectDoc struct {
	MCPServers map[string]TransportConfig `json:"mcpServers"`
}

// localSettingsDoc is the shape of the personal per-project settings file.
type localSettingsDoc struct {
	DisabledProjectServers []string `json:"disabledProjectServers"`
}

// readProject resolves entries from the shared project file. An entry's
// presence in the personal exclusion list is the only determinant of Enabled
// for this scope.
func (a *Aggregator) readProject() []Entry {
	var doc projectDoc
	if !a.load(a.paths.ProjectFile, &doc) {
		return nil
	}

	var local localSettingsDoc
	_ = a.load(a.paths.LocalSettingsFile, &local)

	entries := make([]Entry, 0, len(doc.MCPServers))
	for name, transport := range doc.MCPServers {
		if !a.usable(name, transport, a.paths.ProjectFile) {
			continue
		}

		entries = append(entries, Entry{
			Name:       name,
			Transport:  transport,
			Scope:      ScopeProject,
			Enabled:    !slices.Contains(local.DisabledProjectServers, name),
			SourceFile: a.paths.ProjectFile,
		})
	}

	return entries
}
