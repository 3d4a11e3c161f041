package config

// serverMaps is the active/parked pair used by the user store. Presence in
// MCPServers means enabled; presence in DisabledMCPServers means disabled.
// Configuration is never deleted on toggle, only moved between the two maps.
type serverMaps struct {
	MCPServers         map[string]TransportConfig `json:"mcpServers"`
	DisabledMCPServers map[string]TransportConfig `json:"disabledMcpServers"`
}

// userStoreDoc is the shape of the per-user store (~/.mcpscope.json). The
// top-level pair holds user-scoped entries; Projects nests one pair per
// project directory for local entries.
type userStoreDoc struct {
	serverMaps

	Projects map[string]serverMaps `json:"projects"`
}

// readUser resolves user-scoped entries from the store's top-level pair.
func (a *Aggregator) readUser() []Entry {
	var doc userStoreDoc
	if !a.load(a.paths.UserStoreFile, &doc) {
		return nil
	}

	return a.entriesFromMaps(doc.serverMaps, ScopeUser)
}

// readLocal resolves local entries from the store block nested under the
// current project's directory key.
func (a *Aggregator) readLocal() []Entry {
	var doc userStoreDoc
	if !a.load(a.paths.UserStoreFile, &doc) {
		return nil
	}

	project, ok := doc.Projects[a.paths.ProjectDir]
	if !ok {
		return nil
	}

	return a.entriesFromMaps(project, ScopeLocal)
}

func (a *Aggregator) entriesFromMaps(m serverMaps, scope Scope) []Entry {
	entries := make([]Entry, 0, len(m.MCPServers)+len(m.DisabledMCPServers))

	for name, transport := range m.MCPServers {
		if !a.usable(name, transport, a.paths.UserStoreFile) {
			continue
		}
		entries = append(entries, Entry{
			Name:       name,
			Transport:  transport,
			Scope:      scope,
			Enabled:    true,
			SourceFile: a.paths.UserStoreFile,
		})
	}

	for name, transport := range m.DisabledMCPServers {
		if !a.usable(name, transport, a.paths.UserStoreFile) {
			continue
		}
		entries = append(entries, Entry{
			Name:       name,
			Transport:  transport,
			Scope:      scope,
			Enabled:    false,
			SourceFile: a.paths.UserStoreFile,
		})
	}

	return entries
}
