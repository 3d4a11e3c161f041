package config

// readManaged resolves entries from the administrator-managed file.
// Managed entries are forced enabled and are immutable to the toggle layer.
func (a *Aggregator) readManaged() []Entry {
	var doc projectDoc
	if !a.load(a.paths.ManagedFile, &doc) {
		return nil
	}

	entries := make([]Entry, 0, len(doc.MCPServers))
	for name, transport := range doc.MCPServers {
		if !a.usable(name, transport, a.paths.ManagedFile) {
			continue
		}

		entries = append(entries, Entry{
			Name:       name,
			Transport:  transport,
			Scope:      ScopeManaged,
			Enabled:    true,
			SourceFile: a.paths.ManagedFile,
		})
	}

	return entries
}
