package toggle

import (
	"fmt"

	"github.com/mcpscope/mcpscope/internal/config"
	apperrors "github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/perms"
)

// toggleUserStore moves the entry's config object between the active and
// parked maps of the user store, at the pair owned by the entry's scope:
// the top-level pair for user entries, or the pair nested under the current
// project's key for local entries. Every other key in the store, including
// other projects' blocks, survives unchanged.
func (d *Dispatcher) toggleUserStore(entry config.Entry) error {
	path := d.paths.UserStoreFile
	unlock := d.lock(path)
	defer unlock()

	// Load the freshest on-disk state immediately before mutating.
	doc, ok := files.LoadDocument(path)
	if !ok {
		doc = map[string]any{}
	}

	holder := doc
	if entry.Scope == config.ScopeLocal {
		projects := ensureMap(doc, config.KeyProjects)
		holder = ensureMap(projects, d.paths.ProjectDir)
	}

	fromKey, toKey := config.KeyMCPServers, config.KeyDisabledMCPServers
	if !entry.Enabled {
		fromKey, toKey = toKey, fromKey
	}

	from := ensureMap(holder, fromKey)
	cfg, found := from[entry.Name]
	if !found {
		return fmt.Errorf("%w: '%s' not present in %s of %s", apperrors.ErrEntryNotFound, entry.Name, fromKey, path)
	}

	// Move, never delete: the exact config object crosses between the maps.
	delete(from, entry.Name)
	ensureMap(holder, toKey)[entry.Name] = cfg

	// Keep the file minimal: an emptied parked map loses its key entirely.
	if parked, ok := holder[config.KeyDisabledMCPServers].(map[string]any); ok && len(parked) == 0 {
		delete(holder, config.KeyDisabledMCPServers)
	}

	if err := files.SaveDocument(path, doc, perms.SecureFile); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrWriteFailed, err)
	}

	d.logger.Info("Toggled entry in user store", "name", entry.Name, "scope", entry.Scope, "enabled", !entry.Enabled)

	return nil
}
