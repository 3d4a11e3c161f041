package toggle

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/mcpscope/mcpscope/internal/config"
	apperrors "github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/perms"
)

// toggleExclusion maintains the personal exclusion list for project entries.
// The shared project file is never opened for writing; disabling adds the name
// to the list, enabling removes it. The operation is idempotent, the list
// never holds duplicates, and serialization order is stable.
func (d *Dispatcher) toggleExclusion(entry config.Entry) error {
	path := d.paths.LocalSettingsFile
	unlock := d.lock(path)
	defer unlock()

	doc, ok := files.LoadDocument(path)
	if !ok {
		doc = map[string]any{}
	}

	disabled := stringList(doc[config.KeyDisabledProjectServers])

	if entry.Enabled {
		if !slices.Contains(disabled, entry.Name) {
			disabled = append(disabled, entry.Name)
		}
	} else {
		disabled = slices.DeleteFunc(disabled, func(name string) bool {
			return name == entry.Name
		})
	}

	slices.Sort(disabled)

	if len(disabled) == 0 {
		delete(doc, config.KeyDisabledProjectServers)
	} else {
		doc[config.KeyDisabledProjectServers] = disabled
	}

	if err := files.EnsureAtLeastRegularDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrWriteFailed, err)
	}

	if err := files.SaveDocument(path, doc, perms.SecureFile); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrWriteFailed, err)
	}

	d.logger.Info("Toggled project entry via exclusion list", "name", entry.Name, "enabled", !entry.Enabled)

	return nil
}

// stringList coerces a decoded JSON value into a list of strings, dropping
// anything that isn't a string.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
