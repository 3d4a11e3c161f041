package toggle

import (
	"fmt"
	"path/filepath"

	"github.com/mcpscope/mcpscope/internal/config"
	apperrors "github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/perms"
)

// togglePlugin flips the plugin enablement boolean in the shared settings
// file. Granularity is per plugin, not per server: every entry sharing the
// plugin ID flips together.
func (d *Dispatcher) togglePlugin(entry config.Entry) error {
	path := d.paths.SharedSettingsFile
	unlock := d.lock(path)
	defer unlock()

	doc, ok := files.LoadDocument(path)
	if !ok {
		doc = map[string]any{}
	}

	ensureMap(doc, config.KeyEnabledPlugins)[entry.PluginID] = !entry.Enabled

	if err := files.EnsureAtLeastSecureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrWriteFailed, err)
	}

	if err := files.SaveDocument(path, doc, perms.SecureFile); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrWriteFailed, err)
	}

	d.logger.Info("Toggled plugin", "plugin", entry.PluginID, "enabled", !entry.Enabled)

	return nil
}
