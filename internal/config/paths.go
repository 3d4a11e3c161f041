package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/flags"
)

const (
	// ProjectConfigFileName is the shared, committed project source.
	ProjectConfigFileName = ".mcp.json"

	// LocalSettingsFileName is the personal, non-shared per-project file that
	// holds the project exclusion list.
	LocalSettingsFileName = "settings.local.json"

	// UserStoreFileName is the per-user store holding the active/parked maps,
	// plus per-project blocks.
	UserStoreFileName = ".mcpscope.json"

	// SharedSettingsFileName is the per-user settings file holding the plugin
	// enablement booleans.
	SharedSettingsFileName = "settings.json"

	// PluginRegistryFileName lists installed plugins and their installations.
	PluginRegistryFileName = "installed.json"

	// DefaultManagedFile is the administrator-managed source.
	DefaultManagedFile = "/etc/mcpscope/managed-mcp.json"
)

// Paths resolves every configuration source file for one project.
// All paths are absolute; resolving them once up front keeps the readers and
// the toggle strategies in agreement about which file owns which entry.
type Paths struct {
	// ProjectDir is the absolute, cleaned path of the current project.
	// It is also the key for the project's block inside the user store.
	ProjectDir string

	// ProjectFile is the shared project source (<project>/.mcp.json).
	ProjectFile string

	// LocalSettingsFile holds the personal exclusion list for project entries.
	LocalSettingsFile string

	// UserStoreFile is the per-user store (~/.mcpscope.json).
	UserStoreFile string

	// SharedSettingsFile holds the plugin enablement map (~/.mcpscope/settings.json).
	SharedSettingsFile string

	// PluginRegistryFile lists installed plugins (~/.mcpscope/plugins/installed.json).
	PluginRegistryFile string

	// ManagedFile is the administrator-managed source.
	ManagedFile string
}

// NewPaths resolves all source paths for the given project directory.
// managedFile overrides the managed source location when non-empty; the
// MCPSCOPE_MANAGED_FILE environment variable takes precedence over both.
func NewPaths(projectDir, managedFile string) (Paths, error) {
	projectDir = strings.TrimSpace(projectDir)
	if projectDir == "" {
		return Paths{}, fmt.Errorf("project directory cannot be empty")
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return Paths{}, fmt.Errorf("could not resolve project directory '%s': %w", projectDir, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("could not determine home directory: %w", err)
	}

	managed := DefaultManagedFile
	if managedFile = strings.TrimSpace(managedFile); managedFile != "" {
		managed = managedFile
	}
	if env := strings.TrimSpace(os.Getenv(flags.EnvVarManagedFile)); env != "" {
		managed = env
	}

	appDir := filepath.Join(home, files.AppDirName())

	return Paths{
		ProjectDir:         abs,
		ProjectFile:        filepath.Join(abs, ProjectConfigFileName),
		LocalSettingsFile:  filepath.Join(abs, files.AppDirName(), LocalSettingsFileName),
		UserStoreFile:      filepath.Join(home, UserStoreFileName),
		SharedSettingsFile: filepath.Join(appDir, SharedSettingsFileName),
		PluginRegistryFile: filepath.Join(appDir, "plugins", PluginRegistryFileName),
		ManagedFile:        managed,
	}, nil
}
