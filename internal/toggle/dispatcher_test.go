package toggle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mcpscope/mcpscope/internal/config"
	apperrors "github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/perms"
)

func fixturePaths(t *testing.T) config.Paths {
	t.Helper()

	base := t.TempDir()
	projectDir := filepath.Join(base, "project")
	require.NoError(t, os.MkdirAll(projectDir, perms.RegularDir))

	return config.Paths{
		ProjectDir:         projectDir,
		ProjectFile:        filepath.Join(projectDir, config.ProjectConfigFileName),
		LocalSettingsFile:  filepath.Join(projectDir, ".mcpscope", config.LocalSettingsFileName),
		UserStoreFile:      filepath.Join(base, "home", config.UserStoreFileName),
		SharedSettingsFile: filepath.Join(base, "home", ".mcpscope", config.SharedSettingsFileName),
		PluginRegistryFile: filepath.Join(base, "home", ".mcpscope", "plugins", config.PluginRegistryFileName),
		ManagedFile:        filepath.Join(base, "etc", "managed-mcp.json"),
	}
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), perms.RegularDir))
	require.NoError(t, os.WriteFile(path, []byte(content), perms.SecureFile))
}

func TestDispatcher_Toggle_ManagedIsRejected(t *testing.T) {
	t.Parallel()

	paths := fixturePaths(t)
	writeJSON(t, paths.ManagedFile, `{"mcpServers": {"zeta": {"command": "zeta-mcp"}}}`)
	before, err := os.ReadFile(paths.ManagedFile)
	require.NoError(t, err)

	d := NewDispatcher(hclog.NewNullLogger(), paths)

	err = d.Toggle(config.Entry{Name: "zeta", Scope: config.ScopeManaged, Enabled: true})
	require.ErrorIs(t, err, apperrors.ErrManagedImmutable)

	// Nothing on disk moved.
	after, err := os.ReadFile(paths.ManagedFile)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestDispatcher_ToggleUserStore(t *testing.T) {
	t.Parallel()

	t.Run("disable then enable round-trips the store byte for byte", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)

		// Write through the same serializer the strategy uses so the baseline
		// bytes are in canonical form.
		original := map[string]any{
			"mcpServers": map[string]any{
				"gamma": map[string]any{"command": "gamma-mcp", "args": []any{"--port", "9100"}},
			},
			"unrelatedKey": map[string]any{"keep": "me"},
			"projects": map[string]any{
				"/some/other/project": map[string]any{
					"mcpServers": map[string]any{"other": map[string]any{"command": "other-mcp"}},
				},
			},
		}
		require.NoError(t, files.SaveDocument(paths.UserStoreFile, original, perms.SecureFile))
		before, err := os.ReadFile(paths.UserStoreFile)
		require.NoError(t, err)

		d := NewDispatcher(hclog.NewNullLogger(), paths)

		entry := config.Entry{Name: "gamma", Scope: config.ScopeUser, Enabled: true}
		require.NoError(t, d.Toggle(entry))

		// The config object moved to the parked map.
		doc, ok := files.LoadDocument(paths.UserStoreFile)
		require.True(t, ok)
		parked, ok := doc["disabledMcpServers"].(map[string]any)
		require.True(t, ok)
		require.Contains(t, parked, "gamma")
		active, ok := doc["mcpServers"].(map[string]any)
		require.True(t, ok)
		require.NotContains(t, active, "gamma")
		require.Contains(t, doc, "unrelatedKey")

		entry.Enabled = false
		require.NoError(t, d.Toggle(entry))

		after, err := os.ReadFile(paths.UserStoreFile)
		require.NoError(t, err)
		require.Equal(t, string(before), string(after))
	})

	t.Run("emptied parked map loses its key", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		writeJSON(t, paths.UserStoreFile, `{
			"mcpServers": {},
			"disabledMcpServers": {"delta": {"command": "delta-mcp"}}
		}`)

		d := NewDispatcher(hclog.NewNullLogger(), paths)

		require.NoError(t, d.Toggle(config.Entry{Name: "delta", Scope: config.ScopeUser, Enabled: false}))

		doc, ok := files.LoadDocument(paths.UserStoreFile)
		require.True(t, ok)
		require.NotContains(t, doc, "disabledMcpServers")
		active, ok := doc["mcpServers"].(map[string]any)
		require.True(t, ok)
		require.Contains(t, active, "delta")
	})

	t.Run("local scope mutates only the project block", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		writeJSON(t, paths.UserStoreFile, `{
			"mcpServers": {"gamma": {"command": "gamma-mcp"}},
			"projects": {
				"`+paths.ProjectDir+`": {
					"mcpServers": {"epsilon": {"command": "epsilon-mcp"}}
				}
			}
		}`)

		d := NewDispatcher(hclog.NewNullLogger(), paths)

		require.NoError(t, d.Toggle(config.Entry{Name: "epsilon", Scope: config.ScopeLocal, Enabled: true}))

		doc, ok := files.LoadDocument(paths.UserStoreFile)
		require.True(t, ok)

		// Top-level pair untouched.
		active, ok := doc["mcpServers"].(map[string]any)
		require.True(t, ok)
		require.Contains(t, active, "gamma")

		projects, ok := doc["projects"].(map[string]any)
		require.True(t, ok)
		block, ok := projects[paths.ProjectDir].(map[string]any)
		require.True(t, ok)
		parked, ok := block["disabledMcpServers"].(map[string]any)
		require.True(t, ok)
		require.Contains(t, parked, "epsilon")
	})

	t.Run("absent entry reports not found", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		d := NewDispatcher(hclog.NewNullLogger(), paths)

		err := d.Toggle(config.Entry{Name: "ghost", Scope: config.ScopeUser, Enabled: true})
		require.ErrorIs(t, err, apperrors.ErrEntryNotFound)
	})
}

func TestDispatcher_ToggleExclusion(t *testing.T) {
	t.Parallel()

	t.Run("disable adds the name once, sorted", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		writeJSON(t, paths.LocalSettingsFile, `{"disabledProjectServers": ["zz-server"], "otherSetting": true}`)

		d := NewDispatcher(hclog.NewNullLogger(), paths)

		entry := config.Entry{Name: "alpha", Scope: config.ScopeProject, Enabled: true}
		require.NoError(t, d.Toggle(entry))
		require.NoError(t, d.Toggle(entry)) // Repeat is a no-op on content.

		doc, ok := files.LoadDocument(paths.LocalSettingsFile)
		require.True(t, ok)
		require.Equal(t, []any{"alpha", "zz-server"}, doc["disabledProjectServers"])
		require.Equal(t, true, doc["otherSetting"])
	})

	t.Run("enable removes the name and drops the emptied key", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		writeJSON(t, paths.LocalSettingsFile, `{"disabledProjectServers": ["beta"]}`)

		d := NewDispatcher(hclog.NewNullLogger(), paths)

		require.NoError(t, d.Toggle(config.Entry{Name: "beta", Scope: config.ScopeProject, Enabled: false}))

		doc, ok := files.LoadDocument(paths.LocalSettingsFile)
		require.True(t, ok)
		require.NotContains(t, doc, "disabledProjectServers")
	})

	t.Run("missing settings file is created on disable", func(t *testing.T) {
		t.Parallel()

		paths := fixturePaths(t)
		d := NewDispatcher(hclog.NewNullLogger(), paths)

		require.NoError(t, d.Toggle(config.Entry{Name: "alpha", Scope: config.ScopeProject, Enabled: true}))

		doc, ok := files.LoadDocument(paths.LocalSettingsFile)
		require.True(t, ok)
		require.Equal(t, []any{"alpha"}, doc["disabledProjectServers"])

		info, err := os.Stat(paths.LocalSettingsFile)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(perms.SecureFile), info.Mode().Perm())
	})
}

func TestDispatcher_TogglePlugin(t *testing.T) {
	t.Parallel()

	paths := fixturePaths(t)
	writeJSON(t, paths.SharedSettingsFile, `{"enabledPlugins": {"other-plugin": true}, "theme": "dark"}`)

	d := NewDispatcher(hclog.NewNullLogger(), paths)

	entry := config.Entry{
		Name:     "eta",
		Scope:    config.ScopeUser,
		Enabled:  true,
		PluginID: "gh-suite",
	}
	require.NoError(t, d.Toggle(entry))

	doc, ok := files.LoadDocument(paths.SharedSettingsFile)
	require.True(t, ok)
	enabled, ok := doc["enabledPlugins"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, false, enabled["gh-suite"])
	require.Equal(t, true, enabled["other-plugin"])
	require.Equal(t, "dark", doc["theme"])

	entry.Enabled = false
	require.NoError(t, d.Toggle(entry))

	doc, ok = files.LoadDocument(paths.SharedSettingsFile)
	require.True(t, ok)
	enabled, ok = doc["enabledPlugins"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, enabled["gh-suite"])
}
