package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/files"
	"github.com/mcpscope/mcpscope/internal/flags"
)

// setupWorkspace creates a throwaway project and home directory and points
// the global flags and environment at them.
func setupWorkspace(t *testing.T) (projectDir, homeDir string) {
	t.Helper()

	base := t.TempDir()
	projectDir = filepath.Join(base, "project")
	homeDir = filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.MkdirAll(homeDir, 0o755))

	t.Setenv("HOME", homeDir)
	t.Setenv(flags.EnvVarManagedFile, filepath.Join(base, "managed-mcp.json"))

	previousProjectDir := flags.ProjectDir
	previousSettingsFile := flags.SettingsFile
	t.Cleanup(func() {
		flags.ProjectDir = previousProjectDir
		flags.SettingsFile = previousSettingsFile
	})
	flags.ProjectDir = projectDir
	flags.SettingsFile = filepath.Join(base, ".mcpscope.toml")

	return projectDir, homeDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDisableCmd_ProjectEntry(t *testing.T) {
	projectDir, _ := setupWorkspace(t)
	writeFile(t, filepath.Join(projectDir, ".mcp.json"), `{"mcpServers": {"alpha": {"command": "alpha-mcp"}}}`)

	output := &bytes.Buffer{}
	c := NewDisableCmd(hclog.NewNullLogger())
	c.SetOut(output)
	c.SetErr(output)
	c.SetArgs([]string{"alpha"})

	require.NoError(t, c.Execute())
	assert.Contains(t, output.String(), "✓ Disabled server 'alpha' (project)")

	doc, ok := files.LoadDocument(filepath.Join(projectDir, ".mcpscope", "settings.local.json"))
	require.True(t, ok)
	assert.Equal(t, []any{"alpha"}, doc[config.KeyDisabledProjectServers])

	// The shared project file itself is never touched.
	projectDoc, ok := files.LoadDocument(filepath.Join(projectDir, ".mcp.json"))
	require.True(t, ok)
	assert.Contains(t, projectDoc[config.KeyMCPServers], "alpha")
}

func TestEnableCmd_UserEntry(t *testing.T) {
	_, homeDir := setupWorkspace(t)
	writeFile(t, filepath.Join(homeDir, ".mcpscope.json"), `{
		"disabledMcpServers": {"gamma": {"command": "gamma-mcp"}}
	}`)

	output := &bytes.Buffer{}
	c := NewEnableCmd(hclog.NewNullLogger())
	c.SetOut(output)
	c.SetErr(output)
	c.SetArgs([]string{"gamma"})

	require.NoError(t, c.Execute())
	assert.Contains(t, output.String(), "✓ Enabled server 'gamma' (user)")

	doc, ok := files.LoadDocument(filepath.Join(homeDir, ".mcpscope.json"))
	require.True(t, ok)
	active, ok := doc[config.KeyMCPServers].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, active, "gamma")
	assert.NotContains(t, doc, config.KeyDisabledMCPServers)
}

func TestEnableCmd_AlreadyEnabledIsANoOp(t *testing.T) {
	_, homeDir := setupWorkspace(t)

	storePath := filepath.Join(homeDir, ".mcpscope.json")
	writeFile(t, storePath, `{"mcpServers": {"gamma": {"command": "gamma-mcp"}}}`)
	before, err := os.ReadFile(storePath)
	require.NoError(t, err)

	output := &bytes.Buffer{}
	c := NewEnableCmd(hclog.NewNullLogger())
	c.SetOut(output)
	c.SetErr(output)
	c.SetArgs([]string{"gamma"})

	require.NoError(t, c.Execute())
	assert.Contains(t, output.String(), "already enabled")

	after, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDisableCmd_ManagedEntryIsRejected(t *testing.T) {
	setupWorkspace(t)
	writeFile(t, os.Getenv(flags.EnvVarManagedFile), `{"mcpServers": {"zeta": {"command": "zeta-mcp"}}}`)

	output := &bytes.Buffer{}
	c := NewDisableCmd(hclog.NewNullLogger())
	c.SetOut(output)
	c.SetErr(output)
	c.SetArgs([]string{"zeta"})

	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "managed")
}

func TestDisableCmd_AmbiguousNameNeedsScope(t *testing.T) {
	projectDir, homeDir := setupWorkspace(t)
	writeFile(t, filepath.Join(projectDir, ".mcp.json"), `{"mcpServers": {"dup": {"command": "dup-project"}}}`)
	writeFile(t, filepath.Join(homeDir, ".mcpscope.json"), `{"mcpServers": {"dup": {"command": "dup-user"}}}`)

	c := NewDisableCmd(hclog.NewNullLogger())
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"dup"})

	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disambiguate with --scope")

	// Narrowed by scope it goes through.
	c = NewDisableCmd(hclog.NewNullLogger())
	output := &bytes.Buffer{}
	c.SetOut(output)
	c.SetErr(output)
	c.SetArgs([]string{"dup", "--scope", "user"})

	require.NoError(t, c.Execute())
	assert.Contains(t, output.String(), "✓ Disabled server 'dup' (user)")
}

func TestEnableCmd_UnknownServer(t *testing.T) {
	setupWorkspace(t)

	c := NewEnableCmd(hclog.NewNullLogger())
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"ghost"})

	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnableCmd_MissingName(t *testing.T) {
	setupWorkspace(t)

	c := NewEnableCmd(hclog.NewNullLogger())
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"   "})

	err := c.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server name is required")
}
