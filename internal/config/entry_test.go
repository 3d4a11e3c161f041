package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportConfig_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		transport TransportConfig
		expected  TransportKind
		wantErr   bool
	}{
		{
			name:      "command only",
			transport: TransportConfig{Command: "npx", Args: []string{"-y", "mcp-github"}},
			expected:  TransportStdio,
		},
		{
			name:      "url only",
			transport: TransportConfig{URL: "https://mcp.example.com/sse"},
			expected:  TransportHTTP,
		},
		{
			name:      "command wins when both present",
			transport: TransportConfig{Command: "mcp-local", URL: "https://mcp.example.com"},
			expected:  TransportStdio,
		},
		{
			name:      "whitespace command is not a command",
			transport: TransportConfig{Command: "   ", URL: "https://mcp.example.com"},
			expected:  TransportHTTP,
		},
		{
			name:      "neither is an error",
			transport: TransportConfig{},
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kind, err := tc.transport.Kind()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, kind)
		})
	}
}

func TestTransportConfig_Environ(t *testing.T) {
	t.Parallel()

	transport := TransportConfig{
		Command: "mcp-github",
		Env:     map[string]string{"GITHUB_TOKEN": "secret", "DEBUG": "1"},
	}

	env := transport.Environ()
	require.Len(t, env, 2)
	require.ElementsMatch(t, []string{"GITHUB_TOKEN=secret", "DEBUG=1"}, env)
}

func TestEntry_Identity(t *testing.T) {
	t.Parallel()

	plain := Entry{Name: "github", Scope: ScopeProject}
	sameNameOtherScope := Entry{Name: "github", Scope: ScopeUser}
	fromPlugin := Entry{Name: "github", Scope: ScopeProject, PluginID: "gh-suite"}

	require.NotEqual(t, plain.Identity(), sameNameOtherScope.Identity())
	require.NotEqual(t, plain.Identity(), fromPlugin.Identity())
	require.Equal(t, plain.Identity(), Entry{Name: "github", Scope: ScopeProject}.Identity())
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Scope
		wantErr  bool
	}{
		{input: "project", expected: ScopeProject},
		{input: "  User  ", expected: ScopeUser},
		{input: "LOCAL", expected: ScopeLocal},
		{input: "managed", expected: ScopeManaged},
		{input: "global", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			scope, err := ParseScope(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, scope)
		})
	}
}
