package flags

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestConfig_InitSettingsFile_EnvVars(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "env var value with extra white space",
			value:    "  /custom/path/mcpscope.toml  ",
			expected: "/custom/path/mcpscope.toml",
		},
		{
			name:     "env var missing",
			value:    "", // Implementation uses os.Getenv which returns an empty string when missing.
			expected: DefaultSettingsFile,
		},
		{
			name:     "env var only white space",
			value:    "   ",
			expected: DefaultSettingsFile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarSettingsFile, tc.value)
			t.Cleanup(func() {
				// Reset global variable
				SettingsFile = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

			initSettingsFile(fs)

			require.Equal(t, tc.expected, SettingsFile)
			flag := fs.Lookup(FlagNameSettingsFile)
			require.NotNil(t, flag)
			require.Equal(t, tc.expected, flag.Value.String())
		})
	}
}

func TestConfig_InitProjectDir_EnvVars(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "env var set",
			value:    "/some/project",
			expected: "/some/project",
		},
		{
			name:     "env var missing falls back to working directory",
			value:    "",
			expected: wd,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarProjectDir, tc.value)
			t.Cleanup(func() {
				// Reset global variable
				ProjectDir = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

			initProjectDir(fs)

			require.Equal(t, tc.expected, ProjectDir)
		})
	}
}

func TestConfig_InitLogger_EnvVars(t *testing.T) {
	tests := []struct {
		name          string
		logPathValue  string
		logLevelValue string
		expectedPath  string
		expectedLevel string
	}{
		{
			name:          "values set with extra white space",
			logPathValue:  "  /var/log/mcpscope.log  ",
			logLevelValue: "DEBUG",
			expectedPath:  "/var/log/mcpscope.log",
			expectedLevel: "debug",
		},
		{
			name:          "defaults",
			logPathValue:  "",
			logLevelValue: "",
			expectedPath:  DefaultLogPath,
			expectedLevel: DefaultLogLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarLogPath, tc.logPathValue)
			t.Setenv(EnvVarLogLevel, tc.logLevelValue)
			t.Cleanup(func() {
				// Reset global variables
				LogPath = ""
				LogLevel = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

			initLogger(fs)

			require.Equal(t, tc.expectedPath, LogPath)
			require.Equal(t, tc.expectedLevel, LogLevel)
		})
	}
}
