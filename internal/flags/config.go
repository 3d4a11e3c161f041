package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarProjectDir   = "MCPSCOPE_PROJECT_DIR"
	EnvVarSettingsFile = "MCPSCOPE_SETTINGS_FILE"
	EnvVarManagedFile  = "MCPSCOPE_MANAGED_FILE"
	EnvVarLogPath      = "MCPSCOPE_LOG_PATH"
	EnvVarLogLevel     = "MCPSCOPE_LOG_LEVEL"

	// Defaults
	DefaultSettingsFile = ".mcpscope.toml"
	DefaultLogPath      = ""
	DefaultLogLevel     = "info"

	// Flag names
	FlagNameProjectDir   = "project-dir"
	FlagNameSettingsFile = "settings-file"
	FlagNameLogPath      = "log-path"
	FlagNameLogLevel     = "log-level"
)

var (
	ProjectDir   string
	SettingsFile string
	LogPath      string
	LogLevel     string
)

// InitFlags registers the global persistent flags, seeding each one from its
// environment variable when the flag has not already been set.
func InitFlags(fs *pflag.FlagSet) {
	initProjectDir(fs)
	initSettingsFile(fs)
	initLogger(fs)
}

func initProjectDir(fs *pflag.FlagSet) {
	if ProjectDir == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarProjectDir)); env != "" {
			ProjectDir = env
		} else if wd, err := os.Getwd(); err == nil {
			ProjectDir = wd
		}
	}
	fs.StringVar(&ProjectDir, FlagNameProjectDir, ProjectDir, "path to the project directory")
}

func initSettingsFile(fs *pflag.FlagSet) {
	if SettingsFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarSettingsFile)); env != "" {
			SettingsFile = env
		} else {
			SettingsFile = DefaultSettingsFile
		}
	}
	fs.StringVar(&SettingsFile, FlagNameSettingsFile, SettingsFile, "path to the mcpscope settings file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcpscope logs")
}
