// Package cmd provides shared building blocks for the CLI commands: the base
// command with its logger, output format selection, and output handlers.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpscope/mcpscope/internal/flags"
)

// BaseCmd carries the dependencies every CLI command shares.
type BaseCmd struct {
	Logger hclog.Logger
}

// NamedLogger returns the command's logger with the given sub-name, creating a
// fallback logger from flags and environment when none was injected.
func (c *BaseCmd) NamedLogger(name string) hclog.Logger {
	if c.Logger == nil {
		c.Logger = fallbackLogger()
	}
	return c.Logger.Named(name)
}

// fallbackLogger configures a logger from flags first, then environment, then defaults.
func fallbackLogger() hclog.Logger {
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, using discard\n", logPath, err)
		} else {
			output = f
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "mcpscope-default",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})
}
