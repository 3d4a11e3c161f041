// Package cmd wires the mcpscope CLI together: the root command, its global
// flags, and the subcommands for listing, checking and toggling entries.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	rootCmd := NewRootCmd(logger)

	return rootCmd.Execute()
}

func NewRootCmd(logger hclog.Logger) *cobra.Command {
	c := &RootCmd{
		BaseCmd: &cmd.BaseCmd{Logger: logger},
	}

	rootCmd := &cobra.Command{
		Use:          "mcpscope <command> [args]",
		Short:        "'mcpscope' shows and manages the MCP servers configured across your machine.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewListCmd(logger))
	rootCmd.AddCommand(NewCheckCmd(logger))
	rootCmd.AddCommand(NewEnableCmd(logger))
	rootCmd.AddCommand(NewDisableCmd(logger))
	rootCmd.AddCommand(NewDoctorCmd(logger))
	rootCmd.AddCommand(NewServeCmd(logger))

	return rootCmd
}

func (c *RootCmd) longDescription() string {
	return `The 'mcpscope' CLI aggregates the MCP server entries configured across project,
user, local, plugin and managed sources, checks their health, and toggles them
on or off in whichever file owns them.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If MCPSCOPE_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mcpscope",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
