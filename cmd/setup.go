package cmd

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	internalcmd "github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/cmd/output"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/flags"
	"github.com/mcpscope/mcpscope/internal/health"
)

// loadRuntime resolves the pieces most commands need: the tool settings, and
// the source paths for the current project.
func loadRuntime() (*config.Settings, config.Paths, error) {
	settings, err := config.LoadSettings(flags.SettingsFile)
	if err != nil {
		return nil, config.Paths{}, err
	}

	paths, err := config.NewPaths(flags.ProjectDir, settings.ManagedFile)
	if err != nil {
		return nil, config.Paths{}, err
	}

	return settings, paths, nil
}

// newEngine builds a probe engine configured from the tool settings.
func newEngine(logger hclog.Logger, settings *config.Settings) (*health.Engine, error) {
	return health.NewEngine(
		logger,
		health.WithConnectTimeout(time.Duration(settings.Probe.ConnectTimeout)),
		health.WithPingTimeout(time.Duration(settings.Probe.PingTimeout)),
		health.WithHTTPTimeout(time.Duration(settings.Probe.HTTPTimeout)),
		health.WithCacheTTL(time.Duration(settings.Cache.TTL)),
	)
}

// formatHandler selects the output handler for the chosen format. The printer
// is only consulted for text output.
func formatHandler[T any](format internalcmd.OutputFormat, w io.Writer, p output.Printer[T]) output.Handler[T] {
	switch format {
	case internalcmd.FormatJSON:
		return output.NewJSONHandler[T](w, 2)
	case internalcmd.FormatYAML:
		return output.NewYAMLHandler[T](w, 2)
	default:
		return output.NewTextHandler[T](w, p)
	}
}
