package cmd

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/health"
	"github.com/mcpscope/mcpscope/internal/printer"
	"github.com/mcpscope/mcpscope/internal/rank"
)

// ListCmd should be used to represent the 'list' command.
type ListCmd struct {
	*cmd.BaseCmd
	Scope  string
	Format cmd.OutputFormat
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(logger hclog.Logger) *cobra.Command {
	c := &ListCmd{
		BaseCmd: &cmd.BaseCmd{Logger: logger},
	}

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists all configured MCP server entries across every source.",
		Long: `Lists the MCP server entries aggregated from the project, user, local,
plugin and managed sources. Entries are ordered by their last known health,
best first, with ties broken by name.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Scope,
		"scope",
		"",
		"Optional, limit output to one scope (project, user, local, managed)",
	)
	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand
}

// run is configured (via NewListCmd) to be called by the Cobra framework when
// the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	settings, paths, err := loadRuntime()
	if err != nil {
		return err
	}

	logger := c.NamedLogger("list")

	engine, err := newEngine(logger, settings)
	if err != nil {
		return err
	}

	aggregator := config.NewAggregator(logger, paths)
	entries := aggregator.Aggregate(cobraCmd.Context())

	if c.Scope != "" {
		scope, err := config.ParseScope(c.Scope)
		if err != nil {
			return err
		}
		entries = filterScope(entries, scope)
	}

	// A quick reachability sweep so the listing carries health information;
	// full handshakes stay behind 'check'.
	results := engine.CheckTier1All(cobraCmd.Context(), entries)

	ranked := rank.Rank(entries, results)

	statuses := make([]printer.EntryStatus, 0, len(ranked))
	for _, entry := range ranked {
		var result *health.Result
		if r, ok := results[entry.Identity()]; ok {
			result = &r
		}
		statuses = append(statuses, printer.NewEntryStatus(entry, result))
	}

	handler := formatHandler(c.Format, cobraCmd.OutOrStdout(), printer.NewEntryStatusPrinter())

	return handler.HandleResults(statuses...)
}

func filterScope(entries []config.Entry, scope config.Scope) []config.Entry {
	filtered := make([]config.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Scope == scope {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
