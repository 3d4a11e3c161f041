package cmd

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/health"
	"github.com/mcpscope/mcpscope/internal/printer"
	"github.com/mcpscope/mcpscope/internal/rank"
)

// CheckCmd should be used to represent the 'check' command.
type CheckCmd struct {
	*cmd.BaseCmd
	All    bool
	Scope  string
	Format cmd.OutputFormat
}

// NewCheckCmd creates a newly configured (Cobra) command.
func NewCheckCmd(logger hclog.Logger) *cobra.Command {
	c := &CheckCmd{
		BaseCmd: &cmd.BaseCmd{Logger: logger},
	}

	cobraCommand := &cobra.Command{
		Use:   "check [server-name...]",
		Short: "Probes the health of MCP server entries.",
		Long: `Probes the health of MCP server entries.

Checking named servers performs the full protocol handshake against each.
Checking with --all first sweeps every entry with a cheap reachability probe,
then upgrades each result with a full handshake as the handshakes complete.`,
		RunE: c.run,
	}

	cobraCommand.Flags().BoolVar(
		&c.All,
		"all",
		false,
		"Check every aggregated entry instead of a single named server",
	)
	cobraCommand.Flags().StringVar(
		&c.Scope,
		"scope",
		"",
		"Optional, disambiguate the server by scope (project, user, local, managed)",
	)
	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand
}

// run is configured (via NewCheckCmd) to be called by the Cobra framework when
// the command is executed.
func (c *CheckCmd) run(cobraCmd *cobra.Command, args []string) error {
	settings, paths, err := loadRuntime()
	if err != nil {
		return err
	}

	logger := c.NamedLogger("check")

	engine, err := newEngine(logger, settings)
	if err != nil {
		return err
	}

	aggregator := config.NewAggregator(logger, paths)
	entries := aggregator.Aggregate(cobraCmd.Context())

	if c.All {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a server name")
		}
		return c.checkAll(cobraCmd, engine, entries)
	}

	if len(args) == 0 {
		return fmt.Errorf("server name is required and cannot be empty (or use --all)")
	}

	return c.checkNamed(cobraCmd, engine, entries, args)
}

// checkNamed runs the full handshake probe against each named entry.
// Every name must resolve unambiguously before any probe runs.
func (c *CheckCmd) checkNamed(
	cobraCmd *cobra.Command,
	engine *health.Engine,
	entries []config.Entry,
	names []string,
) error {
	var scope config.Scope
	if c.Scope != "" {
		parsed, err := config.ParseScope(c.Scope)
		if err != nil {
			return err
		}
		scope = parsed
	}

	targets := make([]config.Entry, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("server name is required and cannot be empty (or use --all)")
		}

		matches := config.Find(entries, name, scope)
		switch {
		case len(matches) == 0:
			return fmt.Errorf("%w: %s", errors.ErrEntryNotFound, name)
		case len(matches) > 1:
			scopes := make([]string, 0, len(matches))
			for _, m := range matches {
				scopes = append(scopes, string(m.Scope))
			}
			return fmt.Errorf(
				"%w: '%s' exists in scopes %s, disambiguate with --scope",
				errors.ErrAmbiguousEntry, name, strings.Join(scopes, ", "),
			)
		}
		targets = append(targets, matches[0])
	}

	statuses := make([]printer.EntryStatus, 0, len(targets))
	for _, entry := range targets {
		result := engine.CheckTier2(cobraCmd.Context(), entry)
		statuses = append(statuses, printer.NewEntryStatus(entry, &result))
	}

	handler := formatHandler(c.Format, cobraCmd.OutOrStdout(), printer.NewEntryStatusPrinter())

	if len(statuses) == 1 {
		return handler.HandleResult(statuses[0])
	}

	return handler.HandleResults(statuses...)
}

// checkAll sweeps every entry with the cheap tier-1 probe, then upgrades each
// result with the full handshake as handshakes complete. Text output streams
// the upgrades; structured output reports only the final results.
func (c *CheckCmd) checkAll(cobraCmd *cobra.Command, engine *health.Engine, entries []config.Entry) error {
	ctx := cobraCmd.Context()
	out := cobraCmd.OutOrStdout()

	results := engine.CheckTier1All(ctx, entries)

	streaming := c.Format != cmd.FormatJSON && c.Format != cmd.FormatYAML
	if streaming {
		fmt.Fprintf(out, "Quick sweep of %d server(s):\n", len(entries))
		p := printer.NewEntryStatusPrinter()
		for _, entry := range rank.Rank(entries, results) {
			result := results[entry.Identity()]
			if err := p.Item(out, printer.NewEntryStatus(entry, &result)); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "\nRunning full handshakes...\n")
	}

	for upgraded := range engine.CheckTier2All(ctx, entries) {
		results[upgraded.Entry.Identity()] = upgraded.Result

		if streaming {
			result := upgraded.Result
			p := printer.NewEntryStatusPrinter()
			if err := p.Item(out, printer.NewEntryStatus(upgraded.Entry, &result)); err != nil {
				return err
			}
		}
	}

	if streaming {
		return nil
	}

	statuses := make([]printer.EntryStatus, 0, len(entries))
	for _, entry := range rank.Rank(entries, results) {
		result := results[entry.Identity()]
		statuses = append(statuses, printer.NewEntryStatus(entry, &result))
	}

	handler := formatHandler(c.Format, out, printer.NewEntryStatusPrinter())

	return handler.HandleResults(statuses...)
}
