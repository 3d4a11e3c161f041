package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/errors"
	"github.com/mcpscope/mcpscope/internal/toggle"
)

// toggleCmd carries the shared machinery of the 'enable' and 'disable'
// commands, which differ only in the target state.
type toggleCmd struct {
	*cmd.BaseCmd
	Scope string
}

// runToggle resolves the named entry and moves it to the desired enabled
// state in whichever source file owns it. Entries already in the desired
// state are left untouched.
func (c *toggleCmd) runToggle(cobraCmd *cobra.Command, args []string, enable bool) error {
	verb := "disable"
	if enable {
		verb = "enable"
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	_, paths, err := loadRuntime()
	if err != nil {
		return err
	}

	var scope config.Scope
	if c.Scope != "" {
		parsed, err := config.ParseScope(c.Scope)
		if err != nil {
			return err
		}
		scope = parsed
	}

	logger := c.NamedLogger(verb)

	aggregator := config.NewAggregator(logger, paths)
	matches := config.Find(aggregator.Aggregate(cobraCmd.Context()), name, scope)

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

	entry := matches[0]

	if entry.Enabled == enable {
		fmt.Fprintf(cobraCmd.OutOrStdout(), "Server '%s' (%s) is already %sd\n", entry.Name, entry.Scope, verb)
		return nil
	}

	dispatcher := toggle.NewDispatcher(logger, paths)
	if err := dispatcher.Toggle(entry); err != nil {
		return fmt.Errorf("failed to %s server '%s': %w", verb, entry.Name, err)
	}

	logger.Debug("Server toggled", "name", entry.Name, "scope", entry.Scope, "enabled", enable)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ %sd server '%s' (%s)\n", strings.ToUpper(verb[:1])+verb[1:], entry.Name, entry.Scope)

	return nil
}
